package opportunity

import (
	"context"
	"log"

	"CampusEventPortal/internal/apperr"
	"CampusEventPortal/internal/authz"

	"github.com/google/uuid"
)

type OpportunityStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Opportunity, error)
	List(ctx context.Context, offset, limit int) ([]Opportunity, error)
	ListByDepartment(ctx context.Context, department string, offset, limit int) ([]Opportunity, error)
	Create(ctx context.Context, op *Opportunity) error
	Update(ctx context.Context, op *Opportunity) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Notifier is the post-creation fan-out hook, same contract as the event one.
type Notifier interface {
	FanOutOpportunity(ctx context.Context, opportunityID uuid.UUID, title, description string) error
}

type OpportunityService struct {
	store    OpportunityStore
	notifier Notifier
}

func NewOpportunityService(store OpportunityStore, notifier Notifier) *OpportunityService {
	return &OpportunityService{store: store, notifier: notifier}
}

func (s *OpportunityService) CreateOpportunity(ctx context.Context, actor authz.Actor, req OpportunityRequest) (*Opportunity, error) {
	if req.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if d := authz.CanCreateOpportunity(actor, req.Department); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	op := &Opportunity{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Link:         req.Link,
		Department:   req.Department,
		PostedByID:   actor.ID,
		PostedByRole: actor.Role,
	}
	if err := s.store.Create(ctx, op); err != nil {
		return nil, err
	}

	if err := s.notifier.FanOutOpportunity(ctx, op.ID, op.Title, op.Description); err != nil {
		log.Printf("Notification fan-out failed for opportunity %s: %v", op.ID, err)
	}
	return op, nil
}

func (s *OpportunityService) GetOpportunity(ctx context.Context, actor authz.Actor, id uuid.UUID) (*Opportunity, error) {
	op, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, apperr.NotFound("opportunity not found")
	}
	if d := authz.CanReadOpportunity(actor, op.View()); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}
	return op, nil
}

// ListOpportunities scopes heads to their department; everyone else sees the
// full listing.
func (s *OpportunityService) ListOpportunities(ctx context.Context, actor authz.Actor, offset, limit int) ([]Opportunity, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if actor.Role == authz.RoleHead {
		return s.store.ListByDepartment(ctx, actor.Department, offset, limit)
	}
	return s.store.List(ctx, offset, limit)
}

func (s *OpportunityService) UpdateOpportunity(ctx context.Context, actor authz.Actor, id uuid.UUID, req OpportunityRequest) (*Opportunity, error) {
	op, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, apperr.NotFound("opportunity not found")
	}
	if d := authz.CanMutateOpportunity(actor, op.View()); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	if req.Title != "" {
		op.Title = req.Title
	}
	if req.Description != "" {
		op.Description = req.Description
	}
	if req.Link != "" {
		op.Link = req.Link
	}
	if req.Department != "" {
		if d := authz.CanCreateOpportunity(actor, req.Department); !d.Allowed {
			return nil, apperr.Forbidden(d.Reason)
		}
		op.Department = req.Department
	}
	if err := s.store.Update(ctx, op); err != nil {
		return nil, err
	}
	return op, nil
}

func (s *OpportunityService) DeleteOpportunity(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	op, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if op == nil {
		return apperr.NotFound("opportunity not found")
	}
	if d := authz.CanMutateOpportunity(actor, op.View()); !d.Allowed {
		return apperr.Forbidden(d.Reason)
	}
	return s.store.Delete(ctx, id)
}
