package event

import (
	"context"
	"log"
	"time"

	"CampusEventPortal/internal/apperr"
	"CampusEventPortal/internal/authz"

	"github.com/google/uuid"
)

// EventStore is the persistence surface the service needs. *EventRepository
// is the production implementation; tests substitute an in-memory one.
type EventStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	List(ctx context.Context, offset, limit int) ([]Event, error)
	ListByDepartment(ctx context.Context, department string, offset, limit int) ([]Event, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, offset, limit int) ([]Event, error)
	ListPublic(ctx context.Context, offset, limit int) ([]Event, error)
	Window(ctx context.Context, from, to time.Time) ([]Event, error)
	WindowByDepartment(ctx context.Context, department string, from, to time.Time) ([]Event, error)
	WindowByCreator(ctx context.Context, creatorID uuid.UUID, from, to time.Time) ([]Event, error)
	WindowPublicOrConfirmed(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]Event, error)
	Create(ctx context.Context, ev *Event) error
	Update(ctx context.Context, ev *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindConfirmation(ctx context.Context, eventID, studentID uuid.UUID) (*Confirmation, error)
	ListConfirmationsForEvent(ctx context.Context, eventID uuid.UUID) ([]Confirmation, error)
	ListConfirmationsForStudent(ctx context.Context, studentID uuid.UUID) ([]Confirmation, error)
	CreateConfirmation(ctx context.Context, confirmation *Confirmation) error
}

// Notifier is the post-creation fan-out hook. Fan-out failure never rolls the
// event back.
type Notifier interface {
	FanOutEvent(ctx context.Context, eventID uuid.UUID, title, description string) error
}

type EventService struct {
	store    EventStore
	notifier Notifier
}

func NewEventService(store EventStore, notifier Notifier) *EventService {
	return &EventService{store: store, notifier: notifier}
}

// CreateEvent persists the event with the actor's role snapshotted, then
// fans notifications out to every student. The fan-out is best-effort.
func (s *EventService) CreateEvent(ctx context.Context, actor authz.Actor, req EventRequest) (*Event, error) {
	if req.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if req.StartTime.IsZero() {
		return nil, apperr.Validation("start_time is required")
	}
	if d := authz.CanCreateEvent(actor, req.Department); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	ev := &Event{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Department:  req.Department,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Capacity:    req.Capacity,
		IsPublic:    isPublic,
		CreatorID:   actor.ID,
		CreatorRole: actor.Role,
	}
	if err := s.store.Create(ctx, ev); err != nil {
		return nil, err
	}

	if err := s.notifier.FanOutEvent(ctx, ev.ID, ev.Title, ev.Description); err != nil {
		log.Printf("Notification fan-out failed for event %s: %v", ev.ID, err)
	}
	return ev, nil
}

func (s *EventService) GetEvent(ctx context.Context, actor authz.Actor, id uuid.UUID) (*Event, error) {
	ev, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, apperr.NotFound("event not found")
	}

	confirmed, err := s.actorConfirmed(ctx, actor, ev.ID)
	if err != nil {
		return nil, err
	}
	if d := authz.CanReadEvent(actor, ev.View(confirmed)); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}
	return ev, nil
}

// ListEvents applies the caller's role scope: admins see everything, heads
// their department, employees their own events, students public events.
func (s *EventService) ListEvents(ctx context.Context, actor authz.Actor, offset, limit int) ([]Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	switch actor.Role {
	case authz.RoleAdmin:
		return s.store.List(ctx, offset, limit)
	case authz.RoleHead:
		return s.store.ListByDepartment(ctx, actor.Department, offset, limit)
	case authz.RoleEmployee:
		return s.store.ListByCreator(ctx, actor.ID, offset, limit)
	case authz.RoleStudent:
		return s.store.ListPublic(ctx, offset, limit)
	default:
		return nil, apperr.Forbidden("unknown role")
	}
}

// Calendar lists events whose start time falls in [from, to], scoped like
// ListEvents except students also see non-public events they confirmed.
func (s *EventService) Calendar(ctx context.Context, actor authz.Actor, from, to time.Time) ([]Event, error) {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, apperr.Validation("start_time and end_time must form a valid window")
	}
	switch actor.Role {
	case authz.RoleAdmin:
		return s.store.Window(ctx, from, to)
	case authz.RoleHead:
		return s.store.WindowByDepartment(ctx, actor.Department, from, to)
	case authz.RoleEmployee:
		return s.store.WindowByCreator(ctx, actor.ID, from, to)
	case authz.RoleStudent:
		return s.store.WindowPublicOrConfirmed(ctx, actor.ID, from, to)
	default:
		return nil, apperr.Forbidden("unknown role")
	}
}

func (s *EventService) UpdateEvent(ctx context.Context, actor authz.Actor, id uuid.UUID, req EventRequest) (*Event, error) {
	ev, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, apperr.NotFound("event not found")
	}
	if d := authz.CanUpdateEvent(actor, ev.View(false)); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	if req.Title != "" {
		ev.Title = req.Title
	}
	if req.Description != "" {
		ev.Description = req.Description
	}
	if req.Location != "" {
		ev.Location = req.Location
	}
	if req.Department != "" {
		if d := authz.CanCreateEvent(actor, req.Department); !d.Allowed {
			return nil, apperr.Forbidden(d.Reason)
		}
		ev.Department = req.Department
	}
	if !req.StartTime.IsZero() {
		ev.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		ev.EndTime = req.EndTime
	}
	if req.Capacity != nil {
		ev.Capacity = req.Capacity
	}
	if req.IsPublic != nil {
		ev.IsPublic = *req.IsPublic
	}
	if err := s.store.Update(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	ev, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if ev == nil {
		return apperr.NotFound("event not found")
	}
	if d := authz.CanDeleteEvent(actor, ev.View(false)); !d.Allowed {
		return apperr.Forbidden(d.Reason)
	}
	return s.store.Delete(ctx, id)
}

// Confirm records a student's attendance confirmation. The row insert and the
// counter increment commit together; duplicates are conflicts, never silent.
func (s *EventService) Confirm(ctx context.Context, actor authz.Actor, req ConfirmationRequest) (*Confirmation, error) {
	if actor.Role != authz.RoleStudent {
		return nil, apperr.Forbidden("only students can confirm events")
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, apperr.Validation("event_id must be a valid id")
	}

	status := authz.StatusConfirmed
	if req.Status != "" {
		parsed, ok := authz.ParseConfirmationStatus(req.Status)
		if !ok {
			return nil, apperr.Validation("status must be one of confirmed, cancelled, pending")
		}
		status = parsed
	}

	ev, err := s.store.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, apperr.NotFound("event not found")
	}

	existing, err := s.store.FindConfirmation(ctx, eventID, actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("student already confirmed for this event")
	}

	confirmation := &Confirmation{
		ID:          uuid.New(),
		EventID:     eventID,
		StudentID:   actor.ID,
		Status:      status,
		Note:        req.Note,
		ConfirmedAt: time.Now().UTC(),
	}
	if err := s.store.CreateConfirmation(ctx, confirmation); err != nil {
		return nil, err
	}
	return confirmation, nil
}

func (s *EventService) MyConfirmations(ctx context.Context, actor authz.Actor) ([]Confirmation, error) {
	return s.store.ListConfirmationsForStudent(ctx, actor.ID)
}

// EventConfirmations lists confirmations for one event, visible only to
// actors who may read the event itself.
func (s *EventService) EventConfirmations(ctx context.Context, actor authz.Actor, eventID uuid.UUID) ([]Confirmation, error) {
	ev, err := s.store.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, apperr.NotFound("event not found")
	}
	if d := authz.CanReadEvent(actor, ev.View(false)); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}
	return s.store.ListConfirmationsForEvent(ctx, eventID)
}

func (s *EventService) actorConfirmed(ctx context.Context, actor authz.Actor, eventID uuid.UUID) (bool, error) {
	if actor.Role != authz.RoleStudent {
		return false, nil
	}
	confirmation, err := s.store.FindConfirmation(ctx, eventID, actor.ID)
	if err != nil {
		return false, err
	}
	return confirmation != nil, nil
}
