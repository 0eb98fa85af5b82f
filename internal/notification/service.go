package notification

import (
	"context"
	"fmt"
	"log"

	"CampusEventPortal/internal/apperr"
	"CampusEventPortal/internal/auth"
	"CampusEventPortal/internal/authz"
	"CampusEventPortal/internal/config"

	"github.com/google/uuid"
)

// NotificationStore is the persistence surface for notifications.
type NotificationStore interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, notifications []Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	ListForRecipient(ctx context.Context, recipientID uuid.UUID, offset, limit int) ([]Notification, error)
	Update(ctx context.Context, n *Notification) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecipientSource enumerates fan-out recipients: every student identity,
// deactivated ones included. *auth.UserRepository is the production
// implementation.
type RecipientSource interface {
	ListStudents(ctx context.Context) ([]auth.User, error)
}

type NotificationService struct {
	store        NotificationStore
	recipients   RecipientSource
	emailService *config.EmailService
}

func NewNotificationService(store NotificationStore, recipients RecipientSource, emailService *config.EmailService) *NotificationService {
	return &NotificationService{store: store, recipients: recipients, emailService: emailService}
}

// EventIntents builds one pending notification per student for a new event.
// Pure so fan-out contents can be asserted without storage.
func EventIntents(students []auth.User, eventID uuid.UUID, title, description string) []Notification {
	id := eventID
	intents := make([]Notification, 0, len(students))
	for _, student := range students {
		intents = append(intents, Notification{
			ID:             uuid.New(),
			RecipientID:    student.ID,
			Title:          fmt.Sprintf("New Event: %s", title),
			Body:           description,
			Type:           authz.NotificationEvent,
			RelatedEventID: &id,
		})
	}
	return intents
}

// OpportunityIntents mirrors EventIntents for opportunities.
func OpportunityIntents(students []auth.User, opportunityID uuid.UUID, title, description string) []Notification {
	id := opportunityID
	intents := make([]Notification, 0, len(students))
	for _, student := range students {
		intents = append(intents, Notification{
			ID:                   uuid.New(),
			RecipientID:          student.ID,
			Title:                fmt.Sprintf("New Opportunity: %s", title),
			Body:                 description,
			Type:                 authz.NotificationOpportunity,
			RelatedOpportunityID: &id,
		})
	}
	return intents
}

// FanOutEvent writes one notification per student for a freshly created
// event. Callers treat failure as non-fatal: the event stands.
func (s *NotificationService) FanOutEvent(ctx context.Context, eventID uuid.UUID, title, description string) error {
	students, err := s.recipients.ListStudents(ctx)
	if err != nil {
		return err
	}
	intents := EventIntents(students, eventID, title, description)
	if err := s.store.CreateBatch(ctx, intents); err != nil {
		return err
	}
	s.deliverEmails(students, fmt.Sprintf("New Event: %s", title), description)
	return nil
}

// FanOutOpportunity is the opportunity counterpart of FanOutEvent.
func (s *NotificationService) FanOutOpportunity(ctx context.Context, opportunityID uuid.UUID, title, description string) error {
	students, err := s.recipients.ListStudents(ctx)
	if err != nil {
		return err
	}
	intents := OpportunityIntents(students, opportunityID, title, description)
	if err := s.store.CreateBatch(ctx, intents); err != nil {
		return err
	}
	s.deliverEmails(students, fmt.Sprintf("New Opportunity: %s", title), description)
	return nil
}

// deliverEmails is best-effort: the notification rows are already committed,
// a failed send only loses the email copy.
func (s *NotificationService) deliverEmails(students []auth.User, subject, body string) {
	if s.emailService == nil || !s.emailService.Enabled() {
		return
	}
	for _, student := range students {
		if err := s.emailService.SendEmail(student.Email, subject, body); err != nil {
			log.Printf("Failed to email notification to %s: %v", student.Email, err)
		}
	}
}

func (s *NotificationService) ListForRecipient(ctx context.Context, recipientID uuid.UUID, offset, limit int) ([]Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.store.ListForRecipient(ctx, recipientID, offset, limit)
}

func (s *NotificationService) GetNotification(ctx context.Context, actor authz.Actor, id uuid.UUID) (*Notification, error) {
	n, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, apperr.NotFound("notification not found")
	}
	if d := authz.CanAccessNotification(actor, n.RecipientID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}
	return n, nil
}

// MarkRead flips the only recipient-mutable field.
func (s *NotificationService) MarkRead(ctx context.Context, actor authz.Actor, id uuid.UUID) (*Notification, error) {
	n, err := s.GetNotification(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	n.IsRead = true
	if err := s.store.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// CreateManual is the admin path for system notifications.
func (s *NotificationService) CreateManual(ctx context.Context, req CreateNotificationRequest) (*Notification, error) {
	if req.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return nil, apperr.Validation("recipient_id must be a valid id")
	}

	kind := authz.NotificationType(req.Type)
	switch kind {
	case authz.NotificationEvent, authz.NotificationOpportunity, authz.NotificationSystem:
	case "":
		kind = authz.NotificationSystem
	default:
		return nil, apperr.Validation("type must be one of event, opportunity, system")
	}

	n := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Title:       req.Title,
		Body:        req.Body,
		Type:        kind,
	}
	if req.RelatedEventID != "" {
		eventID, err := uuid.Parse(req.RelatedEventID)
		if err != nil {
			return nil, apperr.Validation("related_event_id must be a valid id")
		}
		n.RelatedEventID = &eventID
	}
	if req.RelatedOpportunityID != "" {
		opportunityID, err := uuid.Parse(req.RelatedOpportunityID)
		if err != nil {
			return nil, apperr.Validation("related_opportunity_id must be a valid id")
		}
		n.RelatedOpportunityID = &opportunityID
	}

	if err := s.store.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return apperr.NotFound("notification not found")
	}
	return s.store.Delete(ctx, id)
}
