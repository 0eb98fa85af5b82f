package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"CampusEventPortal/internal/apperr"
	"CampusEventPortal/internal/auth"
	"CampusEventPortal/internal/authz"
)

type fakeNotificationStore struct {
	notifications map[uuid.UUID]*Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{notifications: make(map[uuid.UUID]*Notification)}
}

func (f *fakeNotificationStore) Create(_ context.Context, n *Notification) error {
	copied := *n
	f.notifications[n.ID] = &copied
	return nil
}

func (f *fakeNotificationStore) CreateBatch(ctx context.Context, notifications []Notification) error {
	for i := range notifications {
		if err := f.Create(ctx, &notifications[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeNotificationStore) FindByID(_ context.Context, id uuid.UUID) (*Notification, error) {
	if n, ok := f.notifications[id]; ok {
		copied := *n
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeNotificationStore) ListForRecipient(_ context.Context, recipientID uuid.UUID, _, _ int) ([]Notification, error) {
	var out []Notification
	for _, n := range f.notifications {
		if n.RecipientID == recipientID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) Update(_ context.Context, n *Notification) error {
	copied := *n
	f.notifications[n.ID] = &copied
	return nil
}

func (f *fakeNotificationStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.notifications, id)
	return nil
}

type fakeRecipients struct {
	students []auth.User
	err      error
}

func (f *fakeRecipients) ListStudents(_ context.Context) ([]auth.User, error) {
	return f.students, f.err
}

func students(n int) []auth.User {
	out := make([]auth.User, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, auth.User{ID: uuid.New(), Role: authz.RoleStudent, IsActive: true})
	}
	return out
}

func TestFanOutEventCreatesOneNotificationPerStudent(t *testing.T) {
	store := newFakeNotificationStore()
	recipients := &fakeRecipients{students: students(3)}
	service := NewNotificationService(store, recipients, nil)
	eventID := uuid.New()

	if err := service.FanOutEvent(context.Background(), eventID, "Open Day", "Doors at 9"); err != nil {
		t.Fatalf("FanOutEvent: %v", err)
	}

	if len(store.notifications) != 3 {
		t.Fatalf("stored %d notifications, want 3", len(store.notifications))
	}
	seen := make(map[uuid.UUID]bool)
	for _, n := range store.notifications {
		if n.Title != "New Event: Open Day" {
			t.Fatalf("title = %q", n.Title)
		}
		if n.Type != authz.NotificationEvent {
			t.Fatalf("type = %q, want event", n.Type)
		}
		if n.RelatedEventID == nil || *n.RelatedEventID != eventID {
			t.Fatalf("related event id = %v, want %s", n.RelatedEventID, eventID)
		}
		if seen[n.RecipientID] {
			t.Fatalf("recipient %s notified twice", n.RecipientID)
		}
		seen[n.RecipientID] = true
	}
	for _, student := range recipients.students {
		if !seen[student.ID] {
			t.Fatalf("student %s missed the fan-out", student.ID)
		}
	}
}

func TestFanOutReachesDeactivatedStudents(t *testing.T) {
	store := newFakeNotificationStore()
	deactivated := auth.User{ID: uuid.New(), Role: authz.RoleStudent, IsActive: false}
	roster := append(students(2), deactivated)
	service := NewNotificationService(store, &fakeRecipients{students: roster}, nil)

	if err := service.FanOutEvent(context.Background(), uuid.New(), "Open Day", ""); err != nil {
		t.Fatalf("FanOutEvent: %v", err)
	}

	if len(store.notifications) != 3 {
		t.Fatalf("stored %d notifications, want one per student identity (3)", len(store.notifications))
	}
	found := false
	for _, n := range store.notifications {
		if n.RecipientID == deactivated.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("deactivated student was skipped by the fan-out")
	}
}

func TestFanOutOpportunityTargetsStudents(t *testing.T) {
	store := newFakeNotificationStore()
	service := NewNotificationService(store, &fakeRecipients{students: students(2)}, nil)
	opportunityID := uuid.New()

	if err := service.FanOutOpportunity(context.Background(), opportunityID, "Summer Internship", "Apply by May"); err != nil {
		t.Fatalf("FanOutOpportunity: %v", err)
	}
	for _, n := range store.notifications {
		if n.Title != "New Opportunity: Summer Internship" || n.Type != authz.NotificationOpportunity {
			t.Fatalf("unexpected notification %+v", n)
		}
		if n.RelatedOpportunityID == nil || *n.RelatedOpportunityID != opportunityID {
			t.Fatalf("related opportunity id = %v", n.RelatedOpportunityID)
		}
	}
}

func TestFanOutPropagatesRecipientLookupFailure(t *testing.T) {
	service := NewNotificationService(newFakeNotificationStore(), &fakeRecipients{err: errors.New("db down")}, nil)
	if err := service.FanOutEvent(context.Background(), uuid.New(), "x", ""); err == nil {
		t.Fatal("expected error when recipients cannot be listed")
	}
}

func TestNotificationAccessIsRecipientScoped(t *testing.T) {
	store := newFakeNotificationStore()
	service := NewNotificationService(store, &fakeRecipients{}, nil)
	recipient := authz.Actor{ID: uuid.New(), Role: authz.RoleStudent}
	n := &Notification{ID: uuid.New(), RecipientID: recipient.ID, Title: "hello", Type: authz.NotificationSystem}
	if err := store.Create(context.Background(), n); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := service.GetNotification(context.Background(), recipient, n.ID); err != nil {
		t.Fatalf("recipient read: %v", err)
	}
	other := authz.Actor{ID: uuid.New(), Role: authz.RoleStudent}
	if _, err := service.GetNotification(context.Background(), other, n.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("other student read: err = %v, want forbidden", err)
	}
	admin := authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin}
	if _, err := service.GetNotification(context.Background(), admin, n.ID); err != nil {
		t.Fatalf("admin read: %v", err)
	}
	if _, err := service.GetNotification(context.Background(), recipient, uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing notification: err = %v, want not found", err)
	}
}

func TestMarkReadPersists(t *testing.T) {
	store := newFakeNotificationStore()
	service := NewNotificationService(store, &fakeRecipients{}, nil)
	recipient := authz.Actor{ID: uuid.New(), Role: authz.RoleStudent}
	n := &Notification{ID: uuid.New(), RecipientID: recipient.ID, Title: "hello", Type: authz.NotificationSystem}
	_ = store.Create(context.Background(), n)

	updated, err := service.MarkRead(context.Background(), recipient, n.ID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !updated.IsRead {
		t.Fatal("returned notification not marked read")
	}
	stored, _ := store.FindByID(context.Background(), n.ID)
	if !stored.IsRead {
		t.Fatal("stored notification not marked read")
	}
}

func TestCreateManualValidatesTypeAndRecipient(t *testing.T) {
	store := newFakeNotificationStore()
	service := NewNotificationService(store, &fakeRecipients{}, nil)

	if _, err := service.CreateManual(context.Background(), CreateNotificationRequest{Title: "x", RecipientID: "garbage"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("bad recipient: err = %v, want validation", err)
	}
	if _, err := service.CreateManual(context.Background(), CreateNotificationRequest{RecipientID: uuid.NewString()}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("missing title: err = %v, want validation", err)
	}
	if _, err := service.CreateManual(context.Background(), CreateNotificationRequest{Title: "x", RecipientID: uuid.NewString(), Type: "broadcast"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("bad type: err = %v, want validation", err)
	}

	n, err := service.CreateManual(context.Background(), CreateNotificationRequest{Title: "Maintenance window", RecipientID: uuid.NewString()})
	if err != nil {
		t.Fatalf("CreateManual: %v", err)
	}
	if n.Type != authz.NotificationSystem {
		t.Fatalf("default type = %q, want system", n.Type)
	}
}
