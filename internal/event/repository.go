package event

import (
	"context"
	"errors"
	"time"

	"CampusEventPortal/internal/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) FindByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var ev Event
	err := r.db.WithContext(ctx).First(&ev, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ev, nil
}

func (r *EventRepository) List(ctx context.Context, offset, limit int) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("start_time").Find(&events).Error
	return events, err
}

func (r *EventRepository) ListByDepartment(ctx context.Context, department string, offset, limit int) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("department = ?", department).
		Offset(offset).Limit(limit).Order("start_time").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID, offset, limit int) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Offset(offset).Limit(limit).Order("start_time").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) ListPublic(ctx context.Context, offset, limit int) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Offset(offset).Limit(limit).Order("start_time").
		Find(&events).Error
	return events, err
}

// Calendar windows. Each mirrors the matching list scope over a start-time
// range.

func (r *EventRepository) WindowByDepartment(ctx context.Context, department string, from, to time.Time) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time <= ? AND department = ?", from, to, department).
		Order("start_time").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) WindowByCreator(ctx context.Context, creatorID uuid.UUID, from, to time.Time) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time <= ? AND creator_id = ?", from, to, creatorID).
		Order("start_time").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) Window(ctx context.Context, from, to time.Time) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time <= ?", from, to).
		Order("start_time").
		Find(&events).Error
	return events, err
}

// WindowPublicOrConfirmed returns events in the window that are public or
// that the student holds a confirmation for.
func (r *EventRepository) WindowPublicOrConfirmed(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]Event, error) {
	var events []Event
	confirmed := r.db.Model(&Confirmation{}).Select("event_id").Where("student_id = ?", studentID)
	err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time <= ?", from, to).
		Where(r.db.Where("is_public = ?", true).Or("id IN (?)", confirmed)).
		Order("start_time").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) Create(ctx context.Context, ev *Event) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *EventRepository) Update(ctx context.Context, ev *Event) error {
	return r.db.WithContext(ctx).Save(ev).Error
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Confirmation{}, "event_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, "id = ?", id).Error
	})
}

func (r *EventRepository) FindConfirmation(ctx context.Context, eventID, studentID uuid.UUID) (*Confirmation, error) {
	var confirmation Confirmation
	err := r.db.WithContext(ctx).
		First(&confirmation, "event_id = ? AND student_id = ?", eventID, studentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &confirmation, nil
}

func (r *EventRepository) ListConfirmationsForEvent(ctx context.Context, eventID uuid.UUID) ([]Confirmation, error) {
	var confirmations []Confirmation
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).Order("confirmed_at").
		Find(&confirmations).Error
	return confirmations, err
}

func (r *EventRepository) ListConfirmationsForStudent(ctx context.Context, studentID uuid.UUID) ([]Confirmation, error) {
	var confirmations []Confirmation
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).Order("confirmed_at").
		Find(&confirmations).Error
	return confirmations, err
}

// CreateConfirmation inserts the row and bumps the event counter in one
// transaction; both land or neither does. The composite unique index turns a
// lost check-then-insert race into a conflict instead of a duplicate.
func (r *EventRepository) CreateConfirmation(ctx context.Context, confirmation *Confirmation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(confirmation).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("student already confirmed for this event")
			}
			return err
		}
		result := tx.Model(&Event{}).
			Where("id = ?", confirmation.EventID).
			UpdateColumn("confirmation_count", gorm.Expr("confirmation_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("event not found")
		}
		return nil
	})
}
