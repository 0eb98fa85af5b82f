package opportunity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OpportunityRepository struct {
	db *gorm.DB
}

func NewOpportunityRepository(db *gorm.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

func (r *OpportunityRepository) FindByID(ctx context.Context, id uuid.UUID) (*Opportunity, error) {
	var op Opportunity
	err := r.db.WithContext(ctx).First(&op, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &op, nil
}

func (r *OpportunityRepository) List(ctx context.Context, offset, limit int) ([]Opportunity, error) {
	var opportunities []Opportunity
	err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("created_at DESC").Find(&opportunities).Error
	return opportunities, err
}

func (r *OpportunityRepository) ListByDepartment(ctx context.Context, department string, offset, limit int) ([]Opportunity, error) {
	var opportunities []Opportunity
	err := r.db.WithContext(ctx).
		Where("department = ?", department).
		Offset(offset).Limit(limit).Order("created_at DESC").
		Find(&opportunities).Error
	return opportunities, err
}

func (r *OpportunityRepository) Create(ctx context.Context, op *Opportunity) error {
	return r.db.WithContext(ctx).Create(op).Error
}

func (r *OpportunityRepository) Update(ctx context.Context, op *Opportunity) error {
	return r.db.WithContext(ctx).Save(op).Error
}

func (r *OpportunityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Opportunity{}, "id = ?", id).Error
}
