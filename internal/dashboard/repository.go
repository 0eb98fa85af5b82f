package dashboard

import (
	"context"
	"time"

	"gorm.io/gorm"

	"CampusEventPortal/internal/auth"
	"CampusEventPortal/internal/authz"
	"CampusEventPortal/internal/event"
	"CampusEventPortal/internal/opportunity"
)

// AdminSummary aggregates portal-wide counts for the admin dashboard.
type AdminSummary struct {
	TotalUsers         int64 `json:"total_users"`
	TotalStudents      int64 `json:"total_students"`
	TotalEvents        int64 `json:"total_events"`
	TotalOpportunities int64 `json:"total_opportunities"`
	TotalConfirmations int64 `json:"total_confirmations"`
}

// DepartmentSummary aggregates counts scoped to a head's department.
type DepartmentSummary struct {
	Department              string        `json:"department"`
	DepartmentUsers         int64         `json:"department_users"`
	DepartmentEvents        int64         `json:"department_events"`
	DepartmentConfirmations int64         `json:"department_confirmations"`
	Opportunities           int64         `json:"opportunities"`
	UpcomingEvents          int64         `json:"upcoming_events"`
	RecentEvents            []event.Event `json:"recent_events"`
}

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) AdminSummary(ctx context.Context) (*AdminSummary, error) {
	summary := &AdminSummary{}
	db := r.db.WithContext(ctx)
	if err := db.Model(&auth.User{}).Count(&summary.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&auth.User{}).Where("role = ?", authz.RoleStudent).Count(&summary.TotalStudents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&event.Event{}).Count(&summary.TotalEvents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&opportunity.Opportunity{}).Count(&summary.TotalOpportunities).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&event.Confirmation{}).Count(&summary.TotalConfirmations).Error; err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *DashboardRepository) DepartmentSummary(ctx context.Context, department string) (*DepartmentSummary, error) {
	summary := &DepartmentSummary{Department: department}
	db := r.db.WithContext(ctx)
	if err := db.Model(&auth.User{}).Where("department = ?", department).Count(&summary.DepartmentUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&event.Event{}).Where("department = ?", department).Count(&summary.DepartmentEvents).Error; err != nil {
		return nil, err
	}
	departmentEvents := r.db.Model(&event.Event{}).Select("id").Where("department = ?", department)
	if err := db.Model(&event.Confirmation{}).Where("event_id IN (?)", departmentEvents).Count(&summary.DepartmentConfirmations).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&opportunity.Opportunity{}).Where("department = ?", department).Count(&summary.Opportunities).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&event.Event{}).Where("department = ? AND start_time > ?", department, time.Now()).Count(&summary.UpcomingEvents).Error; err != nil {
		return nil, err
	}
	if err := db.Where("department = ?", department).Order("created_at DESC").Limit(5).Find(&summary.RecentEvents).Error; err != nil {
		return nil, err
	}
	return summary, nil
}

// StudentsConfirmed lists every distinct student with at least one confirmed
// event registration.
func (r *DashboardRepository) StudentsConfirmed(ctx context.Context) ([]auth.User, error) {
	var students []auth.User
	subquery := r.db.Model(&event.Confirmation{}).
		Where("status = ?", authz.StatusConfirmed).
		Distinct("student_id")
	err := r.db.WithContext(ctx).
		Where("id IN (?)", subquery).
		Order("username ASC").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}
