package dashboard

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"CampusEventPortal/internal/apperr"
	"CampusEventPortal/internal/auth"
	"CampusEventPortal/internal/authz"
)

// SummarySource is implemented by DashboardRepository.
type SummarySource interface {
	AdminSummary(ctx context.Context) (*AdminSummary, error)
	DepartmentSummary(ctx context.Context, department string) (*DepartmentSummary, error)
	StudentsConfirmed(ctx context.Context) ([]auth.User, error)
}

type DashboardHandler struct {
	summaries SummarySource
}

func NewDashboardHandler(summaries SummarySource) *DashboardHandler {
	return &DashboardHandler{summaries: summaries}
}

func (h *DashboardHandler) AdminDashboard(c echo.Context) error {
	summary, err := h.summaries.AdminSummary(c.Request().Context())
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandler) HeadDashboard(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	if actor.Role != authz.RoleHead {
		err := apperr.Forbidden("Only department heads can view this dashboard.")
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	if actor.Department == "" {
		err := apperr.Validation("head has no department assigned")
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	summary, err := h.summaries.DepartmentSummary(c.Request().Context(), actor.Department)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandler) StudentsConfirmed(c echo.Context) error {
	students, err := h.summaries.StudentsConfirmed(c.Request().Context())
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, students)
}
