package opportunity

import (
	"net/http"

	"CampusEventPortal/internal/apperr"
	"CampusEventPortal/internal/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type OpportunityHandler struct {
	service *OpportunityService
}

func NewOpportunityHandler(service *OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{service: service}
}

func (h *OpportunityHandler) Create(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	var req OpportunityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	op, err := h.service.CreateOpportunity(c.Request().Context(), actor, req)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, op)
}

func (h *OpportunityHandler) List(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	offset, limit := auth.Pagination(c)
	opportunities, err := h.service.ListOpportunities(c.Request().Context(), actor, offset, limit)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, opportunities)
}

func (h *OpportunityHandler) Get(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid opportunity ID"})
	}

	op, err := h.service.GetOpportunity(c.Request().Context(), actor, id)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, op)
}

func (h *OpportunityHandler) Update(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid opportunity ID"})
	}

	var req OpportunityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	op, err := h.service.UpdateOpportunity(c.Request().Context(), actor, id, req)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, op)
}

func (h *OpportunityHandler) Delete(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid opportunity ID"})
	}

	if err := h.service.DeleteOpportunity(c.Request().Context(), actor, id); err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Opportunity deleted successfully"})
}
