package event

import (
	"net/http"
	"time"

	"CampusEventPortal/internal/apperr"
	"CampusEventPortal/internal/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	service *EventService
}

func NewEventHandler(service *EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) Create(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	ev, err := h.service.CreateEvent(c.Request().Context(), actor, req)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, ev)
}

func (h *EventHandler) List(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	offset, limit := auth.Pagination(c)
	events, err := h.service.ListEvents(c.Request().Context(), actor, offset, limit)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Get(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid event ID"})
	}

	ev, err := h.service.GetEvent(c.Request().Context(), actor, id)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) Update(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid event ID"})
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	ev, err := h.service.UpdateEvent(c.Request().Context(), actor, id, req)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) Delete(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid event ID"})
	}

	if err := h.service.DeleteEvent(c.Request().Context(), actor, id); err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}

// Calendar lists events starting inside the requested window, scoped to the
// caller's role.
func (h *EventHandler) Calendar(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	from, err := time.Parse(time.RFC3339, c.QueryParam("start_time"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "start_time must be RFC3339"})
	}
	to, err := time.Parse(time.RFC3339, c.QueryParam("end_time"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "end_time must be RFC3339"})
	}

	events, err := h.service.Calendar(c.Request().Context(), actor, from, to)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Confirm(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	var req ConfirmationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	confirmation, err := h.service.Confirm(c.Request().Context(), actor, req)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, confirmation)
}

func (h *EventHandler) MyConfirmations(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	confirmations, err := h.service.MyConfirmations(c.Request().Context(), actor)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, confirmations)
}

func (h *EventHandler) Confirmations(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid event ID"})
	}

	confirmations, err := h.service.EventConfirmations(c.Request().Context(), actor, id)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, confirmations)
}
