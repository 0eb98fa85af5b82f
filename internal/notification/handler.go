package notification

import (
	"net/http"

	"CampusEventPortal/internal/apperr"
	"CampusEventPortal/internal/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	service *NotificationService
}

func NewNotificationHandler(service *NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List returns the caller's own notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	offset, limit := auth.Pagination(c)
	notifications, err := h.service.ListForRecipient(c.Request().Context(), actor.ID, offset, limit)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) Get(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid notification ID"})
	}

	n, err := h.service.GetNotification(c.Request().Context(), actor, id)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, err := auth.CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid notification ID"})
	}

	n, err := h.service.MarkRead(c.Request().Context(), actor, id)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, n)
}

// Create is the admin endpoint for manual notifications.
func (h *NotificationHandler) Create(c echo.Context) error {
	var req CreateNotificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	n, err := h.service.CreateManual(c.Request().Context(), req)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *NotificationHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid notification ID"})
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Notification deleted successfully"})
}
