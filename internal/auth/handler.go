package auth

import (
	"net/http"
	"strconv"

	"CampusEventPortal/internal/apperr"
	"CampusEventPortal/internal/authz"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Pagination reads the skip/limit query parameters with the API defaults.
func Pagination(c echo.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.QueryParam("skip"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return offset, limit
}

type AuthHandler struct {
	service *UserService
}

func NewAuthHandler(service *UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

// CurrentActor pulls the authenticated actor the JWT middleware stored on the
// request. Handlers in every domain package go through this.
func CurrentActor(c echo.Context) (authz.Actor, error) {
	claims, ok := c.Get("user").(*JWTClaims)
	if !ok || claims == nil {
		return authz.Actor{}, apperr.Unauthorized("missing user claims")
	}
	actor, err := claims.Actor()
	if err != nil {
		return authz.Actor{}, apperr.Unauthorized(err.Error())
	}
	return actor, nil
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	token, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"access_token": token, "token_type": "bearer"})
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	actor, err := CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := h.service.ChangePassword(c.Request().Context(), actor.ID, req); err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	user, err := h.service.GetUser(c.Request().Context(), actor.ID)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	actor, err := CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), actor.ID, req)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, user)
}

// Admin user management. Route-level RBAC already restricts these to admins.

func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	user, err := h.service.CreateUser(c.Request().Context(), req)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) ListUsers(c echo.Context) error {
	offset, limit := Pagination(c)
	users, err := h.service.ListUsers(c.Request().Context(), offset, limit)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AuthHandler) DepartmentUsers(c echo.Context) error {
	actor, err := CurrentActor(c)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}

	users, err := h.service.ListDepartmentUsers(c.Request().Context(), actor)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AuthHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}

	user, err := h.service.GetUser(c.Request().Context(), id)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	user, err := h.service.UpdateUser(c.Request().Context(), id, req)
	if err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}

	if err := h.service.DeleteUser(c.Request().Context(), id); err != nil {
		return c.JSON(apperr.StatusCode(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
