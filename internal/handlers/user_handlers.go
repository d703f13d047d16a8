package handlers

import (
	"log"
	"net/http"

	"dealerstock/internal/common"
	"dealerstock/internal/models"
	"dealerstock/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles HTTP requests for users
type UserHandlers struct {
	userService services.UserServiceInterface
}

func NewUserHandlers(userService services.UserServiceInterface) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// CreateUser handles POST /users
func (h *UserHandlers) CreateUser(c echo.Context) error {
	user := &models.User{}
	if err := c.Bind(user); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	created, err := h.userService.CreateUser(c.Request().Context(), user)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetAllUsers handles GET /users
func (h *UserHandlers) GetAllUsers(c echo.Context) error {
	users, err := h.userService.GetAllUsers(c.Request().Context())
	if err != nil {
		log.Printf("list users: %v", err)
		return c.JSON(http.StatusOK, []*models.User{})
	}
	return c.JSON(http.StatusOK, emptyIfNil(users))
}

// GetUserByID handles GET /users/:id
func (h *UserHandlers) GetUserByID(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	user, err := h.userService.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUserByUsername handles GET /users/username/:username
func (h *UserHandlers) GetUserByUsername(c echo.Context) error {
	user, err := h.userService.GetUserByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUserByEmail handles GET /users/email/:email
func (h *UserHandlers) GetUserByEmail(c echo.Context) error {
	user, err := h.userService.GetUserByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUsersByRole handles GET /users/role/:role
func (h *UserHandlers) GetUsersByRole(c echo.Context) error {
	users, err := h.userService.GetUsersByRole(c.Request().Context(), c.Param("role"))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(users))
}

// UpdateUser handles PUT /users/:id
func (h *UserHandlers) UpdateUser(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	user := &models.User{}
	if err := c.Bind(user); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	updated, err := h.userService.UpdateUser(c.Request().Context(), id, user)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandlers) DeleteUser(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	if err := h.userService.DeleteUser(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CheckUsername handles GET /users/check/username/:username
func (h *UserHandlers) CheckUsername(c echo.Context) error {
	exists, err := h.userService.ExistsByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}

// CheckEmail handles GET /users/check/email/:email
func (h *UserHandlers) CheckEmail(c echo.Context) error {
	exists, err := h.userService.ExistsByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}
