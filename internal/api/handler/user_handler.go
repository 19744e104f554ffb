package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sociopedia/server/internal/core/ports"
)

// UserHandler serves profile and friendship routes. All routes require Auth.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Get handles GET /users/:id.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Friends handles GET /users/:id/friends.
//
// @Summary      List a user's friends
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {array}   domain.Friend
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/friends [get]
func (h *UserHandler) Friends(c echo.Context) error {
	friends, err := h.service.GetFriends(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, friends)
}

// ToggleFriend handles PATCH /users/:id/:friendId.
//
// @Summary      Add or remove a friend
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true  "Caller's user id"
// @Param        friendId  path      string  true  "Friend's user id"
// @Success      200       {array}   domain.Friend
// @Failure      400       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /users/{id}/{friendId} [patch]
func (h *UserHandler) ToggleFriend(c echo.Context) error {
	friends, err := h.service.ToggleFriend(c.Request().Context(), c.Param("id"), c.Param("friendId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, friends)
}
