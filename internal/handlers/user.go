package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"megawarez/internal/auth"
	"megawarez/internal/dto"
	"megawarez/internal/service"
)

// UserHandler serves accounts and their sessions.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register godoc
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Credentials"
// @Success      201   {object}  dto.Response{data=dto.UserResponse}
// @Success      200   {object}  dto.Response  "username already registered"
// @Failure      400   {object}  dto.Response
// @Failure      429   {object}  dto.Response
// @Router       /user [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrUsernameTaken) {
		ok(c, http.StatusOK, "user is already registered", nil)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "user registered", dto.UserFromDomain(u))
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.Response{data=[]dto.UserResponse}
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "users", dto.UsersFromDomain(list))
}

// Get godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  dto.Response{data=dto.UserResponse}
// @Failure      404  {object}  dto.Response
// @Router       /user/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "user", dto.UserFromDomain(u))
}

// UpdateUsername godoc
// @Summary      Change a username
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                        true  "User ID"
// @Param        body  body      dto.UpdateUsernameRequest  true  "New username"
// @Success      200   {object}  dto.Response{data=dto.UserResponse}
// @Failure      400   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Router       /user/{id}/username [patch]
func (h *UserHandler) UpdateUsername(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var req dto.UpdateUsernameRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.users.Rename(c.Request.Context(), auth.TokenFromRequest(c), id, req.Username)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "username updated", dto.UserFromDomain(u))
}

// UpdatePassword godoc
// @Summary      Change a password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                        true  "User ID"
// @Param        body  body      dto.UpdatePasswordRequest  true  "New password"
// @Success      200   {object}  dto.Response{data=dto.UserResponse}
// @Failure      400   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Router       /user/{id}/password [patch]
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var req dto.UpdatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.users.ChangePassword(c.Request.Context(), auth.TokenFromRequest(c), id, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "password updated", dto.UserFromDomain(u))
}

// Delete godoc
// @Summary      Delete a user with its sessions and downloads
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  dto.Response{data=dto.DeletedUserResponse}
// @Failure      401  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /user/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	u, removed, err := h.users.Delete(c.Request.Context(), auth.TokenFromRequest(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "user deleted", dto.DeletedUserResponse{
		User:    dto.UserFromDomain(u),
		Removed: dto.RemovedFromDomain(removed),
	})
}

// Sessions godoc
// @Summary      List a user's sessions
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  dto.Response{data=[]dto.SessionResponse}
// @Failure      401  {object}  dto.Response
// @Router       /user/{id}/sessions [get]
func (h *UserHandler) Sessions(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	list, err := h.users.Sessions(c.Request.Context(), auth.TokenFromRequest(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "active sessions", dto.SessionsFromDomain(list))
}

// RevokeSession godoc
// @Summary      Close a session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Session ID"
// @Success      200  {object}  dto.Response{data=dto.SessionResponse}
// @Failure      401  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /session/{id} [delete]
func (h *UserHandler) RevokeSession(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	sess, err := h.users.RevokeSession(c.Request.Context(), auth.TokenFromRequest(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "session removed", dto.SessionResponse{ID: sess.ID, UserID: sess.UserID, CreatedAt: sess.CreatedAt})
}
