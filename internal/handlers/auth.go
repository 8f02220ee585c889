package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"megawarez/internal/auth"
	"megawarez/internal/dto"
	"megawarez/internal/service"
)

// AuthHandler handles login, logout and token echo.
type AuthHandler struct {
	users *service.UserService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Login godoc
// @Summary      Login
// @Description  Opens a new session. An unknown username is answered with 200 and a message.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.Response{data=dto.LoginResponse}
// @Failure      400   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Failure      429   {object}  dto.Response
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	u, sess, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrUserNotRegistered) {
		ok(c, http.StatusOK, "user is not registered", nil)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "session started", dto.LoginResponse{Token: sess.Token, User: dto.UserFromDomain(u)})
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response{data=dto.SessionResponse}
// @Failure      401  {object}  dto.Response
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, err := h.users.Logout(c.Request.Context(), auth.TokenFromRequest(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "session closed", dto.SessionResponse{ID: sess.ID, UserID: sess.UserID, CreatedAt: sess.CreatedAt})
}

// Token godoc
// @Summary      Echo the caller's token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response{data=string}
// @Failure      401  {object}  dto.Response
// @Router       /token [get]
func (h *AuthHandler) Token(c *gin.Context) {
	tok, err := h.users.Token(c.Request.Context(), auth.TokenFromRequest(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "token", tok)
}
