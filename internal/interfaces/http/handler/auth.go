package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/mynet/sales/internal/application/identity"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	userService *appidentity.UserService
	clock       shared.Clock
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *appidentity.AuthService, userService *appidentity.UserService, clock shared.Clock) *AuthHandler {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &AuthHandler{
		authService: authService,
		userService: userService,
		clock:       clock,
	}
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with username and password. The permission tier is resolved once and carried by the token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body appidentity.LoginRequest true "Login credentials"
// @Success      200 {object} dto.Response{data=appidentity.LoginResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Signup godoc
// @Summary      Register a user
// @Description  Create a regular user account in an existing company
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body appidentity.SignupRequest true "Account details"
// @Success      201 {object} dto.Response{data=appidentity.UserResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req appidentity.SignupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.Signup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Logout godoc
// @Summary      User logout
// @Description  Revoke the presented access token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}

	input := appidentity.LogoutInput{UserID: p.UserID}
	if claims := middleware.GetJWTClaims(c); claims != nil {
		input.TokenJTI = claims.ID
		input.ExpiresIn = claims.RemainingTTL(h.clock.Now())
	}
	if err := h.authService.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Me godoc
// @Summary      Current user
// @Description  Return the authenticated user and tier
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=appidentity.UserInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}

	info, err := h.authService.Me(c.Request.Context(), p)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// ChangePassword godoc
// @Summary      Change password
// @Description  Replace the caller's password. The current password must match and the new one must differ.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appidentity.ChangePasswordRequest true "Passwords"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req appidentity.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), p, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
