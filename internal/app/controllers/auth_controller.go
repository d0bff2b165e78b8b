// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"time"

	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/models/dto"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/services"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/middleware"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	// Secure is off only for plain-HTTP local development
	Secure bool
}

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	cookie      CookieConfig
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, cookie CookieConfig, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// Register handles teacher signup
// POST /api/signup
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		badRequestBody(ctx, err)
		return
	}

	userID, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "Teacher registered successfully",
		UserID:  userID,
	})
}

// Login authenticates a teacher and sets the session cookie
// POST /api/login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, result.Token, int(c.cookie.MaxAge.Seconds()))
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Login successful"})
}

// Logout clears the session cookie. Tokens are stateless, so nothing is revoked server-side.
// POST /api/logout
func (c *AuthController) Logout(ctx *gin.Context) {
	c.setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Logged out successfully"})
}

// Me returns the authenticated user
// GET /api/me
func (c *AuthController) Me(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	user, err := c.authService.GetCurrentUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MeResponse{
		Success: true,
		User: &dto.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	})
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(c.cookie.Name, value, maxAge, "/", "", c.cookie.Secure, true)
}

// badRequestBody answers a body that could not be decoded
func badRequestBody(ctx *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
	if gin.IsDebugging() {
		errorDetail = errorDetail.WithDebugInfo("%v", err)
	}
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
