package controllers

import (
	"net/http"

	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/models/dto"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/services"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/middleware"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TeacherController handles teacher profile endpoints
type TeacherController struct {
	teacherService *services.TeacherService
	logger         zerolog.Logger
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService *services.TeacherService, logger zerolog.Logger) *TeacherController {
	return &TeacherController{
		teacherService: teacherService,
		logger:         logger,
	}
}

// CreateProfile creates the caller's teacher profile
// POST /teacher
func (c *TeacherController) CreateProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.CreateTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	teacherID, err := c.teacherService.CreateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateTeacherResponse{
		Message:   "Teacher profile created successfully",
		TeacherID: teacherID,
	})
}

// GetProfile returns the caller with their profile fields
// GET /profile
func (c *TeacherController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	profile, err := c.teacherService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProfileResponse{
		Success: true,
		Data:    dto.NewTeacherProfileResponse(profile),
	})
}

// ListProfiles lists active teachers
// GET /profiles
func (c *TeacherController) ListProfiles(ctx *gin.Context) {
	profiles, err := c.teacherService.ListProfiles(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(dto.NewTeacherProfileList(profiles), len(profiles)))
}
