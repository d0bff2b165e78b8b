package services

import (
	"context"
	"errors"
	"time"

	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/models"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/models/dto"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/repositories"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/db"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// TeacherService manages teacher profiles
type TeacherService struct {
	pool   db.Pool
	store  repositories.AccountStore
	logger zerolog.Logger
	now    func() time.Time
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(pool db.Pool, store repositories.AccountStore, logger zerolog.Logger) *TeacherService {
	return &TeacherService{
		pool:   pool,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// CreateProfile adds the caller's profile when signup did not create one
func (s *TeacherService) CreateProfile(ctx context.Context, userID int64, req *dto.CreateTeacherRequest) (int64, error) {
	teacher, err := buildTeacher(profileInput{
		UniversityName: req.UniversityName,
		Gender:         req.Gender,
		YearJoined:     req.YearJoined,
		Department:     &req.Department,
		DateOfBirth:    &req.DateOfBirth,
	}, true, s.now())
	if err != nil {
		return 0, err
	}
	teacher.UserID = userID

	id, err := s.store.CreateProfile(ctx, s.pool, teacher)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrProfileExists):
			return 0, err
		case errors.Is(err, apperrors.ErrForeignKeyViolation):
			return 0, apperrors.ErrUserNotFound
		}
		s.logger.Error().Err(err).Int64("userId", userID).Msg("Creating teacher profile failed")
		return 0, err
	}

	s.logger.Info().Int64("userId", userID).Int64("teacherId", id).Msg("Teacher profile created")
	return id, nil
}

// GetProfile returns the caller joined with their profile
func (s *TeacherService) GetProfile(ctx context.Context, userID int64) (*models.TeacherProfile, error) {
	return s.store.GetProfileJoinedWithIdentity(ctx, userID)
}

// ListProfiles returns every active teacher ordered by name
func (s *TeacherService) ListProfiles(ctx context.Context) ([]models.TeacherProfile, error) {
	return s.store.ListActiveProfilesJoinedWithIdentity(ctx)
}
