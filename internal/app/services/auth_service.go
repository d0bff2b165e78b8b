package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/models"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/models/dto"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/repositories"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/db"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/apperrors"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// PasswordHasher hashes and checks passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
	VerifyDummy(password string)
}

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Issue(userID int64, email string) (string, time.Time, error)
}

// LoginResult is a freshly issued session
type LoginResult struct {
	UserID    int64
	Token     string
	ExpiresAt time.Time
}

// AuthService handles registration and login
type AuthService struct {
	pool    db.Pool
	store   repositories.AccountStore
	hasher  PasswordHasher
	tokens  TokenIssuer
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	pool db.Pool,
	store repositories.AccountStore,
	hasher PasswordHasher,
	tokens TokenIssuer,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		pool:    pool,
		store:   store,
		hasher:  hasher,
		tokens:  tokens,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Register creates a user and their teacher profile in one transaction and returns the user id.
// Nothing is written when validation fails, and a failed profile insert leaves no user behind.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (int64, error) {
	email := normalizeEmail(req.Email)
	teacher, err := s.validateRegistration(req, email)
	if err != nil {
		s.metrics.RecordRegistration(metrics.ResultValidationError)
		return 0, err
	}

	var userID int64
	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		id, err := s.store.CreateIdentity(ctx, tx, email, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName), hash)
		if err != nil {
			return err
		}
		if id == 0 {
			return apperrors.ErrInsertFailed
		}

		teacher.UserID = id
		if _, err := s.store.CreateProfile(ctx, tx, teacher); err != nil {
			return err
		}

		userID = id
		return nil
	})

	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			s.metrics.RecordRegistration(metrics.ResultConflict)
			s.logger.Warn().Msg("Registration rejected: email already registered")
			return 0, err
		}
		s.metrics.RecordRegistration(metrics.ResultError)
		s.logger.Error().Err(err).Msg("Registration failed")
		return 0, fmt.Errorf("registering teacher: %w", err)
	}

	s.metrics.RecordRegistration(metrics.ResultSuccess)
	s.logger.Info().Int64("userId", userID).Msg("Teacher registered")
	return userID, nil
}

func (s *AuthService) validateRegistration(req *dto.RegisterRequest, email string) (*models.Teacher, error) {
	if err := validateName("firstName", req.FirstName); err != nil {
		return nil, err
	}
	if err := validateName("lastName", req.LastName); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	return buildTeacher(profileInput{
		UniversityName: req.UniversityName,
		Gender:         req.Gender,
		YearJoined:     req.YearJoined,
		Department:     req.Department,
		DateOfBirth:    req.DateOfBirth,
	}, false, s.now())
}

// Login checks credentials and issues a session token. Unknown email, inactive
// account and wrong password all return apperrors.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*LoginResult, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		s.metrics.RecordLogin(metrics.ResultValidationError)
		return nil, apperrors.NewValidationError("email", "email is required")
	}
	if err := validatePassword(req.Password); err != nil {
		s.metrics.RecordLogin(metrics.ResultValidationError)
		return nil, err
	}

	user, err := s.store.FindIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.hasher.VerifyDummy(req.Password)
			s.metrics.RecordLogin(metrics.ResultInvalidCredentials)
			return nil, apperrors.ErrInvalidCredentials
		}
		s.metrics.RecordLogin(metrics.ResultError)
		s.logger.Error().Err(err).Msg("Login lookup failed")
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	passwordOK := s.hasher.Verify(req.Password, user.Password)
	if !passwordOK || !user.IsActive {
		s.metrics.RecordLogin(metrics.ResultInvalidCredentials)
		s.logger.Info().Int64("userId", user.ID).Bool("active", user.IsActive).Msg("Login rejected")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.metrics.RecordLogin(metrics.ResultError)
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.metrics.RecordLogin(metrics.ResultSuccess)
	s.logger.Info().Int64("userId", user.ID).Msg("Login succeeded")
	return &LoginResult{UserID: user.ID, Token: token, ExpiresAt: expiresAt}, nil
}

// GetCurrentUser returns the active user behind a session.
// A deleted or deactivated user yields apperrors.ErrUserNotFound.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.store.FindIdentityByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}
