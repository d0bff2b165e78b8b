package services

import (
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/repositories"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/db"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/metrics"
	"github.com/rs/zerolog"
)

// Services holds all the service instances
type Services struct {
	AuthService    *AuthService
	TeacherService *TeacherService
}

// NewServices wires the services over one pool and store
func NewServices(
	pool db.Pool,
	repos *repositories.Repositories,
	hasher PasswordHasher,
	tokens TokenIssuer,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Services {
	return &Services{
		AuthService:    NewAuthService(pool, repos.UserRepository, hasher, tokens, m, logger.With().Str("service", "auth").Logger()),
		TeacherService: NewTeacherService(pool, repos.UserRepository, logger.With().Str("service", "teacher").Logger()),
	}
}
