package repositories

import (
	"context"

	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/models"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/repositories/user"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/db"
)

// AccountStore is the persistence contract for users and their teacher profiles.
// Mutating methods run on the caller's Querier so they can share a transaction.
type AccountStore interface {
	CreateIdentity(ctx context.Context, q db.Querier, email, firstName, lastName, passwordHash string) (int64, error)
	CreateProfile(ctx context.Context, q db.Querier, teacher *models.Teacher) (int64, error)

	FindIdentityByEmail(ctx context.Context, email string) (*models.User, error)
	FindIdentityByID(ctx context.Context, id int64) (*models.User, error)

	GetProfileJoinedWithIdentity(ctx context.Context, userID int64) (*models.TeacherProfile, error)
	ListActiveProfilesJoinedWithIdentity(ctx context.Context) ([]models.TeacherProfile, error)
}

// UserRepository combines the identity and teacher repositories
type UserRepository struct {
	common  *user.Repository
	teacher *user.TeacherRepository
}

var _ AccountStore = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository reading through pool
func NewUserRepository(pool db.Querier) *UserRepository {
	return &UserRepository{
		common:  user.NewRepository(pool),
		teacher: user.NewTeacherRepository(pool),
	}
}

// CreateIdentity creates a new user
func (r *UserRepository) CreateIdentity(ctx context.Context, q db.Querier, email, firstName, lastName, passwordHash string) (int64, error) {
	return r.common.CreateIdentity(ctx, q, email, firstName, lastName, passwordHash)
}

// CreateProfile creates a teacher profile for an existing active user
func (r *UserRepository) CreateProfile(ctx context.Context, q db.Querier, teacher *models.Teacher) (int64, error) {
	return r.teacher.CreateProfile(ctx, q, teacher)
}

// FindIdentityByEmail retrieves a user by email
func (r *UserRepository) FindIdentityByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.common.FindIdentityByEmail(ctx, email)
}

// FindIdentityByID retrieves a user by ID
func (r *UserRepository) FindIdentityByID(ctx context.Context, id int64) (*models.User, error) {
	return r.common.FindIdentityByID(ctx, id)
}

// GetProfileJoinedWithIdentity retrieves a user together with their profile, if any
func (r *UserRepository) GetProfileJoinedWithIdentity(ctx context.Context, userID int64) (*models.TeacherProfile, error) {
	return r.teacher.GetProfileJoinedWithIdentity(ctx, userID)
}

// ListActiveProfilesJoinedWithIdentity lists active teachers
func (r *UserRepository) ListActiveProfilesJoinedWithIdentity(ctx context.Context) ([]models.TeacherProfile, error) {
	return r.teacher.ListActiveProfilesJoinedWithIdentity(ctx)
}
