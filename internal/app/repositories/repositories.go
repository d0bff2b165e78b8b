package repositories

import (
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository *UserRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool db.Querier) *Repositories {
	return &Repositories{
		UserRepository: NewUserRepository(pool),
	}
}
