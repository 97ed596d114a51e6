package user_service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/tcp_snm/leetlab/internal/database"
)

type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"

	roleCacheSize = 1024
	roleCacheTTL  = 5 * time.Minute
)

type userStore interface {
	GetUserById(ctx context.Context, id uuid.UUID) (database.User, error)
	GetUserByEmail(ctx context.Context, email string) (database.User, error)
	GetUserRole(ctx context.Context, id uuid.UUID) (string, error)
}

type UserService struct {
	DB        userStore
	roleCache *expirable.LRU[uuid.UUID, UserRole]
}

func NewUserService(db userStore) *UserService {
	return &UserService{
		DB:        db,
		roleCache: expirable.NewLRU[uuid.UUID, UserRole](roleCacheSize, nil, roleCacheTTL),
	}
}

type User struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          UserRole  `json:"role"`
	Image         *string   `json:"image,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	PasswordHash  string    `json:"-"`
}

func dbUserToUser(dbUser database.User) User {
	return User{
		ID:            dbUser.ID,
		Name:          dbUser.Name,
		Email:         dbUser.Email,
		Role:          UserRole(dbUser.Role),
		Image:         dbUser.Image,
		EmailVerified: dbUser.EmailVerified,
		CreatedAt:     dbUser.CreatedAt,
		PasswordHash:  dbUser.PasswordHash,
	}
}
