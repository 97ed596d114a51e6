package auth_service

import (
	"context"
	"fmt"
	"time"

	"github.com/tcp_snm/leetlab/internal/database"
	"github.com/tcp_snm/leetlab/internal/email"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"github.com/tcp_snm/leetlab/internal/service/user_service"
)

const (
	sessionDuration         = 24 * time.Hour
	extendedSessionDuration = 30 * 24 * time.Hour
)

var (
	msgUniqueKey = map[string]string{
		"uq_users_email": "user with that email already exist",
	}

	errMsgs = map[string]map[string]string{
		leetlab_errors.CodeUniqueConstraint: msgUniqueKey,
	}
)

type authStore interface {
	CreateUser(ctx context.Context, arg database.CreateUserParams) (database.User, error)
	MarkEmailVerified(ctx context.Context, email string) (int64, error)
	ResetPassword(ctx context.Context, arg database.ResetPasswordParams) (int64, error)
}

type mailer interface {
	Send(ctx context.Context, req email.EmailRequest) error
}

type AuthService struct {
	DB         authStore
	UserConfig *user_service.UserService
	Tokens     *VerificationStore
	Mailer     mailer
	// prefix of the links sent in verification mails
	BaseURL string
}

type UserRegistration struct {
	Name     string `json:"name" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type UserLoginRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required"`
	RememberForMonth bool   `json:"remember_for_month"`
}

type ResetPasswordMailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"verification_token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// never log the password or the token
func (rpr ResetPasswordRequest) String() string {
	return fmt.Sprintf("token_length=%d", len(rpr.Token))
}
