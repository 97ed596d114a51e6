package auth_service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/database"
	"github.com/tcp_snm/leetlab/internal/email"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"github.com/tcp_snm/leetlab/internal/service"
	"github.com/tcp_snm/leetlab/internal/service/user_service"
)

func (a *AuthService) Register(
	ctx context.Context,
	registration UserRegistration,
) (user_service.User, error) {
	registration.Email = strings.ToLower(strings.TrimSpace(registration.Email))
	if err := service.ValidateInput(registration); err != nil {
		return user_service.User{}, err
	}

	passwordHash, err := generatePasswordHash(registration.Password)
	if err != nil {
		return user_service.User{}, err
	}

	dbUser, err := a.DB.CreateUser(ctx, database.CreateUserParams{
		Name:         registration.Name,
		Email:        registration.Email,
		PasswordHash: passwordHash,
		Role:         string(user_service.RoleUser),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_users_email" {
			return user_service.User{}, fmt.Errorf(
				"%w, %s",
				leetlab_errors.ErrUserAlreadyExists,
				msgUniqueKey[pgErr.ConstraintName],
			)
		}
		return user_service.User{}, leetlab_errors.HandleDBErrors(
			err,
			errMsgs,
			"failed to insert user into db",
		)
	}

	userLogger := log.WithFields(log.Fields{
		"user_id": dbUser.ID,
	})
	userLogger.Info("created user")

	// the account exists either way, verification can be requested again
	if err = a.SendVerificationEmail(ctx, dbUser.Email, email.PurposeEmailVerification); err != nil {
		userLogger.Warnf("cannot send verification mail, %v", err)
	}

	user, err := a.UserConfig.GetUserProfile(ctx, dbUser.ID)
	if err != nil {
		return user_service.User{}, err
	}
	return user, nil
}

func (a *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w, verification token is required", leetlab_errors.ErrInvalidInput)
	}

	userMail, err := a.Tokens.Consume(ctx, token, email.PurposeEmailVerification)
	if err != nil {
		return err
	}

	rows, err := a.DB.MarkEmailVerified(ctx, userMail)
	if err != nil {
		return leetlab_errors.HandleDBErrors(err, errMsgs, "cannot mark email as verified")
	}
	if rows == 0 {
		return fmt.Errorf("%w, no user with that email", leetlab_errors.ErrNotFound)
	}

	log.Info("email verified")
	return nil
}
