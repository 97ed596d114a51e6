package auth_service

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/database"
	"github.com/tcp_snm/leetlab/internal/email"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"github.com/tcp_snm/leetlab/internal/service"
)

func (a *AuthService) ResetPasswordSendMail(
	ctx context.Context,
	request ResetPasswordMailRequest,
) error {
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))
	if err := service.ValidateInput(request); err != nil {
		return err
	}

	user, err := a.UserConfig.GetUserByEmail(ctx, request.Email)
	if err != nil {
		return err
	}

	return a.SendVerificationEmail(
		ctx,
		user.Email,
		email.PurposeEmailPasswordReset,
	)
}

func (a *AuthService) ResetPassword(
	ctx context.Context,
	request ResetPasswordRequest,
) error {
	resetLogger := log.WithFields(
		log.Fields{
			"request": request,
			"purpose": string(email.PurposeEmailPasswordReset),
		},
	)

	// validate before the token is spent
	if err := service.ValidateInput(request); err != nil {
		return err
	}

	userMail, err := a.Tokens.Consume(ctx, request.Token, email.PurposeEmailPasswordReset)
	if err != nil {
		return err
	}

	passwordHash, err := generatePasswordHash(request.Password)
	if err != nil {
		return err
	}

	rows, err := a.DB.ResetPassword(ctx, database.ResetPasswordParams{
		PasswordHash: passwordHash,
		Email:        userMail,
	})
	if err != nil {
		resetLogger.Errorf("unable to reset password, %v", err)
		return fmt.Errorf("%w, unable to reset password", leetlab_errors.ErrInternal)
	}
	if rows == 0 {
		return fmt.Errorf("%w, no user with that email", leetlab_errors.ErrNotFound)
	}

	resetLogger.Info("password reset")
	return nil
}
