package auth_service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/email"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"github.com/tcp_snm/leetlab/internal/service"
	"golang.org/x/crypto/bcrypt"
)

func generatePasswordHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("%w, cannot hash password, %w", leetlab_errors.ErrInternal, err)
		log.Error(err)
		return "", err
	}
	return string(hash), nil
}

func generateJWT(
	userId uuid.UUID,
	userMail string,
	validFor time.Duration,
) (string, time.Time, error) {
	secret, err := service.GetJWTSecret()
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expiry := now.Add(validFor)
	claims := service.UserCredentialClaims{
		UserId: userId,
		Email:  userMail,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userId.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		err = fmt.Errorf("%w, cannot sign jwt, %w", leetlab_errors.ErrInternal, err)
		log.Error(err)
		return "", time.Time{}, err
	}
	return token, expiry, nil
}

// SendVerificationEmail issues a token for purpose and mails it to userMail.
func (a *AuthService) SendVerificationEmail(
	ctx context.Context,
	userMail string,
	purpose email.EmailPurpose,
) error {
	token, err := a.Tokens.Issue(ctx, userMail, purpose)
	if err != nil {
		return err
	}

	var subject, body string
	switch purpose {
	case email.PurposeEmailVerification:
		subject = "Verify your LeetLab account"
		body = fmt.Sprintf(
			"Open %s/v1/auth/verify/%s to verify your email. The link expires in %s.",
			a.BaseURL, token, a.Tokens.ttl,
		)
	case email.PurposeEmailPasswordReset:
		subject = "Reset your LeetLab password"
		body = fmt.Sprintf(
			"Use this token to reset your password: %s\nIt expires in %s.",
			token, a.Tokens.ttl,
		)
	default:
		err = fmt.Errorf("%w, unknown email purpose %s", leetlab_errors.ErrInternal, purpose)
		log.Error(err)
		return err
	}

	return a.Mailer.Send(ctx, email.EmailRequest{
		To:       []string{userMail},
		Subject:  subject,
		Body:     body,
		BodyType: email.KeyEmailBodyPlain,
		Purpose:  purpose,
	})
}
