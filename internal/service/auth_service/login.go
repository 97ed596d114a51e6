package auth_service

import (
	"context"
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"github.com/tcp_snm/leetlab/internal/service"
	"github.com/tcp_snm/leetlab/internal/service/user_service"
	"golang.org/x/crypto/bcrypt"
)

// Login checks the credentials and returns a signed session token with its
// expiry.
func (a *AuthService) Login(
	ctx context.Context,
	request UserLoginRequest,
) (user user_service.User, jwtToken string, expiry time.Time, err error) {
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))
	if err = service.ValidateInput(request); err != nil {
		return
	}

	user, err = a.UserConfig.GetUserByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, leetlab_errors.ErrNotFound) {
			err = leetlab_errors.ErrInvalidUserCredentials
		}
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)) != nil {
		log.WithField("user_id", user.ID).Warn("login with wrong password")
		err = leetlab_errors.ErrInvalidUserCredentials
		return
	}

	validFor := sessionDuration
	if request.RememberForMonth {
		validFor = extendedSessionDuration
	}
	jwtToken, expiry, err = generateJWT(user.ID, user.Email, validFor)
	return
}
