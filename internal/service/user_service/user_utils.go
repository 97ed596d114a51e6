package user_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
)

// FetchUserRole reads the role through a short lived cache.
func (u *UserService) FetchUserRole(ctx context.Context, userId uuid.UUID) (UserRole, error) {
	if role, ok := u.roleCache.Get(userId); ok {
		return role, nil
	}

	role, err := u.DB.GetUserRole(ctx, userId)
	if err != nil {
		err = leetlab_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch role of user %v", userId),
		)
		// the session outlived its user
		if errors.Is(err, leetlab_errors.ErrNotFound) {
			return "", fmt.Errorf("%w, user no longer exists", leetlab_errors.ErrUnAuthenticated)
		}
		return "", err
	}

	u.roleCache.Add(userId, UserRole(role))
	return UserRole(role), nil
}

func (u *UserService) AuthorizeUserRole(
	ctx context.Context,
	userId uuid.UUID,
	role UserRole,
	warnMessage string,
) error {
	userRole, err := u.FetchUserRole(ctx, userId)
	if err != nil {
		return err
	}
	if userRole == role {
		return nil
	}
	if warnMessage != "" {
		log.Warn(warnMessage)
	}
	return leetlab_errors.ErrUnAuthorized
}
