package user_service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"github.com/tcp_snm/leetlab/internal/service"
)

var (
	errMsgs = make(map[string]map[string]string)
)

func (u *UserService) GetUserProfile(
	ctx context.Context,
	userID uuid.UUID,
) (User, error) {
	dbUser, err := u.DB.GetUserById(ctx, userID)
	if err != nil {
		err = leetlab_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch user with id %v from db", userID),
		)
		return User{}, err
	}

	return dbUserToUser(dbUser), nil
}

func (u *UserService) GetUserByEmail(
	ctx context.Context,
	email string,
) (User, error) {
	dbUser, err := u.DB.GetUserByEmail(ctx, email)
	if err != nil {
		err = leetlab_errors.HandleDBErrors(
			err,
			errMsgs,
			"cannot fetch user by email from db",
		)
		return User{}, err
	}

	return dbUserToUser(dbUser), nil
}

func (u *UserService) GetMe(ctx context.Context) (User, error) {
	claims, err := service.GetClaimsFromContext(ctx)
	if err != nil {
		return User{}, err
	}

	user, err := u.GetUserProfile(ctx, claims.UserId)
	if err != nil {
		return User{}, err
	}
	// role may have been cached before this lookup
	u.roleCache.Add(user.ID, user.Role)
	return user, nil
}
