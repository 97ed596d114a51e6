package auth_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/email"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
)

const (
	DefaultVerificationTTL = 24 * time.Hour
	verificationKeyPrefix  = "leetlab:verification"
)

// VerificationStore keeps single use tokens in redis, each bound to an
// email and a purpose.
type VerificationStore struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *logrus.Entry
}

func NewVerificationStore(rdb redis.Cmdable, ttl time.Duration) *VerificationStore {
	if ttl <= 0 {
		ttl = DefaultVerificationTTL
	}
	return &VerificationStore{
		rdb: rdb,
		ttl: ttl,
		logger: logrus.WithFields(logrus.Fields{
			"from": "verification-store",
		}),
	}
}

func verificationKey(purpose email.EmailPurpose, token string) string {
	return fmt.Sprintf("%s:%s:%s", verificationKeyPrefix, purpose, token)
}

func (v *VerificationStore) Issue(
	ctx context.Context,
	userMail string,
	purpose email.EmailPurpose,
) (string, error) {
	token := uuid.NewString()
	if err := v.rdb.Set(ctx, verificationKey(purpose, token), userMail, v.ttl).Err(); err != nil {
		err = fmt.Errorf(
			"%w, cannot store %s verification token, %w",
			leetlab_errors.ErrInternal,
			purpose,
			err,
		)
		v.logger.Error(err)
		return "", err
	}
	return token, nil
}

// Consume returns the email bound to token and invalidates it.
func (v *VerificationStore) Consume(
	ctx context.Context,
	token string,
	purpose email.EmailPurpose,
) (string, error) {
	userMail, err := v.rdb.GetDel(ctx, verificationKey(purpose, token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", leetlab_errors.ErrVerificationTokenExpired
	}
	if err != nil {
		err = fmt.Errorf(
			"%w, cannot read %s verification token, %w",
			leetlab_errors.ErrInternal,
			purpose,
			err,
		)
		v.logger.Error(err)
		return "", err
	}
	return userMail, nil
}
