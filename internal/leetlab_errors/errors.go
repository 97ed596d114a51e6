package leetlab_errors

import (
	"database/sql"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

const (
	CodeUniqueConstraint     = "23505"
	CodeForeignKeyConstraint = "23503"
)

var (
	ErrInternal                 = errors.New("internal service error. please try again later")
	ErrInvalidRequest           = errors.New("invalid request")
	ErrInvalidInput             = errors.New("invalid input")
	ErrUserAlreadyExists        = errors.New("user already exists")
	ErrInvalidUserCredentials   = errors.New("invalid email or password")
	ErrEmailServiceStopped      = errors.New("email service is stopped currently")
	ErrVerificationTokenExpired = errors.New("verfication token expired. please try again")
	ErrUnAuthenticated          = errors.New("you are not authenticated")
	ErrUnAuthorized             = errors.New("user not allowed to perform this action")
	ErrNotFound                 = errors.New("entity not found")
	ErrPartialResult            = errors.New("unable to fetch complete list of requested entities")
	ErrHttpResponse             = errors.New("error occurred with http response")
	ErrEntityAlreadyExist       = errors.New("entity with given key already exist")

	// judge pipeline
	ErrUnsupportedLanguage      = errors.New("unsupported language")
	ErrLanguageTableUnavailable = errors.New("language table of the judge is unavailable")
	ErrSubmissionFailed         = errors.New("submission failed")
	ErrPollTimeout              = errors.New("judge timeout")
	ErrTestCaseFailed           = errors.New("test case failed")
	ErrInternalJudge            = errors.New("unexpected response from judge")
	ErrVerificationCancelled    = errors.New("verification cancelled")
	ErrPersistenceFailed        = errors.New("failed to persist entity")
)

func HandleDBErrors(
	err error,
	errMsgs map[string]map[string]string,
	contextMessage string,
) error {
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		log.Error(fmt.Sprintf("%s, %v", contextMessage, ErrNotFound))
		return ErrNotFound
	}

	// assume its an internal error first
	err = fmt.Errorf(
		"%w, %s, %w",
		ErrInternal,
		contextMessage,
		err,
	)

	// check if its a pg error
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		log.Error(err)
		return err
	}

	if errMsgs == nil {
		log.Warnf("got null errMsgs")
		log.Error(err)
		return err
	}

	// check if its a foriegn key error
	if pgErr.Code == CodeForeignKeyConstraint {
		msgForeignKey, ok := errMsgs[CodeForeignKeyConstraint]
		if !ok {
			log.Warnf("no msg map found for foreign key constraint.")
			return fmt.Errorf(
				"%w, %s",
				ErrInvalidRequest,
				pgErr.Detail,
			)
		}
		return handleConstraintError(pgErr, msgForeignKey)
	}

	// check if its a unique key error
	if pgErr.Code == CodeUniqueConstraint {
		msgUniqueConstraint, ok := errMsgs[CodeUniqueConstraint]
		if !ok {
			log.Warnf("no msg map found for unique key constraint.")
			return fmt.Errorf(
				"%w, %s",
				ErrInvalidRequest,
				pgErr.Detail,
			)
		}
		return handleConstraintError(pgErr, msgUniqueConstraint)
	}

	// unknown error
	log.Error(err)
	return err
}

func handleConstraintError(pgErr *pgconn.PgError, msgs map[string]string) error {
	msg, ok := msgs[pgErr.ConstraintName]
	if !ok {
		log.Warnf(
			"unknown constraint violation %s (code %s)",
			pgErr.ConstraintName,
			pgErr.Code,
		)
		msg = pgErr.Detail
	}
	err := fmt.Errorf(
		"%w, %s",
		ErrInvalidRequest,
		msg,
	)
	log.Error(err)
	return err
}

// handles inter process communication errors
func WrapIPCError(err error) error {
	var opError *net.OpError
	if errors.As(err, &opError) {
		err = fmt.Errorf(
			"%w, \"%s\" error occurred during \"%s\" operation, network: %s, dest: %s",
			ErrInternal,
			opError.Error(),
			opError.Op,
			opError.Net,
			opError.Addr,
		)
		return err
	}

	// unknown error
	err = fmt.Errorf(
		"%w, %w", ErrInternal, err,
	)
	return err
}
