package leetlab_errors

import (
	"errors"
	"fmt"
	"net"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logrus.SetLevel(logrus.DebugLevel)
	os.Exit(m.Run())
}

func TestHandleDBErrors(t *testing.T) {
	msgs := map[string]map[string]string{
		CodeUniqueConstraint: {"uq_problems_title": "problem with that title already exist"},
	}

	err := HandleDBErrors(fmt.Errorf("scan, %w", pgx.ErrNoRows), msgs, "fetch problem")
	require.ErrorIs(t, err, ErrNotFound)

	err = HandleDBErrors(&pgconn.PgError{
		Code:           CodeUniqueConstraint,
		ConstraintName: "uq_problems_title",
	}, msgs, "insert problem")
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, "invalid request, problem with that title already exist", err.Error())

	err = HandleDBErrors(&pgconn.PgError{
		Code:           CodeForeignKeyConstraint,
		ConstraintName: "fk_problems_created_by",
		Detail:         "Key (created_by) is not present in table users.",
	}, msgs, "insert problem")
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "is not present in table users")

	err = HandleDBErrors(errors.New("conn closed"), msgs, "insert problem")
	require.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrInvalidRequest)
}

func TestWrapIPCError(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	err := WrapIPCError(opErr)
	require.ErrorIs(t, err, ErrInternal)
	assert.Contains(t, err.Error(), `"dial" operation`)

	require.ErrorIs(t, WrapIPCError(errors.New("eof")), ErrInternal)
}

func TestNewVerificationErrorClassifies(t *testing.T) {
	tests := []struct {
		cause  error
		reason Reason
	}{
		{ErrUnsupportedLanguage, ReasonUnsupportedLanguage},
		{fmt.Errorf("%w, http 503", ErrLanguageTableUnavailable), ReasonLanguageTable},
		{fmt.Errorf("%w, 2 tokens missing", ErrSubmissionFailed), ReasonSubmissionFailed},
		{fmt.Errorf("%w, after 60 polls", ErrPollTimeout), ReasonJudgeTimeout},
		{fmt.Errorf("%w, unknown token", ErrInternalJudge), ReasonInternalJudgeError},
		{errors.New("something odd"), ReasonInternalJudgeError},
		// cancellation wins even when the interrupted step reported its own failure
		{fmt.Errorf("%w, %w", ErrSubmissionFailed, ErrVerificationCancelled), ReasonVerificationCancelled},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			vErr := NewVerificationError("go", tt.cause)
			assert.Equal(t, tt.reason, vErr.Reason)
			assert.Equal(t, "go", vErr.Language)
			require.ErrorIs(t, vErr, reasonSentinels[tt.reason])
			require.ErrorIs(t, vErr, tt.cause)
		})
	}
}

func TestVerificationErrorKeepsExisting(t *testing.T) {
	original := &VerificationError{Reason: ReasonTestCaseFailed, Language: "cpp", TestCase: 2}
	wrapped := fmt.Errorf("verify, %w", original)

	assert.Same(t, original, NewVerificationError("python", wrapped))
}

func TestVerificationErrorMessages(t *testing.T) {
	vErr := &VerificationError{
		Reason:   ReasonTestCaseFailed,
		Language: "cpp",
		TestCase: 2,
		Status:   "wrong answer",
	}
	assert.Equal(t, "Test case 2 failed for language cpp", vErr.Message())
	assert.Equal(t, "Test case 2 failed for language cpp (wrong answer)", vErr.Error())
	require.ErrorIs(t, vErr, ErrTestCaseFailed)

	unsupported := NewVerificationError("ruby", fmt.Errorf("%w, ruby", ErrUnsupportedLanguage))
	assert.Equal(t, "Language ruby is not supported", unsupported.Message())
	assert.Equal(t, "Language ruby is not supported, unsupported language, ruby", unsupported.Error())
}
