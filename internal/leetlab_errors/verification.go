package leetlab_errors

import (
	"errors"
	"fmt"
)

// Reason is the machine readable code sent to the caller when a
// problem is rejected by the verification pipeline.
type Reason string

const (
	ReasonUnsupportedLanguage   Reason = "unsupported_language"
	ReasonLanguageTable         Reason = "language_table_unavailable"
	ReasonSubmissionFailed      Reason = "submission_failed"
	ReasonJudgeTimeout          Reason = "judge_timeout"
	ReasonTestCaseFailed        Reason = "test_case_failed"
	ReasonInternalJudgeError    Reason = "internal_judge_error"
	ReasonVerificationCancelled Reason = "verification_cancelled"
)

var reasonSentinels = map[Reason]error{
	ReasonUnsupportedLanguage:   ErrUnsupportedLanguage,
	ReasonLanguageTable:         ErrLanguageTableUnavailable,
	ReasonSubmissionFailed:      ErrSubmissionFailed,
	ReasonJudgeTimeout:          ErrPollTimeout,
	ReasonTestCaseFailed:        ErrTestCaseFailed,
	ReasonInternalJudgeError:    ErrInternalJudge,
	ReasonVerificationCancelled: ErrVerificationCancelled,
}

// cancellation wins over whatever the interrupted call reported
var reasonPrecedence = []Reason{
	ReasonVerificationCancelled,
	ReasonUnsupportedLanguage,
	ReasonLanguageTable,
	ReasonJudgeTimeout,
	ReasonInternalJudgeError,
	ReasonSubmissionFailed,
	ReasonTestCaseFailed,
}

// VerificationError rejects a problem for a single language. Err holds
// the underlying diagnostic and never reaches the caller.
type VerificationError struct {
	Reason   Reason
	Language string
	// 1-indexed, zero when the failure is not tied to a test case
	TestCase int
	Status   string
	Err      error
}

// NewVerificationError classifies err by the sentinel it wraps.
func NewVerificationError(language string, err error) *VerificationError {
	var vErr *VerificationError
	if errors.As(err, &vErr) {
		return vErr
	}
	reason := ReasonInternalJudgeError
	for _, r := range reasonPrecedence {
		if errors.Is(err, reasonSentinels[r]) {
			reason = r
			break
		}
	}
	return &VerificationError{
		Reason:   reason,
		Language: language,
		Err:      err,
	}
}

func (e *VerificationError) Message() string {
	switch e.Reason {
	case ReasonUnsupportedLanguage:
		return fmt.Sprintf("Language %s is not supported", e.Language)
	case ReasonLanguageTable:
		return fmt.Sprintf("cannot resolve language %s, judge languages are unavailable", e.Language)
	case ReasonSubmissionFailed:
		return fmt.Sprintf("submission to judge failed for language %s", e.Language)
	case ReasonJudgeTimeout:
		return fmt.Sprintf("judge did not finish in time for language %s", e.Language)
	case ReasonTestCaseFailed:
		return fmt.Sprintf("Test case %d failed for language %s", e.TestCase, e.Language)
	case ReasonVerificationCancelled:
		return fmt.Sprintf("verification cancelled for language %s", e.Language)
	default:
		return fmt.Sprintf("judge returned an unexpected response for language %s", e.Language)
	}
}

func (e *VerificationError) Error() string {
	msg := e.Message()
	if e.Status != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s, %v", msg, e.Err)
	}
	return msg
}

func (e *VerificationError) Unwrap() []error {
	errs := []error{reasonSentinels[e.Reason]}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
