package judge

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
)

type batchSubmitter interface {
	SubmitBatch(ctx context.Context, requests []SubmissionRequest) ([]Token, error)
}

// Submitter sends one reference solution against every test case.
type Submitter struct {
	api       batchSubmitter
	batchSize int
	logger    *logrus.Entry
}

func NewSubmitter(api batchSubmitter, cfg Config) *Submitter {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Submitter{
		api:       api,
		batchSize: batchSize,
		logger: logrus.WithFields(logrus.Fields{
			"from": "batch-submitter",
		}),
	}
}

// Submit returns exactly one token per test case, in test case order.
// Batches larger than the judge's limit are split and sent in order.
func (s *Submitter) Submit(
	ctx context.Context,
	languageID int,
	sourceCode string,
	testCases []TestCase,
) ([]Token, error) {
	if len(testCases) == 0 {
		return nil, fmt.Errorf(
			"%w, reference solution has no test cases to run against",
			leetlab_errors.ErrInvalidInput,
		)
	}

	tokens := make([]Token, 0, len(testCases))
	for start := 0; start < len(testCases); start += s.batchSize {
		end := min(start+s.batchSize, len(testCases))

		requests := make([]SubmissionRequest, 0, end-start)
		for _, tc := range testCases[start:end] {
			requests = append(requests, SubmissionRequest{
				LanguageID:     languageID,
				SourceCode:     sourceCode,
				Stdin:          tc.Input,
				ExpectedOutput: tc.Output,
			})
		}

		batchTokens, err := s.api.SubmitBatch(ctx, requests)
		if err != nil {
			return nil, s.classify(ctx, err, start, end)
		}

		// a partially accepted batch is a failed batch
		if len(batchTokens) != len(requests) {
			err = fmt.Errorf(
				"%w, judge returned %d tokens for %d submissions (test cases %d-%d)",
				leetlab_errors.ErrSubmissionFailed,
				len(batchTokens), len(requests), start+1, end,
			)
			s.logger.Error(err)
			return nil, err
		}
		for i, token := range batchTokens {
			if token == "" {
				err = fmt.Errorf(
					"%w, judge rejected submission for test case %d",
					leetlab_errors.ErrSubmissionFailed,
					start+i+1,
				)
				s.logger.Error(err)
				return nil, err
			}
		}

		tokens = append(tokens, batchTokens...)
	}

	s.logger.WithFields(logrus.Fields{
		"language_id": languageID,
		"submissions": len(tokens),
	}).Debug("submitted batch to judge")

	return tokens, nil
}

func (s *Submitter) classify(ctx context.Context, err error, start, end int) error {
	switch {
	case ctx.Err() != nil:
		err = fmt.Errorf("%w, %w", leetlab_errors.ErrVerificationCancelled, ctx.Err())
	case errors.Is(err, leetlab_errors.ErrInternalJudge):
		// already carries the right kind
	default:
		err = fmt.Errorf(
			"%w, cannot submit test cases %d-%d, %w",
			leetlab_errors.ErrSubmissionFailed,
			start+1, end, err,
		)
	}
	s.logger.Error(err)
	return err
}
