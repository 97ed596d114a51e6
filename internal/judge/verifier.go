package judge

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"golang.org/x/sync/errgroup"
)

type languageResolver interface {
	Resolve(ctx context.Context, name string) (int, error)
}

// Verifier runs every reference solution against the test cases and fails
// on the first language that does not pass all of them.
type Verifier struct {
	registry  languageResolver
	submitter *Submitter
	poller    *Poller
	parallel  bool
	logger    *logrus.Entry
}

func NewVerifier(
	registry languageResolver,
	submitter *Submitter,
	poller *Poller,
	parallel bool,
) *Verifier {
	return &Verifier{
		registry:  registry,
		submitter: submitter,
		poller:    poller,
		parallel:  parallel,
		logger: logrus.WithFields(logrus.Fields{
			"from": "verifier",
		}),
	}
}

// NewVerifierFromConfig wires the registry, submitter and poller on a
// single judge client.
func NewVerifierFromConfig(cfg Config) (*Verifier, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	var lister languageLister
	if cfg.FetchLanguages {
		lister = client
	}
	return NewVerifier(
		NewRegistry(lister),
		NewSubmitter(client, cfg),
		NewPoller(client, cfg),
		cfg.ParallelLanguages,
	), nil
}

type resolvedSolution struct {
	ReferenceSolution
	languageID int
}

// Verify returns one outcome per solution, in solution order, or the first
// failure as a *leetlab_errors.VerificationError. Every language is
// resolved before anything is sent to the judge.
func (v *Verifier) Verify(
	ctx context.Context,
	solutions []ReferenceSolution,
	testCases []TestCase,
) ([]Outcome, error) {
	if len(solutions) == 0 {
		return nil, fmt.Errorf("%w, at least one reference solution is required", leetlab_errors.ErrInvalidInput)
	}
	if len(testCases) == 0 {
		return nil, fmt.Errorf("%w, at least one test case is required", leetlab_errors.ErrInvalidInput)
	}

	languages := mapset.NewThreadUnsafeSet[string]()
	resolved := make([]resolvedSolution, 0, len(solutions))
	for _, sol := range solutions {
		if !languages.Add(NormalizeLanguage(sol.Language)) {
			return nil, fmt.Errorf(
				"%w, duplicate reference solution for language %s",
				leetlab_errors.ErrInvalidInput,
				sol.Language,
			)
		}
		id, err := v.registry.Resolve(ctx, sol.Language)
		if err != nil {
			vErr := leetlab_errors.NewVerificationError(sol.Language, err)
			v.logger.WithField("language", sol.Language).Warn(vErr)
			return nil, vErr
		}
		resolved = append(resolved, resolvedSolution{sol, id})
	}

	if v.parallel {
		return v.verifyParallel(ctx, resolved, testCases)
	}

	outcomes := make([]Outcome, 0, len(resolved))
	for _, sol := range resolved {
		outcome, err := v.verifyLanguage(ctx, sol, testCases)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (v *Verifier) verifyParallel(
	ctx context.Context,
	solutions []resolvedSolution,
	testCases []TestCase,
) ([]Outcome, error) {
	// the first failure cancels gctx and abandons the other languages
	g, gctx := errgroup.WithContext(ctx)
	outcomes := make([]Outcome, len(solutions))
	for i, sol := range solutions {
		g.Go(func() error {
			outcome, err := v.verifyLanguage(gctx, sol, testCases)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// submit, poll and evaluate a single language
func (v *Verifier) verifyLanguage(
	ctx context.Context,
	sol resolvedSolution,
	testCases []TestCase,
) (Outcome, error) {
	langLogger := v.logger.WithFields(logrus.Fields{
		"language":    sol.Language,
		"language_id": sol.languageID,
		"test_cases":  len(testCases),
	})

	tokens, err := v.submitter.Submit(ctx, sol.languageID, sol.SourceCode, testCases)
	if err != nil {
		vErr := leetlab_errors.NewVerificationError(sol.Language, err)
		langLogger.Error(vErr)
		return Outcome{}, vErr
	}

	results, err := v.poller.Poll(ctx, tokens)
	if err != nil {
		vErr := leetlab_errors.NewVerificationError(sol.Language, err)
		langLogger.Error(vErr)
		return Outcome{}, vErr
	}

	outcome := Evaluate(sol.Language, results)
	if !outcome.Verified {
		vErr := &leetlab_errors.VerificationError{
			Reason:   leetlab_errors.ReasonTestCaseFailed,
			Language: sol.Language,
			TestCase: outcome.FailedTestCase,
			Status:   outcome.FailedStatus.String(),
		}
		langLogger.WithField("diagnostic", outcome.Diagnostic).Warn(vErr)
		return outcome, vErr
	}

	langLogger.Info("reference solution verified")
	return outcome, nil
}
