package problem_service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/database"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"github.com/tcp_snm/leetlab/internal/service"
)

func validateProblem(problem *Problem) error {
	problem.Title = strings.TrimSpace(problem.Title)
	if err := service.ValidateInput(problem); err != nil {
		return err
	}
	for language := range problem.CodeSnippets {
		if strings.TrimSpace(language) == "" {
			return fmt.Errorf("%w, code_snippets has an empty language", leetlab_errors.ErrInvalidInput)
		}
	}
	return nil
}

// encoded json columns of a problem
type problemDocuments struct {
	examples           []byte
	testCases          []byte
	codeSnippets       []byte
	referenceSolutions []byte
}

func encodeProblemDocuments(problem Problem) (problemDocuments, error) {
	var docs problemDocuments
	var err error
	encode := func(field string, v any) []byte {
		if err != nil {
			return nil
		}
		var raw []byte
		raw, err = json.Marshal(v)
		if err != nil {
			err = fmt.Errorf("%w, cannot encode %s, %w", leetlab_errors.ErrInternal, field, err)
		}
		return raw
	}

	docs.examples = encode("examples", problem.Examples)
	docs.testCases = encode("test_cases", problem.TestCases)
	docs.codeSnippets = encode("code_snippets", problem.CodeSnippets)
	docs.referenceSolutions = encode("reference_solutions", problem.ReferenceSolutions)
	if err != nil {
		log.Error(err)
		return problemDocuments{}, err
	}
	return docs, nil
}

func dbProblemToProblem(dbProblem database.Problem) (Problem, error) {
	problem := Problem{
		ID:          dbProblem.ID,
		Title:       dbProblem.Title,
		Description: dbProblem.Description,
		Difficulty:  Difficulty(dbProblem.Difficulty),
		Tags:        dbProblem.Tags,
		Constraints: dbProblem.Constraints,
		Hints:       dbProblem.Hints,
		Editorial:   dbProblem.Editorial,
		CreatedBy:   dbProblem.CreatedBy,
		CreatedAt:   dbProblem.CreatedAt,
		UpdatedAt:   dbProblem.UpdatedAt,
	}

	err := errors.Join(
		json.Unmarshal(dbProblem.Examples, &problem.Examples),
		json.Unmarshal(dbProblem.TestCases, &problem.TestCases),
		json.Unmarshal(dbProblem.CodeSnippets, &problem.CodeSnippets),
		json.Unmarshal(dbProblem.ReferenceSolutions, &problem.ReferenceSolutions),
	)
	if err != nil {
		err = fmt.Errorf(
			"%w, corrupted documents in problem %v, %w",
			leetlab_errors.ErrInternal,
			dbProblem.ID,
			err,
		)
		log.Error(err)
		return Problem{}, err
	}
	return problem, nil
}

// hide what only authors may see
func redactProblem(problem Problem) Problem {
	problem.TestCases = nil
	problem.ReferenceSolutions = nil
	return problem
}

// persistenceError keeps validation style db errors as they are and reports
// everything else as a failed write.
func persistenceError(err error) error {
	if errors.Is(err, leetlab_errors.ErrInvalidRequest) || errors.Is(err, leetlab_errors.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w, %w", leetlab_errors.ErrPersistenceFailed, err)
}

func (p *ProblemService) verify(
	ctx context.Context,
	logger *log.Entry,
	problem Problem,
) error {
	outcomes, err := p.Verifier.Verify(ctx, problem.ReferenceSolutions, problem.TestCases)
	if err != nil {
		logger.WithError(err).Warn("problem rejected")
		return err
	}
	logger.WithField("languages", len(outcomes)).Info("all reference solutions verified")
	return nil
}
