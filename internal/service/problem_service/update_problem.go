package problem_service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/database"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"github.com/tcp_snm/leetlab/internal/service"
	"github.com/tcp_snm/leetlab/internal/service/user_service"
)

// UpdateProblem replaces a problem. The new version goes through the same
// verification as a new problem and the old one stays untouched if it fails.
func (p *ProblemService) UpdateProblem(
	ctx context.Context,
	id uuid.UUID,
	problem Problem,
) (updated Problem, err error) {
	defer recoverInternal("update problem", &err)

	claims, err := service.GetClaimsFromContext(ctx)
	if err != nil {
		return Problem{}, err
	}

	if err = p.UserServiceConfig.AuthorizeUserRole(
		ctx,
		claims.UserId,
		user_service.RoleAdmin,
		fmt.Sprintf("user %v tried to update problem %v", claims.UserId, id),
	); err != nil {
		return Problem{}, err
	}

	// no judge calls for a problem that does not exist
	if _, err = p.fetchProblem(ctx, id); err != nil {
		return Problem{}, err
	}

	if err = validateProblem(&problem); err != nil {
		return Problem{}, err
	}

	problemLogger := log.WithFields(log.Fields{
		"problem_id": id,
		"editor":     claims.UserId,
		"languages":  len(problem.ReferenceSolutions),
		"test_cases": len(problem.TestCases),
	})

	if err = p.verify(ctx, problemLogger, problem); err != nil {
		return Problem{}, err
	}

	docs, err := encodeProblemDocuments(problem)
	if err != nil {
		return Problem{}, err
	}

	dbProblem, err := p.DB.UpdateProblem(ctx, database.UpdateProblemParams{
		ID:                 id,
		Title:              problem.Title,
		Description:        problem.Description,
		Difficulty:         string(problem.Difficulty),
		Tags:               nonNilTags(problem.Tags),
		Examples:           docs.examples,
		Constraints:        problem.Constraints,
		Hints:              problem.Hints,
		Editorial:          problem.Editorial,
		TestCases:          docs.testCases,
		CodeSnippets:       docs.codeSnippets,
		ReferenceSolutions: docs.referenceSolutions,
	})
	if err != nil {
		err = leetlab_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("failed to update problem %v", id),
		)
		return Problem{}, persistenceError(err)
	}

	updated, err = dbProblemToProblem(dbProblem)
	if err != nil {
		return Problem{}, err
	}
	problemLogger.Info("problem updated")
	return updated, nil
}

func (p *ProblemService) DeleteProblem(ctx context.Context, id uuid.UUID) error {
	claims, err := service.GetClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err = p.UserServiceConfig.AuthorizeUserRole(
		ctx,
		claims.UserId,
		user_service.RoleAdmin,
		fmt.Sprintf("user %v tried to delete problem %v", claims.UserId, id),
	); err != nil {
		return err
	}

	rows, err := p.DB.DeleteProblem(ctx, id)
	if err != nil {
		return persistenceError(leetlab_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("failed to delete problem %v", id),
		))
	}
	if rows == 0 {
		return fmt.Errorf("%w, no problem exist with the given id", leetlab_errors.ErrNotFound)
	}

	log.WithFields(log.Fields{
		"problem_id": id,
		"editor":     claims.UserId,
	}).Info("problem deleted")
	return nil
}
