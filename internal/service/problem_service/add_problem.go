package problem_service

import (
	"context"
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/database"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"github.com/tcp_snm/leetlab/internal/service"
	"github.com/tcp_snm/leetlab/internal/service/user_service"
)

// CreateProblem persists problem only after every reference solution has
// passed every test case on the judge. The problem is written once, after
// verification. Nothing is stored for a rejected problem.
func (p *ProblemService) CreateProblem(
	ctx context.Context,
	problem Problem,
) (created Problem, err error) {
	defer recoverInternal("create problem", &err)

	// authenticate
	claims, err := service.GetClaimsFromContext(ctx)
	if err != nil {
		return Problem{}, err
	}

	// authorize (only admins can add problems)
	if err = p.UserServiceConfig.AuthorizeUserRole(
		ctx,
		claims.UserId,
		user_service.RoleAdmin,
		fmt.Sprintf("user %v tried for admin access to add a problem", claims.UserId),
	); err != nil {
		return Problem{}, err
	}

	if err = validateProblem(&problem); err != nil {
		return Problem{}, err
	}

	problemLogger := log.WithFields(log.Fields{
		"title":      problem.Title,
		"author":     claims.UserId,
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

	dbProblem, err := p.DB.CreateProblem(ctx, database.CreateProblemParams{
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
		CreatedBy:          claims.UserId,
	})
	if err != nil {
		err = leetlab_errors.HandleDBErrors(
			err,
			errMsgs,
			"failed to insert problem into db",
		)
		return Problem{}, persistenceError(err)
	}

	created, err = dbProblemToProblem(dbProblem)
	if err != nil {
		return Problem{}, err
	}
	problemLogger.WithField("problem_id", created.ID).Info("problem created")
	return created, nil
}

// recoverInternal turns a panic below the service boundary into ErrInternal.
func recoverInternal(operation string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = fmt.Errorf("%w, %s panicked", leetlab_errors.ErrInternal, operation)
	log.WithFields(log.Fields{
		"panic": r,
		"stack": string(debug.Stack()),
	}).Error(*err)
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
