package problem_service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tcp_snm/leetlab/internal/database"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"github.com/tcp_snm/leetlab/internal/service"
	"github.com/tcp_snm/leetlab/internal/service/user_service"
)

// GetProblemById returns the full problem to admins. Everyone else gets it
// without test cases and reference solutions.
func (p *ProblemService) GetProblemById(
	ctx context.Context,
	id uuid.UUID,
) (Problem, error) {
	claims, err := service.GetClaimsFromContext(ctx)
	if err != nil {
		return Problem{}, err
	}

	problem, err := p.fetchProblem(ctx, id)
	if err != nil {
		return Problem{}, err
	}

	role, err := p.UserServiceConfig.FetchUserRole(ctx, claims.UserId)
	if err != nil {
		return Problem{}, err
	}
	if role != user_service.RoleAdmin {
		problem = redactProblem(problem)
	}
	return problem, nil
}

func (p *ProblemService) GetProblemsByFilters(
	ctx context.Context,
	request GetProblemsRequest,
) ([]ProblemMetaData, error) {
	if _, err := service.GetClaimsFromContext(ctx); err != nil {
		return nil, err
	}

	if err := service.ValidateInput(request); err != nil {
		return nil, err
	}

	offset := (request.PageNumber - 1) * request.PageSize

	rows, err := p.DB.ListProblems(ctx, database.ListProblemsParams{
		Difficulty: request.Difficulty,
		Limit:      request.PageSize,
		Offset:     offset,
	})
	if err != nil {
		return nil, leetlab_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot list problems, page %d", request.PageNumber),
		)
	}

	problems := make([]ProblemMetaData, 0, len(rows))
	for _, row := range rows {
		problems = append(problems, ProblemMetaData{
			ID:         row.ID,
			Title:      row.Title,
			Difficulty: Difficulty(row.Difficulty),
			Tags:       row.Tags,
			CreatedBy:  row.CreatedBy,
			CreatedAt:  row.CreatedAt,
		})
	}
	return problems, nil
}

func (p *ProblemService) fetchProblem(ctx context.Context, id uuid.UUID) (Problem, error) {
	dbProblem, err := p.DB.GetProblemById(ctx, id)
	if err != nil {
		return Problem{}, leetlab_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch problem with id %v", id),
		)
	}
	return dbProblemToProblem(dbProblem)
}
