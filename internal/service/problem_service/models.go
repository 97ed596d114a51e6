package problem_service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tcp_snm/leetlab/internal/database"
	"github.com/tcp_snm/leetlab/internal/judge"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"github.com/tcp_snm/leetlab/internal/service/user_service"
)

var (
	msgUniqueKey = map[string]string{
		"uq_problems_title": "problem with that title already exist",
	}

	msgForeignKey = map[string]string{
		"fk_problems_created_by": "author of the problem does not exist",
	}

	errMsgs = map[string]map[string]string{
		leetlab_errors.CodeUniqueConstraint:     msgUniqueKey,
		leetlab_errors.CodeForeignKeyConstraint: msgForeignKey,
	}
)

type problemStore interface {
	CreateProblem(ctx context.Context, arg database.CreateProblemParams) (database.Problem, error)
	GetProblemById(ctx context.Context, id uuid.UUID) (database.Problem, error)
	ListProblems(ctx context.Context, arg database.ListProblemsParams) ([]database.ListProblemsRow, error)
	UpdateProblem(ctx context.Context, arg database.UpdateProblemParams) (database.Problem, error)
	DeleteProblem(ctx context.Context, id uuid.UUID) (int64, error)
}

type userAuthorizer interface {
	FetchUserRole(ctx context.Context, userId uuid.UUID) (user_service.UserRole, error)
	AuthorizeUserRole(ctx context.Context, userId uuid.UUID, role user_service.UserRole, warnMessage string) error
}

type solutionVerifier interface {
	Verify(ctx context.Context, solutions []judge.ReferenceSolution, testCases []judge.TestCase) ([]judge.Outcome, error)
}

type ProblemService struct {
	DB                problemStore
	UserServiceConfig userAuthorizer
	Verifier          solutionVerifier
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

type Example struct {
	Input       string  `json:"input" validate:"required"`
	Output      string  `json:"output" validate:"required"`
	Explanation *string `json:"explanation,omitempty"`
}

type Problem struct {
	ID                 uuid.UUID          `json:"id"`
	Title              string             `json:"title" validate:"required,max=200"`
	Description        string             `json:"description" validate:"required"`
	Difficulty         Difficulty         `json:"difficulty" validate:"required,oneof=EASY MEDIUM HARD"`
	Tags               []string           `json:"tags" validate:"max=20,dive,required,max=50"`
	Examples           []Example          `json:"examples" validate:"required,min=1,dive"`
	Constraints        string             `json:"constraints" validate:"required"`
	Hints              *string            `json:"hints,omitempty"`
	Editorial          *string            `json:"editorial,omitempty"`
	TestCases          []judge.TestCase   `json:"test_cases,omitempty" validate:"required,min=1"`
	CodeSnippets       map[string]string  `json:"code_snippets" validate:"required,min=1"`
	ReferenceSolutions ReferenceSolutions `json:"reference_solutions,omitempty" validate:"required,min=1,dive"`
	CreatedBy          uuid.UUID          `json:"created_by"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type ProblemMetaData struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
	Tags       []string   `json:"tags"`
	CreatedBy  uuid.UUID  `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
}

type GetProblemsRequest struct {
	Difficulty *string `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	PageNumber int32   `json:"page_number" validate:"min=1"`
	PageSize   int32   `json:"page_size" validate:"min=1,max=100"`
}
