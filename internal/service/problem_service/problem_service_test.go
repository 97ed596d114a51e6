package problem_service

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/leetlab/internal/database"
	"github.com/tcp_snm/leetlab/internal/judge"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"github.com/tcp_snm/leetlab/internal/service"
	"github.com/tcp_snm/leetlab/internal/service/user_service"
)

func TestMain(m *testing.M) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logrus.SetLevel(logrus.DebugLevel)
	os.Exit(m.Run())
}

type fakeProblemStore struct {
	mu       sync.Mutex
	problems map[uuid.UUID]database.Problem
	writes   int
	writeErr error
}

func newFakeProblemStore() *fakeProblemStore {
	return &fakeProblemStore{problems: make(map[uuid.UUID]database.Problem)}
}

func (f *fakeProblemStore) CreateProblem(_ context.Context, arg database.CreateProblemParams) (database.Problem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.writeErr != nil {
		return database.Problem{}, f.writeErr
	}
	now := time.Now()
	problem := database.Problem{
		ID:                 uuid.New(),
		Title:              arg.Title,
		Description:        arg.Description,
		Difficulty:         arg.Difficulty,
		Tags:               arg.Tags,
		Examples:           arg.Examples,
		Constraints:        arg.Constraints,
		Hints:              arg.Hints,
		Editorial:          arg.Editorial,
		TestCases:          arg.TestCases,
		CodeSnippets:       arg.CodeSnippets,
		ReferenceSolutions: arg.ReferenceSolutions,
		CreatedBy:          arg.CreatedBy,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	f.problems[problem.ID] = problem
	return problem, nil
}

func (f *fakeProblemStore) GetProblemById(_ context.Context, id uuid.UUID) (database.Problem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	problem, ok := f.problems[id]
	if !ok {
		return database.Problem{}, pgx.ErrNoRows
	}
	return problem, nil
}

func (f *fakeProblemStore) ListProblems(_ context.Context, arg database.ListProblemsParams) ([]database.ListProblemsRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []database.ListProblemsRow
	for _, problem := range f.problems {
		if arg.Difficulty != nil && problem.Difficulty != *arg.Difficulty {
			continue
		}
		rows = append(rows, database.ListProblemsRow{
			ID:         problem.ID,
			Title:      problem.Title,
			Difficulty: problem.Difficulty,
			Tags:       problem.Tags,
			CreatedBy:  problem.CreatedBy,
			CreatedAt:  problem.CreatedAt,
		})
	}
	return rows, nil
}

func (f *fakeProblemStore) UpdateProblem(_ context.Context, arg database.UpdateProblemParams) (database.Problem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	problem, ok := f.problems[arg.ID]
	if !ok {
		return database.Problem{}, pgx.ErrNoRows
	}
	problem.Title = arg.Title
	problem.Description = arg.Description
	problem.TestCases = arg.TestCases
	problem.ReferenceSolutions = arg.ReferenceSolutions
	problem.UpdatedAt = time.Now()
	f.problems[arg.ID] = problem
	return problem, nil
}

func (f *fakeProblemStore) DeleteProblem(_ context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.problems[id]; !ok {
		return 0, nil
	}
	delete(f.problems, id)
	return 1, nil
}

func (f *fakeProblemStore) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

type fakeAuthorizer struct {
	roles map[uuid.UUID]user_service.UserRole
}

func (f *fakeAuthorizer) FetchUserRole(_ context.Context, userId uuid.UUID) (user_service.UserRole, error) {
	role, ok := f.roles[userId]
	if !ok {
		return "", leetlab_errors.ErrUnAuthenticated
	}
	return role, nil
}

func (f *fakeAuthorizer) AuthorizeUserRole(
	ctx context.Context,
	userId uuid.UUID,
	role user_service.UserRole,
	_ string,
) error {
	userRole, err := f.FetchUserRole(ctx, userId)
	if err != nil {
		return err
	}
	if userRole != role {
		return leetlab_errors.ErrUnAuthorized
	}
	return nil
}

type fakeVerifier struct {
	mu    sync.Mutex
	calls int
	langs []string
	err   error
	panic bool
}

func (f *fakeVerifier) Verify(
	_ context.Context,
	solutions []judge.ReferenceSolution,
	testCases []judge.TestCase,
) ([]judge.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.panic {
		panic("judge client exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	outcomes := make([]judge.Outcome, 0, len(solutions))
	for _, sol := range solutions {
		f.langs = append(f.langs, sol.Language)
		outcomes = append(outcomes, judge.Outcome{
			Language:  sol.Language,
			TestCases: len(testCases),
			Verified:  true,
		})
	}
	return outcomes, nil
}

type testEnv struct {
	svc      *ProblemService
	store    *fakeProblemStore
	verifier *fakeVerifier
	admin    context.Context
	user     context.Context
	adminID  uuid.UUID
}

func newTestEnv() *testEnv {
	adminID, userID := uuid.New(), uuid.New()
	store := newFakeProblemStore()
	verifier := &fakeVerifier{}
	return &testEnv{
		svc: &ProblemService{
			DB: store,
			UserServiceConfig: &fakeAuthorizer{roles: map[uuid.UUID]user_service.UserRole{
				adminID: user_service.RoleAdmin,
				userID:  user_service.RoleUser,
			}},
			Verifier: verifier,
		},
		store:    store,
		verifier: verifier,
		admin:    service.WithClaims(context.Background(), service.UserCredentialClaims{UserId: adminID}),
		user:     service.WithClaims(context.Background(), service.UserCredentialClaims{UserId: userID}),
		adminID:  adminID,
	}
}

func sampleProblem() Problem {
	return Problem{
		Title:       "Square",
		Description: "Print the square of n",
		Difficulty:  DifficultyEasy,
		Tags:        []string{"math"},
		Examples:    []Example{{Input: "3", Output: "9"}},
		Constraints: "1 <= n <= 1000",
		TestCases: []judge.TestCase{
			{Input: "1", Output: "1"},
			{Input: "2", Output: "4"},
			{Input: "3", Output: "9"},
		},
		CodeSnippets: map[string]string{"python": "n = int(input())"},
		ReferenceSolutions: ReferenceSolutions{
			{Language: "python", SourceCode: "print(int(input())**2)"},
			{Language: "cpp", SourceCode: "int main(){}"},
		},
	}
}

func TestCreateProblem(t *testing.T) {
	env := newTestEnv()

	created, err := env.svc.CreateProblem(env.admin, sampleProblem())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, env.adminID, created.CreatedBy)
	assert.Equal(t, sampleProblem().ReferenceSolutions, created.ReferenceSolutions)
	assert.Equal(t, sampleProblem().TestCases, created.TestCases)

	assert.Equal(t, 1, env.verifier.calls)
	assert.Equal(t, []string{"python", "cpp"}, env.verifier.langs)
	assert.Equal(t, 1, env.store.writeCount())
}

func TestCreateProblemRequiresAdmin(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.CreateProblem(env.user, sampleProblem())
	require.ErrorIs(t, err, leetlab_errors.ErrUnAuthorized)

	_, err = env.svc.CreateProblem(context.Background(), sampleProblem())
	require.ErrorIs(t, err, leetlab_errors.ErrUnAuthenticated)

	assert.Zero(t, env.verifier.calls)
	assert.Zero(t, env.store.writeCount())
}

func TestCreateProblemValidatesBeforeJudging(t *testing.T) {
	env := newTestEnv()

	problem := sampleProblem()
	problem.TestCases = nil
	_, err := env.svc.CreateProblem(env.admin, problem)
	require.ErrorIs(t, err, leetlab_errors.ErrInvalidInput)
	require.Contains(t, err.Error(), "test_cases is required")

	problem = sampleProblem()
	problem.Difficulty = "IMPOSSIBLE"
	_, err = env.svc.CreateProblem(env.admin, problem)
	require.ErrorIs(t, err, leetlab_errors.ErrInvalidInput)

	problem = sampleProblem()
	problem.ReferenceSolutions = ReferenceSolutions{{Language: "python"}}
	_, err = env.svc.CreateProblem(env.admin, problem)
	require.ErrorIs(t, err, leetlab_errors.ErrInvalidInput)

	assert.Zero(t, env.verifier.calls)
}

func TestCreateProblemRejectedByJudgeIsNotPersisted(t *testing.T) {
	env := newTestEnv()
	env.verifier.err = &leetlab_errors.VerificationError{
		Reason:   leetlab_errors.ReasonTestCaseFailed,
		Language: "cpp",
		TestCase: 2,
	}

	_, err := env.svc.CreateProblem(env.admin, sampleProblem())
	var vErr *leetlab_errors.VerificationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Test case 2 failed for language cpp", vErr.Message())
	assert.Zero(t, env.store.writeCount())
}

func TestCreateProblemPersistenceFailure(t *testing.T) {
	env := newTestEnv()
	env.store.writeErr = errors.New("connection reset")

	_, err := env.svc.CreateProblem(env.admin, sampleProblem())
	require.ErrorIs(t, err, leetlab_errors.ErrPersistenceFailed)

	env.store.writeErr = &pgconn.PgError{
		Code:           leetlab_errors.CodeUniqueConstraint,
		ConstraintName: "uq_problems_title",
	}
	_, err = env.svc.CreateProblem(env.admin, sampleProblem())
	require.ErrorIs(t, err, leetlab_errors.ErrInvalidRequest)
	require.Contains(t, err.Error(), "problem with that title already exist")
}

func TestCreateProblemRecoversFromPanic(t *testing.T) {
	env := newTestEnv()
	env.verifier.panic = true

	_, err := env.svc.CreateProblem(env.admin, sampleProblem())
	require.ErrorIs(t, err, leetlab_errors.ErrInternal)
	assert.Zero(t, env.store.writeCount())
}

func TestGetProblemRedactsForUsers(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateProblem(env.admin, sampleProblem())
	require.NoError(t, err)

	asAdmin, err := env.svc.GetProblemById(env.admin, created.ID)
	require.NoError(t, err)
	assert.Len(t, asAdmin.TestCases, 3)
	assert.Len(t, asAdmin.ReferenceSolutions, 2)

	asUser, err := env.svc.GetProblemById(env.user, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, asUser.Title)
	assert.Nil(t, asUser.TestCases)
	assert.Nil(t, asUser.ReferenceSolutions)

	_, err = env.svc.GetProblemById(env.user, uuid.New())
	require.ErrorIs(t, err, leetlab_errors.ErrNotFound)
}

func TestGetProblemsByFilters(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.CreateProblem(env.admin, sampleProblem())
	require.NoError(t, err)
	hard := sampleProblem()
	hard.Title = "Hard square"
	hard.Difficulty = DifficultyHard
	_, err = env.svc.CreateProblem(env.admin, hard)
	require.NoError(t, err)

	all, err := env.svc.GetProblemsByFilters(env.user, GetProblemsRequest{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	difficulty := string(DifficultyHard)
	filtered, err := env.svc.GetProblemsByFilters(env.user, GetProblemsRequest{
		Difficulty: &difficulty,
		PageNumber: 1,
		PageSize:   10,
	})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Hard square", filtered[0].Title)

	_, err = env.svc.GetProblemsByFilters(env.user, GetProblemsRequest{PageNumber: 0, PageSize: 10})
	require.ErrorIs(t, err, leetlab_errors.ErrInvalidInput)
}

func TestUpdateProblemReverifies(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateProblem(env.admin, sampleProblem())
	require.NoError(t, err)

	changed := sampleProblem()
	changed.Description = "Print n squared"

	_, err = env.svc.UpdateProblem(env.user, created.ID, changed)
	require.ErrorIs(t, err, leetlab_errors.ErrUnAuthorized)

	_, err = env.svc.UpdateProblem(env.admin, uuid.New(), changed)
	require.ErrorIs(t, err, leetlab_errors.ErrNotFound)
	assert.Equal(t, 1, env.verifier.calls)

	env.verifier.err = &leetlab_errors.VerificationError{
		Reason:   leetlab_errors.ReasonJudgeTimeout,
		Language: "python",
	}
	_, err = env.svc.UpdateProblem(env.admin, created.ID, changed)
	require.ErrorIs(t, err, leetlab_errors.ErrPollTimeout)
	stored, err := env.svc.GetProblemById(env.admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Print the square of n", stored.Description)

	env.verifier.err = nil
	updated, err := env.svc.UpdateProblem(env.admin, created.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, "Print n squared", updated.Description)
	assert.Equal(t, 3, env.verifier.calls)
}

func TestDeleteProblem(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateProblem(env.admin, sampleProblem())
	require.NoError(t, err)

	require.ErrorIs(t, env.svc.DeleteProblem(env.user, created.ID), leetlab_errors.ErrUnAuthorized)
	require.NoError(t, env.svc.DeleteProblem(env.admin, created.ID))
	require.ErrorIs(t, env.svc.DeleteProblem(env.admin, created.ID), leetlab_errors.ErrNotFound)
}
