package judge

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
)

func TestRegistryBuiltin(t *testing.T) {
	reg := NewRegistry(nil)

	for name, want := range map[string]int{
		"python":  71,
		"PYTHON":  71,
		" cpp ":   54,
		"c++":     54,
		"java":    62,
		"js":      63,
		"golang":  60,
		"python3": 71,
	} {
		id, err := reg.Resolve(context.Background(), name)
		require.NoError(t, err, name)
		require.Equal(t, want, id, name)
	}

	_, err := reg.Resolve(context.Background(), "brainfuck")
	require.ErrorIs(t, err, leetlab_errors.ErrUnsupportedLanguage)
}

func TestRegistryFetchesOnce(t *testing.T) {
	fj := newFakeJudge(t)
	reg := NewRegistry(fj.client(fj.config()))

	id, err := reg.Resolve(context.Background(), "python")
	require.NoError(t, err)
	require.Equal(t, 71, id, "newest python wins")

	id, err = reg.Resolve(context.Background(), "cpp")
	require.NoError(t, err)
	require.Equal(t, 54, id)

	// ruby is built in, but not offered by this judge
	_, err = reg.Resolve(context.Background(), "ruby")
	require.ErrorIs(t, err, leetlab_errors.ErrUnsupportedLanguage)

	require.Equal(t, 1, fj.languageCallCount())
}

func TestRegistryFetchFailureIsNotNotFound(t *testing.T) {
	fj := newFakeJudge(t)
	fj.langStatus = http.StatusServiceUnavailable
	reg := NewRegistry(fj.client(fj.config()))

	_, err := reg.Resolve(context.Background(), "python")
	require.ErrorIs(t, err, leetlab_errors.ErrLanguageTableUnavailable)
	require.NotErrorIs(t, err, leetlab_errors.ErrUnsupportedLanguage)

	// failures are not cached
	fj.mu.Lock()
	fj.langStatus = 0
	fj.mu.Unlock()

	id, err := reg.Resolve(context.Background(), "python")
	require.NoError(t, err)
	require.Equal(t, 71, id)
	require.Equal(t, 2, fj.languageCallCount())
}

func TestRegistryPrefersBuiltinIds(t *testing.T) {
	fj := newFakeJudge(t)
	fj.mu.Lock()
	fj.languages = []Language{
		{ID: 50, Name: "C (GCC 9.2.0)"},
		{ID: 54, Name: "C++ (GCC 9.2.0)"},
		{ID: 75, Name: "C (Clang 7.0.1)"},
		{ID: 76, Name: "C++ (Clang 7.0.1)"},
		{ID: 70, Name: "Python (2.7.17)"},
		{ID: 71, Name: "Python (3.8.1)"},
		{ID: 90, Name: "Dart (2.19.2)"},
		{ID: 91, Name: "Dart (3.0.0)"},
	}
	fj.mu.Unlock()
	reg := NewRegistry(fj.client(fj.config()))

	for name, want := range map[string]int{
		"cpp":    54,
		"c":      50,
		"python": 71,
		"dart":   91,
	} {
		id, err := reg.Resolve(context.Background(), name)
		require.NoError(t, err, name)
		require.Equal(t, want, id, name)
	}
}

func TestRegistryWaitersHonourContext(t *testing.T) {
	lister := &blockingLister{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	reg := NewRegistry(lister)

	first := make(chan error, 1)
	go func() {
		_, err := reg.Resolve(context.Background(), "python")
		first <- err
	}()
	<-lister.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := reg.Resolve(ctx, "python")
	require.ErrorIs(t, err, leetlab_errors.ErrVerificationCancelled)

	close(lister.release)
	require.NoError(t, <-first)

	id, err := reg.Resolve(context.Background(), "python")
	require.NoError(t, err)
	require.Equal(t, 71, id)
	require.Equal(t, int32(1), lister.calls.Load())
}

type blockingLister struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (b *blockingLister) Languages(ctx context.Context) ([]Language, error) {
	if b.calls.Add(1) == 1 {
		close(b.started)
	}
	<-b.release
	return []Language{{ID: 71, Name: "Python (3.8.1)"}}, nil
}
