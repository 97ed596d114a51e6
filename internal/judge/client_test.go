package judge

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
)

func TestClientSubmitAndFetch(t *testing.T) {
	fj := newFakeJudge(t)
	cfg := fj.config()
	cfg.AuthToken = "secret"
	client := fj.client(cfg)

	tokens, err := client.SubmitBatch(context.Background(), []SubmissionRequest{
		{LanguageID: 71, SourceCode: "print(input())", Stdin: "1", ExpectedOutput: "1"},
		{LanguageID: 71, SourceCode: "print(input())", Stdin: "2", ExpectedOutput: "2"},
	})
	require.NoError(t, err)
	require.Equal(t, []Token{"tok-1", "tok-2"}, tokens)
	fj.mu.Lock()
	require.Equal(t, "secret", fj.headers.Get("X-Auth-Token"))
	fj.mu.Unlock()

	results, err := client.GetBatch(context.Background(), tokens)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, StatusAccepted, results[0].Status)
	require.Equal(t, "1", results[0].Stdout)
	require.Equal(t, Token("tok-2"), results[1].Token)

	// the judge answers null for the token it never issued
	_, err = client.GetBatch(context.Background(), []Token{tokens[0], "missing", tokens[1]})
	require.ErrorIs(t, err, leetlab_errors.ErrInternalJudge)
	require.Contains(t, err.Error(), "missing")
}

func TestClientRejectedRequest(t *testing.T) {
	fj := newFakeJudge(t)
	fj.mu.Lock()
	fj.getStatus = http.StatusNotFound
	fj.mu.Unlock()
	client := fj.client(fj.config())

	_, err := client.GetBatch(context.Background(), []Token{"tok-1"})
	require.ErrorIs(t, err, leetlab_errors.ErrHttpResponse)
	require.ErrorIs(t, err, errRequestRejected)

	fj.mu.Lock()
	fj.getStatus = http.StatusTooManyRequests
	fj.mu.Unlock()
	_, err = client.GetBatch(context.Background(), []Token{"tok-1"})
	require.ErrorIs(t, err, leetlab_errors.ErrHttpResponse)
	require.NotErrorIs(t, err, errRequestRejected)
}

func TestClientHttpError(t *testing.T) {
	fj := newFakeJudge(t)
	fj.submitStatus = http.StatusTooManyRequests
	client := fj.client(fj.config())

	_, err := client.SubmitBatch(context.Background(), []SubmissionRequest{{LanguageID: 71}})
	require.ErrorIs(t, err, leetlab_errors.ErrHttpResponse)
}

func TestClientRejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(Config{})
	require.ErrorIs(t, err, leetlab_errors.ErrInvalidInput)

	cfg := DefaultConfig("http://judge.local")
	cfg.BatchSize = 0
	_, err = NewClient(cfg)
	require.ErrorIs(t, err, leetlab_errors.ErrInvalidInput)
}
