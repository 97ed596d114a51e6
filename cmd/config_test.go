package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/leetlab/internal/judge"
)

func TestJudgeConfigFromEnv(t *testing.T) {
	t.Setenv(KeyJudgeBaseURL, "http://judge0:2358")
	t.Setenv(KeyJudgeAPIKey, "")
	t.Setenv(KeyJudgeAPIHost, "")
	t.Setenv(KeyJudgeBatchSize, "")
	t.Setenv(KeyJudgePollIntervalMS, "250")
	t.Setenv(KeyJudgePollTimeoutSec, "not a number")
	t.Setenv(KeyJudgeMaxPolls, "40")
	t.Setenv(KeyJudgeFetchLanguages, "true")
	t.Setenv(KeyJudgeParallelLanguages, "")

	cfg := judgeConfigFromEnv()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://judge0:2358", cfg.BaseURL)
	assert.Equal(t, judge.DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, judge.DefaultPollTimeout, cfg.PollTimeout)
	assert.Equal(t, 40, cfg.MaxPolls)
	assert.True(t, cfg.FetchLanguages)
	assert.False(t, cfg.ParallelLanguages)
}

func TestJudgeConfigRequiresBaseURL(t *testing.T) {
	t.Setenv(KeyJudgeBaseURL, "")
	assert.Panics(t, func() { judgeConfigFromEnv() })
}
