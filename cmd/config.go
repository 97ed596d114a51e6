package main

import (
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/judge"
)

const (
	KeyPort                   = "PORT"
	KeyApiURL                 = "API_URL"
	KeyPublicURL              = "PUBLIC_URL"
	KeyDBURL                  = "DB_URL"
	KeyRedisURL               = "REDIS_URL"
	KeyEmailWorkers           = "EMAIL_WORKERS"
	KeyLogLevel               = "LOG_LEVEL"
	KeyJudgeBaseURL           = "JUDGE_BASE_URL"
	KeyJudgeAuthToken         = "JUDGE_AUTH_TOKEN"
	KeyJudgeAPIKey            = "JUDGE_API_KEY"
	KeyJudgeAPIHost           = "JUDGE_API_HOST"
	KeyJudgeBatchSize         = "JUDGE_BATCH_SIZE"
	KeyJudgePollIntervalMS    = "JUDGE_POLL_INTERVAL_MS"
	KeyJudgePollTimeoutSec    = "JUDGE_POLL_TIMEOUT_SEC"
	KeyJudgeMaxPolls          = "JUDGE_MAX_POLLS"
	KeyJudgeFetchLanguages    = "JUDGE_FETCH_LANGUAGES"
	KeyJudgeParallelLanguages = "JUDGE_PARALLEL_LANGUAGES"
)

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Warnf("%s not found in environment. using default %q", key, fallback)
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Warnf("%s=%q is not a number. using default %d", key, raw, fallback)
		return fallback
	}
	return v
}

func envBool(key string) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warnf("%s=%q is not a boolean. treating it as false", key, raw)
		return false
	}
	return v
}

func judgeConfigFromEnv() judge.Config {
	baseURL := os.Getenv(KeyJudgeBaseURL)
	if baseURL == "" {
		panic("judge base url not found")
	}

	cfg := judge.DefaultConfig(baseURL)
	cfg.AuthToken = os.Getenv(KeyJudgeAuthToken)
	cfg.RapidAPIKey = os.Getenv(KeyJudgeAPIKey)
	cfg.RapidAPIHost = os.Getenv(KeyJudgeAPIHost)
	cfg.BatchSize = envInt(KeyJudgeBatchSize, judge.DefaultBatchSize)
	cfg.PollInterval = time.Duration(envInt(KeyJudgePollIntervalMS, int(judge.DefaultPollInterval/time.Millisecond))) * time.Millisecond
	cfg.PollTimeout = time.Duration(envInt(KeyJudgePollTimeoutSec, int(judge.DefaultPollTimeout/time.Second))) * time.Second
	cfg.MaxPolls = envInt(KeyJudgeMaxPolls, 0)
	cfg.FetchLanguages = envBool(KeyJudgeFetchLanguages)
	cfg.ParallelLanguages = envBool(KeyJudgeParallelLanguages)
	return cfg
}

func setLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	level, err := log.ParseLevel(envOrDefault(KeyLogLevel, "info"))
	if err != nil {
		log.Warnf("invalid log level, %v", err)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
