package judge

import (
	"fmt"
	"net/url"
	"time"

	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
)

const (
	DefaultBatchSize    = 20
	DefaultPollInterval = time.Second
	DefaultPollTimeout  = time.Minute
	DefaultHTTPTimeout  = 15 * time.Second
)

// Config describes how to reach the external judge and how hard to push it.
type Config struct {
	BaseURL string
	// sent as X-Auth-Token for self hosted judges
	AuthToken string
	// RapidAPI hosted judges
	RapidAPIKey  string
	RapidAPIHost string

	// max submissions per batch call
	BatchSize    int
	PollInterval time.Duration
	PollTimeout  time.Duration
	// 0 means only PollTimeout bounds the polling
	MaxPolls    int
	HTTPTimeout time.Duration

	// fetch the language table from the judge instead of using the built-in one
	FetchLanguages bool
	// verify languages concurrently, still failing fast
	ParallelLanguages bool
}

func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:      baseURL,
		BatchSize:    DefaultBatchSize,
		PollInterval: DefaultPollInterval,
		PollTimeout:  DefaultPollTimeout,
		HTTPTimeout:  DefaultHTTPTimeout,
	}
}

func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w, judge base url is empty", leetlab_errors.ErrInvalidInput)
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("%w, cannot parse judge base url %s, %w", leetlab_errors.ErrInvalidInput, c.BaseURL, err)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w, batch size must be positive", leetlab_errors.ErrInvalidInput)
	}
	if c.PollInterval <= 0 || c.PollTimeout <= 0 {
		return fmt.Errorf("%w, poll interval and poll timeout must be positive", leetlab_errors.ErrInvalidInput)
	}
	if c.PollInterval > c.PollTimeout {
		return fmt.Errorf("%w, poll interval %v exceeds poll timeout %v", leetlab_errors.ErrInvalidInput, c.PollInterval, c.PollTimeout)
	}
	if c.MaxPolls < 0 {
		return fmt.Errorf("%w, max polls cannot be negative", leetlab_errors.ErrInvalidInput)
	}
	return nil
}
