package judge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
)

type batchQuerier interface {
	GetBatch(ctx context.Context, tokens []Token) ([]Result, error)
}

type pollState int

const (
	pollPending pollState = iota
	pollResolved
	pollTimedOut
)

// Poller waits for a set of submissions to reach a terminal status.
type Poller struct {
	api       batchQuerier
	interval  time.Duration
	timeout   time.Duration
	maxPolls  int
	batchSize int
	logger    *logrus.Entry
}

func NewPoller(api batchQuerier, cfg Config) *Poller {
	p := &Poller{
		api:       api,
		interval:  cfg.PollInterval,
		timeout:   cfg.PollTimeout,
		maxPolls:  cfg.MaxPolls,
		batchSize: cfg.BatchSize,
		logger: logrus.WithFields(logrus.Fields{
			"from": "result-poller",
		}),
	}
	if p.interval <= 0 {
		p.interval = DefaultPollInterval
	}
	if p.timeout <= 0 {
		p.timeout = DefaultPollTimeout
	}
	if p.batchSize <= 0 {
		p.batchSize = DefaultBatchSize
	}
	return p
}

// Poll blocks until every token has a terminal result, the deadline passes
// or ctx is done. Results are returned in token order. It never returns a
// partial result set.
func (p *Poller) Poll(ctx context.Context, tokens []Token) ([]Result, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w, no tokens to poll", leetlab_errors.ErrInvalidInput)
	}

	wanted := make(map[Token]struct{}, len(tokens))
	for _, token := range tokens {
		wanted[token] = struct{}{}
	}

	pollCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resolved := make(map[Token]Result, len(wanted))
	state := pollPending
	polls := 0

	for state == pollPending {
		polls++
		for _, chunk := range chunkTokens(p.outstanding(tokens, resolved), p.batchSize) {
			results, err := p.api.GetBatch(pollCtx, chunk)
			if err != nil {
				if ctx.Err() != nil {
					return nil, p.cancelled(ctx)
				}
				if pollCtx.Err() != nil {
					break
				}
				if errors.Is(err, leetlab_errors.ErrInternalJudge) {
					return nil, err
				}
				if errors.Is(err, errRequestRejected) {
					err = fmt.Errorf("%w, %w", leetlab_errors.ErrInternalJudge, err)
					p.logger.Error(err)
					return nil, err
				}
				// transient, try again next round
				p.logger.Warnf("poll %d failed, retrying: %v", polls, err)
				continue
			}

			for _, res := range results {
				if _, ok := wanted[res.Token]; !ok {
					err = fmt.Errorf(
						"%w, judge returned result for unknown token %s",
						leetlab_errors.ErrInternalJudge,
						res.Token,
					)
					p.logger.Error(err)
					return nil, err
				}
				if res.Status.Terminal() {
					resolved[res.Token] = res
				}
			}
		}

		switch {
		case len(resolved) == len(wanted):
			state = pollResolved
		case p.maxPolls > 0 && polls >= p.maxPolls:
			state = pollTimedOut
		default:
			state = p.wait(ctx, pollCtx)
		}
	}

	if ctx.Err() != nil {
		return nil, p.cancelled(ctx)
	}
	if state == pollTimedOut {
		err := fmt.Errorf(
			"%w, %d of %d submissions unresolved after %d polls",
			leetlab_errors.ErrPollTimeout,
			len(wanted)-len(resolved), len(wanted), polls,
		)
		p.logger.Error(err)
		return nil, err
	}

	results := make([]Result, 0, len(tokens))
	for _, token := range tokens {
		results = append(results, resolved[token])
	}

	p.logger.WithField("submissions", len(results)).Debugf("all submissions resolved after %d polls", polls)
	return results, nil
}

// wait sleeps for one poll interval.
func (p *Poller) wait(ctx, pollCtx context.Context) pollState {
	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return pollTimedOut
	case <-pollCtx.Done():
		return pollTimedOut
	case <-timer.C:
		return pollPending
	}
}

func (p *Poller) outstanding(tokens []Token, resolved map[Token]Result) []Token {
	pending := make([]Token, 0, len(tokens)-len(resolved))
	seen := make(map[Token]struct{}, len(tokens))
	for _, token := range tokens {
		if _, ok := resolved[token]; ok {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		pending = append(pending, token)
	}
	return pending
}

func (p *Poller) cancelled(ctx context.Context) error {
	err := fmt.Errorf("%w, %w", leetlab_errors.ErrVerificationCancelled, ctx.Err())
	p.logger.Warn(err)
	return err
}

func chunkTokens(tokens []Token, size int) [][]Token {
	chunks := make([][]Token, 0, (len(tokens)+size-1)/size)
	for start := 0; start < len(tokens); start += size {
		chunks = append(chunks, tokens[start:min(start+size, len(tokens))])
	}
	return chunks
}
