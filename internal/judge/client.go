package judge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errRequestRejected marks 4xx answers that will not change on retry.
var errRequestRejected = errors.New("judge rejected the request")

func rejectedStatus(code int) bool {
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests
}

const (
	resultFields     = "token,status,stdout,stderr,compile_output,message,time,memory"
	maxErrorBodySize = 4 << 10
)

// Client speaks the judge's REST protocol. It reports transport failures
// wrapped in ErrInternal, non 2xx responses as ErrHttpResponse and bodies
// it cannot understand as ErrInternalJudge.
type Client struct {
	baseURL    *url.URL
	cfg        Config
	httpClient *http.Client
	logger     *logrus.Entry
}

type wireSubmission struct {
	LanguageID     int    `json:"language_id"`
	SourceCode     string `json:"source_code"`
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output"`
}

type wireStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type wireResult struct {
	Token         string      `json:"token"`
	Status        *wireStatus `json:"status"`
	Stdout        *string     `json:"stdout"`
	Stderr        *string     `json:"stderr"`
	CompileOutput *string     `json:"compile_output"`
	Message       *string     `json:"message"`
	Time          *string     `json:"time"`
	Memory        *int        `json:"memory"`
}

func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w, cannot parse judge base url, %w", leetlab_errors.ErrInvalidInput, err)
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &Client{
		baseURL:    baseURL,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger: logrus.WithFields(logrus.Fields{
			"from": "judge-client",
		}),
	}, nil
}

func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	var languages []Language
	if err := c.do(ctx, http.MethodGet, "/languages", nil, nil, &languages); err != nil {
		return nil, err
	}
	return languages, nil
}

// SubmitBatch queues the requests and returns one token per request in
// the same order. Items the judge rejected come back as empty tokens.
func (c *Client) SubmitBatch(ctx context.Context, requests []SubmissionRequest) ([]Token, error) {
	body := struct {
		Submissions []wireSubmission `json:"submissions"`
	}{
		Submissions: make([]wireSubmission, 0, len(requests)),
	}
	for _, req := range requests {
		body.Submissions = append(body.Submissions, wireSubmission{
			LanguageID:     req.LanguageID,
			SourceCode:     req.SourceCode,
			Stdin:          req.Stdin,
			ExpectedOutput: req.ExpectedOutput,
		})
	}

	query := url.Values{}
	query.Set("base64_encoded", "false")

	var created []struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/submissions/batch", query, body, &created); err != nil {
		return nil, err
	}

	tokens := make([]Token, 0, len(created))
	for _, item := range created {
		tokens = append(tokens, Token(item.Token))
	}
	return tokens, nil
}

// GetBatch fetches the current state of the given submissions. Callers
// match results by token. A null entry means the judge lost a submission.
func (c *Client) GetBatch(ctx context.Context, tokens []Token) ([]Result, error) {
	strTokens := make([]string, 0, len(tokens))
	for _, token := range tokens {
		strTokens = append(strTokens, string(token))
	}

	query := url.Values{}
	query.Set("tokens", strings.Join(strTokens, ","))
	query.Set("base64_encoded", "false")
	query.Set("fields", resultFields)

	var resp struct {
		Submissions []*wireResult `json:"submissions"`
	}
	if err := c.do(ctx, http.MethodGet, "/submissions/batch", query, nil, &resp); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(resp.Submissions))
	for i, wr := range resp.Submissions {
		// the judge answers null, in request order, for tokens it does not know
		if wr == nil {
			var token Token
			if i < len(tokens) {
				token = tokens[i]
			}
			err := fmt.Errorf(
				"%w, judge does not know submission %s",
				leetlab_errors.ErrInternalJudge,
				token,
			)
			c.logger.Error(err)
			return nil, err
		}
		if wr.Status == nil {
			err := fmt.Errorf(
				"%w, submission %s has no status",
				leetlab_errors.ErrInternalJudge,
				wr.Token,
			)
			c.logger.Error(err)
			return nil, err
		}
		results = append(results, wr.toResult())
	}
	return results, nil
}

func (wr *wireResult) toResult() Result {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	res := Result{
		Token:         Token(wr.Token),
		Status:        statusFromID(wr.Status.ID),
		StatusID:      wr.Status.ID,
		Description:   wr.Status.Description,
		Stdout:        deref(wr.Stdout),
		Stderr:        deref(wr.Stderr),
		CompileOutput: deref(wr.CompileOutput),
		Message:       deref(wr.Message),
		Time:          deref(wr.Time),
	}
	if wr.Memory != nil {
		res.Memory = *wr.Memory
	}
	return res
}

func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	body any,
	out any,
) error {
	endpoint := *c.baseURL
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") + path
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			err = fmt.Errorf("%w, cannot marshal %T, %w", leetlab_errors.ErrInternal, body, err)
			c.logger.Error(err)
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		err = fmt.Errorf("%w, failed to create http request with ctx: %w", leetlab_errors.ErrInternal, err)
		c.logger.Error(err)
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.AuthToken != "" {
		req.Header.Set("X-Auth-Token", c.cfg.AuthToken)
	}
	if c.cfg.RapidAPIKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.cfg.RapidAPIKey)
		req.Header.Set("X-RapidAPI-Host", c.cfg.RapidAPIHost)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		// could be a timeout from the context or a network issue
		return leetlab_errors.WrapIPCError(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodySize))
		err = fmt.Errorf(
			"%w, %s %s returned %d: %s",
			leetlab_errors.ErrHttpResponse,
			method, path, res.StatusCode,
			strings.TrimSpace(string(msg)),
		)
		if rejectedStatus(res.StatusCode) {
			err = fmt.Errorf("%w, %w", errRequestRejected, err)
		}
		return err
	}

	if err = json.NewDecoder(res.Body).Decode(out); err != nil {
		err = fmt.Errorf(
			"%w, cannot decode response of %s %s to %T, %w",
			leetlab_errors.ErrInternalJudge,
			method, path, out, err,
		)
		c.logger.Error(err)
		return err
	}
	return nil
}
