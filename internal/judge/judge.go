// Package judge submits source code to a Judge0 CE instance and
// describes the outcome.
package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/evalyze/evalyze/internal/telemetry"
)

const (
	DefaultBaseURL = "https://judge0-ce.p.rapidapi.com"
	DefaultHost    = "judge0-ce.p.rapidapi.com"
)

// Config holds Judge0 connection settings.
type Config struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Host    string `yaml:"host"` // X-RapidAPI-Host header
}

// DefaultConfig returns the RapidAPI endpoint without a key.
func DefaultConfig() Config {
	return Config{BaseURL: DefaultBaseURL, Host: DefaultHost}
}

// Submission is one piece of code to run.
type Submission struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
	Stdin      string `json:"stdin,omitempty"`
}

// Status is Judge0's verdict.
type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Result is the Judge0 response for a synchronous submission.
type Result struct {
	Stdout        string  `json:"stdout"`
	Stderr        string  `json:"stderr"`
	CompileOutput string  `json:"compile_output"`
	Message       string  `json:"message"`
	Status        *Status `json:"status,omitempty"`
	Time          string  `json:"time"`
	Memory        int     `json:"memory"`
	Token         string  `json:"token"`
}

// Describe renders the result the way the editor output pane shows it.
// Compiler output is not shown; a failed build reports its status.
func (r *Result) Describe() string {
	switch {
	case r.Stdout != "":
		return "Success!\n\nOutput:\n" + r.Stdout
	case r.Stderr != "":
		return "Error:\n\n" + r.Stderr
	case r.Status != nil:
		return "Execution finished:\n\n" + r.Status.Description
	}
	b, _ := json.Marshal(r)
	return "An unexpected error occurred: " + string(b)
}

// Client talks to Judge0. It sets no client-side timeout; callers bound
// submissions through the context.
type Client struct {
	cfg    Config
	client *http.Client
}

// New constructs a client. A missing API key is reported on Submit.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, client: &http.Client{}}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// Submit runs sub and waits for the verdict.
func (c *Client) Submit(ctx context.Context, sub Submission) (*Result, error) {
	if !c.Configured() {
		return nil, &ErrNotConfigured{}
	}

	ctx, span := telemetry.StartJudgeSpan(ctx, sub.LanguageID)
	defer span.End()

	res, err := c.submit(ctx, sub)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return res, nil
}

func (c *Client) submit(ctx context.Context, sub Submission) (*Result, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("base64_encoded", "false")
	q.Set("wait", "true")
	endpoint := c.cfg.BaseURL + "/submissions?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.cfg.Host)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeHTTPError(resp.StatusCode, body)
	}

	var res Result
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, &MalformedResponseError{Body: body, Err: err}
	}
	return &res, nil
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decodeHTTPError(status int, body []byte) error {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		if msg := firstNonEmpty(resp.Error, resp.Message); msg != "" {
			return &UpstreamError{StatusCode: status, Err: fmt.Errorf("%s", msg)}
		}
	}
	return &UpstreamError{StatusCode: status}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
