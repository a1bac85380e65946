package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/progit1914/TranscriptionSaaS-App/internal/session"
)

// Client provides typed access to the TranscriptionSaaS HTTP API.
type Client struct {
	baseURL    string
	store      session.Store
	httpClient *http.Client
	clientID   string

	// Debug callback (optional)
	debugFunc func(format string, args ...any)
}

// ClientConfig holds configuration for the API client.
type ClientConfig struct {
	// BaseURL is the service base URL (e.g. "http://localhost:8000")
	BaseURL string

	// Session supplies the bearer credential. It is the only source of
	// authentication for every call, the submit path included.
	Session session.Store

	// Timeout is the HTTP request timeout (default: 30s)
	Timeout time.Duration

	// DebugFunc is an optional callback for debug logging
	DebugFunc func(format string, args ...any)
}

// NewClient creates a new API client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		store:   cfg.Session,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		clientID:  fmt.Sprintf("scribe-%s", uuid.New().String()[:8]),
		debugFunc: cfg.DebugFunc,
	}
}

// debug logs a message if a debug function is configured
func (c *Client) debug(format string, args ...any) {
	if c.debugFunc != nil {
		c.debugFunc(format, args...)
	}
}

// ClientID returns the per-process client identifier sent with every
// request for server-side correlation.
func (c *Client) ClientID() string {
	return c.clientID
}

// Submit uploads an audio file for transcription and returns the
// server-assigned job id. The credential always comes from the session
// store; there is deliberately no token parameter.
func (c *Client) Submit(ctx context.Context, fileBytes []byte, fileName string) (string, error) {
	if _, ok := c.store.Token(); !ok {
		// The server enforces this too; failing early avoids shipping
		// the whole file just to get a 401 back.
		return "", ErrUnauthenticated
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(fileBytes); err != nil {
		return "", fmt.Errorf("failed to write upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload form: %w", err)
	}

	var resp uploadResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/upload", writer.FormDataContentType(), body, &resp); err != nil {
		return "", err
	}
	if resp.JobID == "" {
		return "", &TransportError{cause: fmt.Errorf("upload response missing job_id")}
	}

	c.debug("submitted %q as job %s", fileName, resp.JobID)
	return resp.JobID, nil
}

// ListJobs fetches the full job collection. Order and membership are
// server-determined and returned as-is.
func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	var resp jobListResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/jobs", "", nil, &resp); err != nil {
		return nil, err
	}

	for i := range resp.Jobs {
		// List entries omit result payloads, so only the exclusivity
		// rules are checkable here.
		if err := checkSnapshot(&resp.Jobs[i], false); err != nil {
			return nil, &TransportError{cause: err}
		}
	}
	return resp.Jobs, nil
}

// GetJob fetches a single job snapshot. ErrNotFound is returned when
// the server reports no such job.
func (c *Client) GetJob(ctx context.Context, jobID string) (*Job, error) {
	var job Job
	if err := c.doRequest(ctx, http.MethodGet, "/api/jobs/"+jobID, "", nil, &job); err != nil {
		return nil, err
	}
	if err := checkSnapshot(&job, true); err != nil {
		return nil, &TransportError{cause: err}
	}
	return &job, nil
}

// DeleteJob removes a job and its stored audio.
func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	var resp deleteResponse
	return c.doRequest(ctx, http.MethodDelete, "/api/jobs/"+jobID, "", nil, &resp)
}

// Health fetches service health. The endpoint is unauthenticated but
// the credential is attached when present like everywhere else.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.doRequest(ctx, http.MethodGet, "/api/health", "", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// checkSnapshot rejects server responses that violate the job
// invariants: transcription and error are mutually exclusive, both are
// absent while the job is still pending or processing, and a detail
// snapshot of a terminal job carries the matching payload.
func checkSnapshot(j *Job, detail bool) error {
	if j.ID == "" {
		return fmt.Errorf("job snapshot missing id")
	}
	if j.Transcription != nil && j.Error != "" {
		return fmt.Errorf("job %s reports both transcription and error", j.ID)
	}

	switch j.Status {
	case StatusPending, StatusProcessing:
		if j.Transcription != nil || j.Error != "" {
			return fmt.Errorf("job %s is %s but carries a result payload", j.ID, j.Status)
		}
	case StatusCompleted:
		if detail && j.Transcription == nil {
			return fmt.Errorf("completed job %s missing transcription", j.ID)
		}
	case StatusFailed:
		if detail && j.Error == "" {
			return fmt.Errorf("failed job %s missing error detail", j.ID)
		}
	}
	return nil
}

// doRequest performs an HTTP request with authentication and JSON
// response handling, and maps failures onto the error taxonomy.
func (c *Client) doRequest(ctx context.Context, method, path, contentType string, body io.Reader, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if token, ok := c.store.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Client-Id", c.clientID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.debug("request: %s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{cause: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.debug("response: %d - %s", resp.StatusCode, string(respBody))

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)

		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			if eb.Detail != "" {
				return fmt.Errorf("%w: %s", ErrUnauthenticated, eb.Detail)
			}
			return ErrUnauthenticated
		case http.StatusNotFound:
			// Only a job lookup means "no such job". A 404 on any other
			// path (say, a server without the health route) is a plain
			// API error.
			if strings.HasPrefix(path, "/api/jobs/") {
				return ErrNotFound
			}
		}

		detail := eb.Detail
		if detail == "" {
			detail = string(respBody)
		}
		return &APIError{Status: resp.StatusCode, Detail: detail}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &TransportError{cause: fmt.Errorf("failed to parse response: %w", err)}
		}
	}

	return nil
}
