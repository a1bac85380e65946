// Package api provides an HTTP client for the TranscriptionSaaS service.
//
// All calls attach the bearer credential from the session store when one
// is present; the server rejects unauthenticated requests itself, so the
// client never fabricates authentication state.
package api

import (
	"encoding/json"
	"fmt"
)

// Status is the server-authoritative lifecycle state of a job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further server-side transitions are
// expected for this status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// UnmarshalJSON normalizes the server's status values. Freshly
// submitted jobs are reported as "uploaded" by the backend; the client
// folds that into pending.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch Status(raw) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		*s = Status(raw)
	case "uploaded":
		*s = StatusPending
	default:
		return fmt.Errorf("unknown job status %q", raw)
	}
	return nil
}

// Transcription is the result payload of a completed job. The server
// returns either a bare string or a structured object; both decode
// into this type.
type Transcription struct {
	Text      string `json:"transcription"`
	WordCount int    `json:"word_count,omitempty"`
	Language  string `json:"language,omitempty"`
}

func (t *Transcription) UnmarshalJSON(data []byte) error {
	// Plain-string form.
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		t.Text = text
		t.WordCount = 0
		t.Language = ""
		return nil
	}

	type plain Transcription
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to decode transcription payload: %w", err)
	}
	*t = Transcription(p)
	return nil
}

// Job is the client-side snapshot of one submitted transcription
// request. Snapshots are replaced wholesale with the latest server
// state, never mutated field by field.
type Job struct {
	ID             string         `json:"id"`
	FileName       string         `json:"file_name"`
	Status         Status         `json:"status"`
	CreatedAt      string         `json:"created_at"`
	CompletedAt    string         `json:"completed_at,omitempty"`
	ProcessingTime float64        `json:"processing_time,omitempty"`
	Transcription  *Transcription `json:"transcription,omitempty"`
	Error          string         `json:"error,omitempty"`
}

// jobListResponse is the body of GET /api/jobs. Order and membership
// are server-determined.
type jobListResponse struct {
	Jobs  []Job `json:"jobs"`
	Total int   `json:"total"`
}

// uploadResponse is the body of POST /api/upload.
type uploadResponse struct {
	JobID   string `json:"job_id"`
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// deleteResponse is the body of DELETE /api/jobs/{id}.
type deleteResponse struct {
	Message string `json:"message"`
	JobID   string `json:"job_id"`
}

// Health is the body of GET /api/health.
type Health struct {
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
	TotalJobs  int    `json:"total_jobs"`
	ActiveJobs int    `json:"active_jobs"`
}
