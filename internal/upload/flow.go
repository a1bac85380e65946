// Package upload implements the submission flow: local validation of a
// selected audio file followed by the submit call. It hands the
// resulting job id back to the caller and never polls itself.
package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileSize mirrors the server-side upload cap; catching oversized
// files locally avoids shipping 100MB just to get a 400 back.
const MaxFileSize = 100 * 1024 * 1024

// allowedExtensions are the audio formats the service accepts.
var allowedExtensions = []string{".mp3", ".wav", ".m4a", ".mp4"}

// ValidationError is a local pre-submit failure. It never reaches the
// network layer.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Submitter is the slice of the API client the flow needs.
type Submitter interface {
	Submit(ctx context.Context, fileBytes []byte, fileName string) (string, error)
}

// Selection is the single selected-file cell. Both producers — a path
// argument and a piped reader — converge here and are validated
// identically.
type Selection struct {
	Name   string
	data   []byte
	loaded bool
}

// FromPath selects a file on disk.
func FromPath(path string) (*Selection, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &ValidationError{Reason: "no file selected"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("cannot read %s: %v", path, err)}
	}

	return &Selection{
		Name:   filepath.Base(path),
		data:   data,
		loaded: true,
	}, nil
}

// FromReader selects audio from a stream, e.g. a stdin pipe. The
// display name must be supplied since a stream has none.
func FromReader(name string, r io.Reader) (*Selection, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Reason: "a file name is required when reading from a stream"}
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("cannot read input stream: %v", err)}
	}

	return &Selection{
		Name:   filepath.Base(name),
		data:   data,
		loaded: true,
	}, nil
}

// Validate checks the selection against the service's constraints.
func (s *Selection) Validate() error {
	if s == nil || !s.loaded {
		return &ValidationError{Reason: "no file selected"}
	}
	if len(s.data) == 0 {
		return &ValidationError{Reason: fmt.Sprintf("%s is empty", s.Name)}
	}
	if len(s.data) > MaxFileSize {
		return &ValidationError{Reason: fmt.Sprintf("%s exceeds the %dMB upload limit", s.Name, MaxFileSize/(1024*1024))}
	}

	ext := strings.ToLower(filepath.Ext(s.Name))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return &ValidationError{
		Reason: fmt.Sprintf("unsupported file format %q (accepted: %s)", ext, strings.Join(allowedExtensions, ", ")),
	}
}

// Size returns the selected payload size in bytes.
func (s *Selection) Size() int {
	if s == nil {
		return 0
	}
	return len(s.data)
}

// Flow submits a validated selection.
type Flow struct {
	submitter Submitter
}

// NewFlow creates a submission flow over the given client.
func NewFlow(submitter Submitter) *Flow {
	return &Flow{submitter: submitter}
}

// Run validates and submits the selection, returning the
// server-assigned job id. Validation failures surface before any
// network call; submit failures pass through the client's error
// taxonomy untouched so callers can show the server detail. The
// selection itself is left intact either way.
func (f *Flow) Run(ctx context.Context, sel *Selection) (string, error) {
	if err := sel.Validate(); err != nil {
		return "", err
	}

	jobID, err := f.submitter.Submit(ctx, sel.data, sel.Name)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return jobID, nil
}
