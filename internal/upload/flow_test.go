package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeSubmitter struct {
	gotBytes []byte
	gotName  string
	jobID    string
	err      error
	calls    int
}

func (f *fakeSubmitter) Submit(ctx context.Context, fileBytes []byte, fileName string) (string, error) {
	f.calls++
	f.gotBytes = fileBytes
	f.gotName = fileName
	return f.jobID, f.err
}

func writeTempAudio(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestRunSubmitsValidFile(t *testing.T) {
	path := writeTempAudio(t, "speech.wav", []byte("RIFF....WAVE"))
	sel, err := FromPath(path)
	if err != nil {
		t.Fatalf("FromPath failed: %v", err)
	}

	submitter := &fakeSubmitter{jobID: "abc123"}
	flow := NewFlow(submitter)

	jobID, err := flow.Run(context.Background(), sel)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if jobID != "abc123" {
		t.Errorf("job id = %q, want abc123", jobID)
	}
	if submitter.gotName != "speech.wav" {
		t.Errorf("submitted name = %q, want speech.wav", submitter.gotName)
	}
	if string(submitter.gotBytes) != "RIFF....WAVE" {
		t.Errorf("submitted bytes = %q", submitter.gotBytes)
	}
}

func TestFromPathStripsDirectory(t *testing.T) {
	path := writeTempAudio(t, "interview.mp3", []byte("ID3"))
	sel, err := FromPath(path)
	if err != nil {
		t.Fatalf("FromPath failed: %v", err)
	}
	if sel.Name != "interview.mp3" {
		t.Errorf("Name = %q, want bare file name", sel.Name)
	}
}

func TestFromReaderProducesSameSelection(t *testing.T) {
	sel, err := FromReader("piped.m4a", strings.NewReader("audio-bytes"))
	if err != nil {
		t.Fatalf("FromReader failed: %v", err)
	}
	if err := sel.Validate(); err != nil {
		t.Errorf("Validate failed for piped input: %v", err)
	}

	submitter := &fakeSubmitter{jobID: "j1"}
	if _, err := NewFlow(submitter).Run(context.Background(), sel); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if submitter.gotName != "piped.m4a" {
		t.Errorf("submitted name = %q", submitter.gotName)
	}
}

func TestValidationRejectsBeforeNetwork(t *testing.T) {
	submitter := &fakeSubmitter{jobID: "never"}
	flow := NewFlow(submitter)

	cases := []struct {
		name string
		sel  func(t *testing.T) *Selection
	}{
		{
			name: "nothing selected",
			sel:  func(t *testing.T) *Selection { return nil },
		},
		{
			name: "empty file",
			sel: func(t *testing.T) *Selection {
				sel, err := FromPath(writeTempAudio(t, "empty.wav", nil))
				if err != nil {
					t.Fatalf("FromPath failed: %v", err)
				}
				return sel
			},
		},
		{
			name: "unsupported extension",
			sel: func(t *testing.T) *Selection {
				sel, err := FromPath(writeTempAudio(t, "notes.txt", []byte("hi")))
				if err != nil {
					t.Fatalf("FromPath failed: %v", err)
				}
				return sel
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := flow.Run(context.Background(), tc.sel(t))

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("error = %v, want *ValidationError", err)
			}
		})
	}

	if submitter.calls != 0 {
		t.Errorf("Submit called %d times for invalid selections, want 0", submitter.calls)
	}
}

func TestValidationRejectsMissingStreamName(t *testing.T) {
	_, err := FromReader("", strings.NewReader("data"))

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("error = %v, want *ValidationError", err)
	}
}

func TestRunPreservesSelectionOnSubmitFailure(t *testing.T) {
	path := writeTempAudio(t, "speech.wav", []byte("RIFF"))
	sel, err := FromPath(path)
	if err != nil {
		t.Fatalf("FromPath failed: %v", err)
	}

	bomb := errors.New("server exploded")
	flow := NewFlow(&fakeSubmitter{err: bomb})

	_, err = flow.Run(context.Background(), sel)
	if !errors.Is(err, bomb) {
		t.Errorf("Run error = %v, want wrapped submit failure", err)
	}

	// The selection survives a failed submit; the caller decides what
	// happens to it next.
	if err := sel.Validate(); err != nil {
		t.Errorf("selection invalidated by failed submit: %v", err)
	}
	if sel.Size() == 0 {
		t.Error("selection payload lost after failed submit")
	}
}
