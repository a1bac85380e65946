package jobview

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/progit1914/TranscriptionSaaS-App/internal/api"
	"github.com/progit1914/TranscriptionSaaS-App/internal/poll"
)

type fakePoller struct {
	refreshes int
}

func (f *fakePoller) Refresh() { f.refreshes++ }

func resultMsg(job *api.Job, err error) ResultMsg {
	target := ""
	if job != nil {
		target = job.ID
	}
	return ResultMsg{Result: poll.Result{Target: target, Job: job, Err: err}}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func TestInitialViewShowsLoading(t *testing.T) {
	m := New("abc123", &fakePoller{})
	view := m.View()

	if !strings.Contains(view, "Loading job details") {
		t.Errorf("initial view missing loading indicator:\n%s", view)
	}
}

func TestPendingJobShowsNoResultContent(t *testing.T) {
	m := New("abc123", &fakePoller{})
	m = update(t, m, resultMsg(&api.Job{
		ID: "abc123", FileName: "speech.wav", Status: api.StatusPending, CreatedAt: "2024-05-01T10:00:00",
	}, nil))

	view := m.View()
	if !strings.Contains(view, "pending") {
		t.Errorf("view missing pending status:\n%s", view)
	}
	if !strings.Contains(view, "Waiting in queue") {
		t.Errorf("view missing pending indicator:\n%s", view)
	}
	if strings.Contains(view, "Error:") {
		t.Errorf("pending view must not render error content:\n%s", view)
	}
}

func TestProcessingJobShowsProgressIndicator(t *testing.T) {
	m := New("abc123", &fakePoller{})
	m = update(t, m, resultMsg(&api.Job{
		ID: "abc123", FileName: "speech.wav", Status: api.StatusProcessing, CreatedAt: "2024-05-01T10:00:00",
	}, nil))

	view := m.View()
	if !strings.Contains(view, "Processing your audio") {
		t.Errorf("processing view missing progress indicator:\n%s", view)
	}
}

func TestCompletedJobShowsTranscript(t *testing.T) {
	m := New("abc123", &fakePoller{})

	// The job moves processing -> completed across two poll results.
	m = update(t, m, resultMsg(&api.Job{
		ID: "abc123", FileName: "speech.wav", Status: api.StatusProcessing, CreatedAt: "2024-05-01T10:00:00",
	}, nil))
	m = update(t, m, resultMsg(&api.Job{
		ID: "abc123", FileName: "speech.wav", Status: api.StatusCompleted,
		CreatedAt: "2024-05-01T10:00:00", CompletedAt: "2024-05-01T10:01:30",
		ProcessingTime: 90.5,
		Transcription:  &api.Transcription{Text: "hello world", WordCount: 2, Language: "en"},
	}, nil))

	view := m.View()
	if !strings.Contains(view, "hello world") {
		t.Errorf("completed view missing transcript:\n%s", view)
	}
	if !strings.Contains(view, "2 words") {
		t.Errorf("completed view missing word count:\n%s", view)
	}
	if !strings.Contains(view, "language: en") {
		t.Errorf("completed view missing language:\n%s", view)
	}
	if strings.Contains(view, "Processing your audio") {
		t.Errorf("completed view still shows progress indicator:\n%s", view)
	}
}

func TestFailedJobShowsError(t *testing.T) {
	m := New("abc123", &fakePoller{})
	m = update(t, m, resultMsg(&api.Job{
		ID: "abc123", FileName: "speech.wav", Status: api.StatusFailed,
		CreatedAt: "2024-05-01T10:00:00", Error: "ffmpeg exited with code 1",
	}, nil))

	view := m.View()
	if !strings.Contains(view, "ffmpeg exited with code 1") {
		t.Errorf("failed view missing error text:\n%s", view)
	}
}

func TestNotFoundRendersDistinctState(t *testing.T) {
	m := New("does-not-exist", &fakePoller{})
	m = update(t, m, ResultMsg{Result: poll.Result{Target: "does-not-exist", Err: api.ErrNotFound}})

	view := m.View()
	if !strings.Contains(view, "Job not found") {
		t.Errorf("view missing not-found state:\n%s", view)
	}
	if strings.Contains(view, "Loading") {
		t.Errorf("not-found view still shows loading:\n%s", view)
	}
}

func TestStaleTargetResultIgnored(t *testing.T) {
	m := New("job-b", &fakePoller{})

	// A slow result for a previously tracked job must not land here.
	m = update(t, m, resultMsg(&api.Job{
		ID: "job-a", FileName: "old.wav", Status: api.StatusCompleted,
		Transcription: &api.Transcription{Text: "stale text"},
	}, nil))

	view := m.View()
	if strings.Contains(view, "stale text") {
		t.Errorf("view rendered a result for the wrong job:\n%s", view)
	}
	if !strings.Contains(view, "Loading job details") {
		t.Errorf("view left its loading state on a stale result:\n%s", view)
	}
}

func TestTransientErrorKeepsLastKnownGoodData(t *testing.T) {
	m := New("abc123", &fakePoller{})
	m = update(t, m, resultMsg(&api.Job{
		ID: "abc123", FileName: "speech.wav", Status: api.StatusProcessing, CreatedAt: "2024-05-01T10:00:00",
	}, nil))
	m = update(t, m, ResultMsg{Result: poll.Result{Target: "abc123", Err: errors.New("connection reset")}})

	view := m.View()
	if !strings.Contains(view, "speech.wav") {
		t.Errorf("view dropped known-good data on a transient error:\n%s", view)
	}
	if !strings.Contains(view, "connection reset") {
		t.Errorf("view missing refresh failure notice:\n%s", view)
	}
}

func TestRefreshKeyTriggersPoller(t *testing.T) {
	poller := &fakePoller{}
	m := New("abc123", poller)
	m = update(t, m, resultMsg(&api.Job{
		ID: "abc123", FileName: "speech.wav", Status: api.StatusPending, CreatedAt: "2024-05-01T10:00:00",
	}, nil))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	if poller.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", poller.refreshes)
	}
	if !strings.Contains(m.View(), "refreshing") {
		t.Errorf("view not back in loading state after refresh:\n%s", m.View())
	}
}

func TestRefreshKeyIgnoredOnTerminalJob(t *testing.T) {
	poller := &fakePoller{}
	m := New("abc123", poller)
	m = update(t, m, resultMsg(&api.Job{
		ID: "abc123", FileName: "speech.wav", Status: api.StatusCompleted,
		CreatedAt:     "2024-05-01T10:00:00",
		Transcription: &api.Transcription{Text: "hello world"},
	}, nil))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	// The controller stops itself on a terminal status, so a refresh
	// here would never resolve. The view must not enter the loading
	// state it can't leave.
	if poller.refreshes != 0 {
		t.Errorf("refreshes = %d, want 0", poller.refreshes)
	}
	view := m.View()
	if strings.Contains(view, "refreshing") {
		t.Errorf("view stuck refreshing after terminal status:\n%s", view)
	}
	if !strings.Contains(view, "hello world") {
		t.Errorf("view lost the transcript:\n%s", view)
	}
}

func TestQuitKeys(t *testing.T) {
	m := New("abc123", &fakePoller{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if msg := cmd(); msg == nil {
		t.Error("expected tea.Quit message")
	}
}
