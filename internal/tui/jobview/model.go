// Package jobview implements the interactive single-job detail view.
//
// The model is fed by a poll.Controller: each accepted fetch arrives as
// a ResultMsg tagged with the job id it was issued for. The view moves
// Loading -> Ready/Failed and back to Loading on a manual refresh while
// the job is still live; once the job is terminal the controller has
// stopped and refresh requests are ignored, the view staying mounted on
// the final snapshot.
package jobview

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/progit1914/TranscriptionSaaS-App/internal/api"
	"github.com/progit1914/TranscriptionSaaS-App/internal/poll"
	"github.com/progit1914/TranscriptionSaaS-App/internal/tui"
)

// Poller is the slice of the polling controller the view drives.
type Poller interface {
	Refresh()
}

// ResultMsg delivers a poll result to the view.
type ResultMsg struct {
	Result poll.Result
}

// Model is the BubbleTea model for the job detail view.
type Model struct {
	jobID  string
	poller Poller

	job      *api.Job
	err      error
	notFound bool
	loading  bool
	updated  time.Time

	spinner spinner.Model
	width   int
}

// New creates a detail view for jobID. The view starts in its loading
// state; the first controller result moves it on.
func New(jobID string, poller Poller) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(tui.ColorPrimary)

	return Model{
		jobID:   jobID,
		poller:  poller,
		loading: true,
		spinner: s,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			// Once the job is terminal the controller has stopped
			// itself; entering the loading state would have no result
			// to resolve it.
			if m.poller != nil && !(m.job != nil && m.job.Status.Terminal()) {
				m.loading = true
				m.poller.Refresh()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case ResultMsg:
		// The controller already discards results for stale targets;
		// the check here keeps the view correct even if it is rewired.
		if msg.Result.Target != m.jobID {
			return m, nil
		}
		m.loading = false
		m.updated = time.Now()

		switch {
		case errors.Is(msg.Result.Err, api.ErrNotFound):
			m.notFound = true
			m.job = nil
			m.err = nil
		case msg.Result.Err != nil:
			// Keep the last known-good snapshot on screen.
			m.err = msg.Result.Err
		default:
			m.job = msg.Result.Job
			m.err = nil
			m.notFound = false
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var sections []string

	sections = append(sections, tui.TitleStyle.Render("TRANSCRIPTION JOB"))

	switch {
	case m.notFound:
		sections = append(sections,
			tui.ErrorStyle.Render("✗ Job not found"),
			tui.MutedStyle.Render(fmt.Sprintf("No job with id %s exists on the server. It may have been deleted.", m.jobID)))
	case m.job == nil && m.loading:
		sections = append(sections, m.spinner.View()+" "+tui.SpinnerStyle.Render("Loading job details..."))
	case m.job == nil && m.err != nil:
		sections = append(sections, tui.ErrorStyle.Render("✗ "+m.err.Error()))
	case m.job != nil:
		sections = append(sections, m.renderJob())
		if m.err != nil {
			sections = append(sections, tui.WarningStyle.Render("⚠ last refresh failed: "+m.err.Error()))
		}
	}

	sections = append(sections, "", m.renderStatusLine())
	return strings.Join(sections, "\n") + "\n"
}

func (m Model) renderJob() string {
	return RenderJob(m.job, m.spinner.View())
}

func (m Model) renderStatusLine() string {
	var parts []string

	if m.loading {
		parts = append(parts, tui.SpinnerStyle.Render("refreshing..."))
	} else if !m.updated.IsZero() {
		parts = append(parts, tui.MutedStyle.Render("Last update: "+m.updated.Format("15:04:05")))
	}

	if m.job != nil && !m.job.Status.Terminal() {
		parts = append(parts, tui.MutedStyle.Render("polling"))
	}
	parts = append(parts, tui.MutedStyle.Render("r: refresh  q: quit"))

	return strings.Join(parts, "  │  ")
}

// RenderJob renders one job snapshot. The watch view and the one-shot
// `scribe job` command share it; spinnerFrame is the current spinner
// glyph or "" for static output.
func RenderJob(job *api.Job, spinnerFrame string) string {
	var sb strings.Builder

	sb.WriteString(tui.FormatKeyValue("File", job.FileName) + "\n")
	sb.WriteString(tui.LabelStyle.Render("Status:") + " " +
		tui.StatusGlyph(job.Status) + " " +
		tui.StatusStyle(job.Status).Render(string(job.Status)) + "\n")
	sb.WriteString(tui.FormatKeyValue("Created", job.CreatedAt) + "\n")
	if job.CompletedAt != "" {
		sb.WriteString(tui.FormatKeyValue("Completed", job.CompletedAt) + "\n")
	}
	if job.ProcessingTime > 0 {
		sb.WriteString(tui.FormatKeyValue("Processing time", fmt.Sprintf("%.2fs", job.ProcessingTime)) + "\n")
	}

	switch job.Status {
	case api.StatusPending:
		sb.WriteString("\n" + tui.MutedStyle.Render("Waiting in queue...") + "\n")
	case api.StatusProcessing:
		frame := spinnerFrame
		if frame == "" {
			frame = "⏳"
		}
		sb.WriteString("\n" + frame + " " + tui.SpinnerStyle.Render("Processing your audio...") + "\n")
	case api.StatusCompleted:
		sb.WriteString("\n" + renderTranscription(job.Transcription))
	case api.StatusFailed:
		sb.WriteString("\n" + tui.ErrorStyle.Render("Error: "+job.Error) + "\n")
	}

	return sb.String()
}

func renderTranscription(t *api.Transcription) string {
	if t == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(tui.PanelStyle.Render(t.Text) + "\n")

	var meta []string
	if t.WordCount > 0 {
		meta = append(meta, fmt.Sprintf("%d words", t.WordCount))
	}
	if t.Language != "" {
		meta = append(meta, "language: "+t.Language)
	}
	if len(meta) > 0 {
		sb.WriteString(tui.MutedStyle.Render(strings.Join(meta, "  ·  ")) + "\n")
	}
	return sb.String()
}
