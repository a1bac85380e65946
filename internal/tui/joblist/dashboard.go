// Package joblist provides the live jobs-list dashboard.
//
// The dashboard renders whatever the polling controller last delivered.
// It never re-fetches on its own: 'r' asks the controller for an early
// tick, and quitting the dashboard is what stops the controller (the
// command wiring does that once Run returns).
package joblist

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/progit1914/TranscriptionSaaS-App/internal/api"
	"github.com/progit1914/TranscriptionSaaS-App/internal/poll"
)

// Config holds dashboard configuration.
type Config struct {
	// APIBaseURL is shown in the header.
	APIBaseURL string

	// OnRefresh is invoked when the user requests an early poll.
	OnRefresh func()
}

// Dashboard is the tview application for the jobs list.
type Dashboard struct {
	app       *tview.Application
	table     *tview.Table
	header    *tview.TextView
	statusBar *tview.TextView

	cfg Config

	mu              sync.Mutex
	jobs            []api.Job
	haveData        bool
	err             error
	unauthenticated bool
	lastRefresh     time.Time
	running         bool
}

// New creates a jobs dashboard.
func New(cfg Config) *Dashboard {
	return &Dashboard{cfg: cfg}
}

// Run builds the UI and blocks until the user quits.
func (d *Dashboard) Run() error {
	d.app = tview.NewApplication()
	d.buildUI()
	d.redraw()

	d.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC, tcell.KeyEsc:
			d.app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				d.app.Stop()
				return nil
			case 'r':
				if d.cfg.OnRefresh != nil {
					d.cfg.OnRefresh()
				}
				return nil
			}
		}
		return event
	})

	d.mu.Lock()
	d.running = true
	d.mu.Unlock()

	err := d.app.Run()

	d.mu.Lock()
	d.running = false
	d.mu.Unlock()
	return err
}

// Stop closes the dashboard.
func (d *Dashboard) Stop() {
	if d.app != nil {
		d.app.Stop()
	}
}

// Apply feeds one poll result into the dashboard. Safe to call from
// the controller's goroutine.
func (d *Dashboard) Apply(res poll.Result) {
	d.mu.Lock()
	switch {
	case errors.Is(res.Err, api.ErrUnauthenticated):
		// Stale data is worse than no data when the credential is gone.
		d.unauthenticated = true
		d.jobs = nil
		d.haveData = false
		d.err = res.Err
	case res.Err != nil:
		// Keep the last known-good table, surface the failure.
		d.err = res.Err
	default:
		d.jobs = res.Jobs
		d.haveData = true
		d.err = nil
		d.unauthenticated = false
		d.lastRefresh = time.Now()
	}
	running := d.running
	d.mu.Unlock()

	if running {
		d.app.QueueUpdateDraw(d.redraw)
	}
}

func (d *Dashboard) buildUI() {
	d.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	d.header.SetText(fmt.Sprintf("[::b]🎙 TRANSCRIPTION JOBS[::-]  [gray]%s[-]", d.cfg.APIBaseURL))

	d.table = tview.NewTable().
		SetBorders(false).
		SetSelectable(false, false)
	d.table.SetBorder(true).SetTitle(" Jobs ")

	d.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.header, 1, 0, false).
		AddItem(d.table, 0, 1, true).
		AddItem(d.statusBar, 1, 0, false)

	d.app.SetRoot(flex, true)
}

// redraw rebuilds the table and status bar from current state. Must
// run on the tview event loop (or before it starts).
func (d *Dashboard) redraw() {
	d.mu.Lock()
	jobs := d.jobs
	haveData := d.haveData
	err := d.err
	unauthenticated := d.unauthenticated
	lastRefresh := d.lastRefresh
	d.mu.Unlock()

	d.table.Clear()

	switch {
	case unauthenticated:
		d.table.SetCell(0, 0, tview.NewTableCell("[red]Session expired or not logged in.[-]").SetSelectable(false))
		d.table.SetCell(1, 0, tview.NewTableCell("[yellow]Run 'scribe login' and try again.[-]").SetSelectable(false))
	case !haveData:
		d.table.SetCell(0, 0, tview.NewTableCell("[gray]Loading jobs...[-]").SetSelectable(false))
	case len(jobs) == 0:
		d.table.SetCell(0, 0, tview.NewTableCell("[gray]No jobs yet. Upload an audio file to get started![-]").SetSelectable(false))
	default:
		for i, h := range []string{"", "FILE", "STATUS", "CREATED", "TIME", "ID"} {
			d.table.SetCell(0, i, tview.NewTableCell("[yellow::b]"+h+"[-:-:-]").SetSelectable(false))
		}
		for i, job := range jobs {
			cells := RowCells(job)
			for col, text := range cells {
				d.table.SetCell(i+1, col, tview.NewTableCell(text).SetSelectable(false))
			}
		}
	}

	d.statusBar.SetText(statusLine(err, unauthenticated, lastRefresh))
}

// RowCells renders one job as tview table cells.
func RowCells(job api.Job) []string {
	status := string(job.Status)
	switch job.Status {
	case api.StatusCompleted:
		status = "[green]● " + status + "[-]"
	case api.StatusFailed:
		status = "[red]✗ " + status + "[-]"
	case api.StatusProcessing:
		status = "[yellow]● " + status + " ⏳[-]"
	default:
		status = "[gray]○ " + status + "[-]"
	}

	procTime := "-"
	if job.ProcessingTime > 0 {
		procTime = fmt.Sprintf("%.1fs", job.ProcessingTime)
	}

	return []string{
		" ",
		job.FileName,
		status,
		"[gray]" + job.CreatedAt + "[-]",
		"[gray]" + procTime + "[-]",
		"[gray]" + job.ID + "[-]",
	}
}

func statusLine(err error, unauthenticated bool, lastRefresh time.Time) string {
	if err != nil && !unauthenticated {
		return fmt.Sprintf("[red]refresh failed: %v[-]  │  [yellow]r[-] retry  [yellow]q[-] quit", err)
	}

	last := "[gray]starting...[-]"
	if !lastRefresh.IsZero() {
		last = "[gray]" + lastRefresh.Format("15:04:05") + "[-]"
	}
	return fmt.Sprintf("Refresh: [green]auto (%ds)[-]  │  Last: %s  │  [yellow]r[-] refresh  [yellow]q[-] quit",
		int(poll.CollectionInterval.Seconds()), last)
}
