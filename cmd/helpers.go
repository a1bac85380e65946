// cmd/helpers.go
package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/progit1914/TranscriptionSaaS-App/internal/api"
	"github.com/progit1914/TranscriptionSaaS-App/internal/poll"
	"github.com/progit1914/TranscriptionSaaS-App/internal/session"
	"github.com/progit1914/TranscriptionSaaS-App/internal/tui/jobview"
	"github.com/progit1914/TranscriptionSaaS-App/internal/upload"
)

// newSessionStore opens the file-backed session store.
func newSessionStore() session.Store {
	path, err := session.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	return session.NewFileStore(path)
}

// newAPIClient builds the API client over the session store. Every
// command goes through here so the credential has exactly one source.
func newAPIClient() *api.Client {
	return api.NewClient(api.ClientConfig{
		BaseURL: apiBaseURL(),
		Session: newSessionStore(),
		DebugFunc: func(format string, args ...any) {
			Debug(format, args...)
		},
	})
}

// watchJob opens the interactive detail view for jobID and polls it
// until the job is terminal or the user quits. The controller is
// stopped before this function returns, so no late fetch can touch a
// closed view.
func watchJob(client *api.Client, jobID string) error {
	var program *tea.Program

	controller := poll.NewJob(poll.Config{
		Fetcher: client,
		OnResult: func(res poll.Result) {
			program.Send(jobview.ResultMsg{Result: res})
		},
	}, jobID)

	model := jobview.New(jobID, controller)
	program = tea.NewProgram(model, tea.WithAltScreen())

	controller.Start()
	defer controller.Stop()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("view error: %w", err)
	}
	return nil
}

// fail prints a command failure in a consistent shape and exits. The
// error taxonomy decides the wording: auth problems point at login,
// validation problems are local, the rest show the server detail.
func fail(err error) {
	var validationErr *upload.ValidationError
	var apiErr *api.APIError
	var transportErr *api.TransportError

	switch {
	case errors.Is(err, api.ErrUnauthenticated):
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Fprintln(os.Stderr, "   Run 'scribe login' to authenticate.")
	case errors.Is(err, api.ErrNotFound):
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	case errors.As(err, &validationErr):
		fmt.Fprintf(os.Stderr, "❌ %s\n", validationErr.Reason)
	case errors.As(err, &apiErr):
		fmt.Fprintf(os.Stderr, "❌ The server rejected the request: %s\n", apiErr.Detail)
	case errors.As(err, &transportErr):
		fmt.Fprintf(os.Stderr, "❌ Cannot reach %s: %v\n", apiBaseURL(), err)
	default:
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	}
	os.Exit(1)
}

// success prints a green checkmark message.
func success(format string, args ...any) {
	fmt.Printf("%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}
