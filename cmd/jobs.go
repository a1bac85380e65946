// cmd/jobs.go
package cmd

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/progit1914/TranscriptionSaaS-App/internal/api"
	"github.com/progit1914/TranscriptionSaaS-App/internal/poll"
	"github.com/progit1914/TranscriptionSaaS-App/internal/tui"
	"github.com/progit1914/TranscriptionSaaS-App/internal/tui/joblist"
)

var jobsWatch bool

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List your transcription jobs",
	Long: `Lists all transcription jobs on the service, newest first.

Pass --watch to open a live dashboard that refreshes every few seconds.
Inside the dashboard: 'r' refreshes immediately, 'q' quits.`,
	Run: func(cmd *cobra.Command, args []string) {
		client := newAPIClient()

		if jobsWatch {
			if err := watchJobs(client); err != nil {
				fail(err)
			}
			return
		}

		jobs, err := client.ListJobs(cmd.Context())
		if err != nil {
			fail(err)
		}
		printJobsTable(jobs)
	},
}

// watchJobs runs the live dashboard with the collection controller
// behind it. The controller is stopped once the dashboard exits, so no
// late result can repaint a closed screen.
func watchJobs(client *api.Client) error {
	var controller *poll.Controller

	dashboard := joblist.New(joblist.Config{
		APIBaseURL: apiBaseURL(),
		OnRefresh:  func() { controller.Refresh() },
	})

	controller = poll.NewCollection(poll.Config{
		Fetcher:  client,
		OnResult: dashboard.Apply,
	})

	controller.Start()
	defer controller.Stop()

	return dashboard.Run()
}

// printJobsTable prints a one-shot aligned listing.
func printJobsTable(jobs []api.Job) {
	if len(jobs) == 0 {
		fmt.Println("No transcription jobs yet. Upload one with 'scribe upload <file>'.")
		return
	}

	fmt.Printf("%s\n\n", tui.TitleStyle.Render(fmt.Sprintf("Transcription Jobs (%d)", len(jobs))))

	widths := []int{26, 14, 21, 8}
	for i, h := range []string{"FILE", "STATUS", "CREATED", "TIME"} {
		fmt.Print(runewidth.FillRight(h, widths[i]), " ")
	}
	fmt.Println("ID")

	for _, job := range jobs {
		procTime := "-"
		if job.ProcessingTime > 0 {
			procTime = fmt.Sprintf("%.1fs", job.ProcessingTime)
		}

		fmt.Print(runewidth.FillRight(runewidth.Truncate(job.FileName, widths[0]-1, "…"), widths[0]), " ")
		fmt.Print(runewidth.FillRight(tui.StatusGlyph(job.Status)+" "+string(job.Status), widths[1]), " ")
		fmt.Print(runewidth.FillRight(job.CreatedAt, widths[2]), " ")
		fmt.Print(runewidth.FillRight(procTime, widths[3]), " ")
		fmt.Println(job.ID)
	}

	fmt.Println("\nWatch live with: scribe jobs --watch")
}

func init() {
	jobsCmd.Flags().BoolVarP(&jobsWatch, "watch", "w", false, "Open a live-updating dashboard")
	rootCmd.AddCommand(jobsCmd)
}
