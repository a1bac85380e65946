// cmd/job.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/progit1914/TranscriptionSaaS-App/internal/tui/jobview"
)

var jobWatch bool

var jobCmd = &cobra.Command{
	Use:   "job <job-id>",
	Short: "Show one transcription job",
	Long: `Shows the current state of a single transcription job, including
the transcript once it has completed.

Pass --watch to follow the job live until it reaches a terminal state.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jobID := args[0]
		client := newAPIClient()

		if jobWatch {
			if err := watchJob(client, jobID); err != nil {
				fail(err)
			}
			return
		}

		job, err := client.GetJob(cmd.Context(), jobID)
		if err != nil {
			fail(err)
		}
		fmt.Println(jobview.RenderJob(job, ""))
	},
}

func init() {
	jobCmd.Flags().BoolVarP(&jobWatch, "watch", "w", false, "Follow the job until it finishes")
	rootCmd.AddCommand(jobCmd)
}
