// cmd/upload.go
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/progit1914/TranscriptionSaaS-App/internal/upload"
)

var (
	uploadStdin bool
	uploadName  string
	uploadWatch bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Submit an audio file for transcription",
	Long: `Submits an audio file to the transcription service and prints the
job ID assigned to it. Supported formats: .mp3, .wav, .m4a, .mp4
(up to 100 MB).

Read from a file:
  scribe upload meeting.mp3

Or pipe audio through stdin (a name is required so the server can
detect the format):
  cat meeting.mp3 | scribe upload --stdin --name meeting.mp3

Pass --watch to follow the job until it completes.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sel, err := buildSelection(args)
		if err != nil {
			fail(err)
		}

		client := newAPIClient()
		flow := upload.NewFlow(client)

		Debug("uploading %s (%d bytes)", sel.Name, sel.Size())
		fmt.Printf("Uploading %s (%.1f MB)...\n", sel.Name, float64(sel.Size())/(1024*1024))

		jobID, err := flow.Run(cmd.Context(), sel)
		if err != nil {
			fail(err)
		}

		success("Uploaded %s", sel.Name)
		fmt.Printf("  Job ID: %s\n", color.CyanString(jobID))

		if uploadWatch {
			if err := watchJob(client, jobID); err != nil {
				fail(err)
			}
			return
		}

		fmt.Printf("\nFollow progress with: scribe job %s --watch\n", jobID)
	},
}

// buildSelection resolves the file/stdin flags into an upload selection.
func buildSelection(args []string) (*upload.Selection, error) {
	if uploadStdin {
		if len(args) > 0 {
			return nil, fmt.Errorf("cannot combine --stdin with a file argument")
		}
		return upload.FromReader(uploadName, os.Stdin)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("no file specified (pass a path or use --stdin)")
	}
	return upload.FromPath(args[0])
}

func init() {
	uploadCmd.Flags().BoolVar(&uploadStdin, "stdin", false, "Read audio data from standard input")
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "File name to report when reading from stdin")
	uploadCmd.Flags().BoolVarP(&uploadWatch, "watch", "w", false, "Follow the job until it finishes")
	rootCmd.AddCommand(uploadCmd)
}
