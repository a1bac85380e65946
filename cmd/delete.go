// cmd/delete.go
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <job-id>",
	Short: "Delete a transcription job",
	Long: `Deletes a job and its transcript from the service. This cannot be
undone. Pass --yes to skip the confirmation prompt.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jobID := args[0]

		if !deleteYes {
			fmt.Printf("Delete job %s and its transcript? [y/N]: ", jobID)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return
			}
		}

		client := newAPIClient()
		if err := client.DeleteJob(cmd.Context(), jobID); err != nil {
			fail(err)
		}
		success("Deleted job %s", jobID)
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
