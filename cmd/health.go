// cmd/health.go
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/progit1914/TranscriptionSaaS-App/internal/tui"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the transcription service is reachable",
	Run: func(cmd *cobra.Command, args []string) {
		client := newAPIClient()

		health, err := client.Health(cmd.Context())
		if err != nil {
			fail(err)
		}

		status := color.GreenString(health.Status)
		if health.Status != "healthy" {
			status = color.YellowString(health.Status)
		}

		fmt.Printf("%s\n\n", tui.TitleStyle.Render("Service Health"))
		fmt.Println(tui.FormatKeyValue("Endpoint", apiBaseURL()))
		fmt.Println(tui.FormatKeyValue("Status", status))
		fmt.Println(tui.FormatKeyValue("Total jobs", fmt.Sprintf("%d", health.TotalJobs)))
		fmt.Println(tui.FormatKeyValue("Active jobs", fmt.Sprintf("%d", health.ActiveJobs)))
		if health.Timestamp != "" {
			fmt.Println(tui.FormatKeyValue("Server time", health.Timestamp))
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
