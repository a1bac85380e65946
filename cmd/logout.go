// cmd/logout.go
package cmd

import (
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored API token",
	Long: `Removes the stored API token from disk. Commands that require
authentication will fail until you run 'scribe login' again.`,
	Run: func(cmd *cobra.Command, args []string) {
		store := newSessionStore()
		if err := store.Clear(); err != nil {
			fail(err)
		}
		success("Logged out. Token removed from this machine.")
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
