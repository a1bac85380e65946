// cmd/login.go
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Store the API token used to authenticate with the service",
	Long: `Stores your TranscriptionSaaS API token so subsequent commands can
authenticate. The token is kept in ~/.scribe/session.json until you run
'scribe logout'.

Pass the token as an argument, or omit it to be prompted without echo.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var token string
		if len(args) == 1 {
			token = strings.TrimSpace(args[0])
		} else {
			var err error
			token, err = promptForToken()
			if err != nil {
				fail(err)
			}
		}

		if token == "" {
			fmt.Fprintln(os.Stderr, "❌ No token provided.")
			os.Exit(1)
		}

		store := newSessionStore()
		if err := store.SetToken(token); err != nil {
			fail(err)
		}

		success("Token saved. You are ready to upload audio.")
	},
}

// promptForToken reads the token from the terminal without echoing it,
// falling back to a plain line read when stdin is not a terminal.
func promptForToken() (string, error) {
	fmt.Print("API token: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
