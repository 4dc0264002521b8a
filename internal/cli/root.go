package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `
        _             _
  _ __ | | __ _ _   _| | ___   __ _
 | '_ \| |/ _' | | | | |/ _ \ / _' |
 | |_) | | (_| | |_| | | (_) | (_| |
 | .__/|_|\__,_|\__, |_|\___/ \__, |
 |_|            |___/         |___/`

var rootCmd = &cobra.Command{
	Use:   "playlog",
	Short: "Song play analytics loader for PostgreSQL",
	Long: asciiLogo + `

playlog loads JSON song metadata and user activity logs into a PostgreSQL
star schema built for song play analytics: four dimension tables (songs,
artists, users, time) around a songplays fact table.

Runs are idempotent: loading the same dataset twice leaves the database
in the same state as loading it once.

Exit Codes:
  0  - Success
  1  - General error (load failed)
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection failed
  12 - User denied drop approval
  13 - SQL execution failed
  14 - Dataset directory not found`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for playlog")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
