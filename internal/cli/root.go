package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = ` _____ ____  ___ ____  _     ___    _    ____
|_   _|  _ \|_ _|  _ \| |   / _ \  / \  |  _ \
  | | | |_) || || |_) | |  | | | |/ _ \ | | | |
  | | |  _ < | ||  __/| |__| |_| / ___ \| |_| |
  |_| |_| \_\|___|_|   |_____\___/_/   \_\____/`

var rootCmd = &cobra.Command{
	Use:   "tripload",
	Short: "NYC TLC dataset loader for PostgreSQL",
	Long: asciiLogo + `

tripload fetches NYC Taxi & Limousine Commission datasets, derives a
destination table schema from the data itself, and bulk-loads the rows
into PostgreSQL over the COPY protocol. Every run replaces the target
table and verifies the row count before and after commit.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection failed
  12 - User denied table overwrite approval
  13 - Table load failed and was rolled back
  14 - Source dataset could not be fetched or decoded`,
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
	// -h is taken by --host, so --help has no shorthand
	rootCmd.PersistentFlags().Bool("help", false, "Help for tripload")
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
