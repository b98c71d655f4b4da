package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// sslModes contains valid PostgreSQL SSL modes for shell completion.
var sslModes = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}

// knownTables are the destination tables the loader creates by default.
var knownTables = []string{tripload.DefaultTripsTable, tripload.DefaultZonesTable}

// completeSSLModes provides shell completion for SSL mode flag values.
func completeSSLModes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, mode := range sslModes {
		if strings.HasPrefix(mode, toComplete) {
			matches = append(matches, mode)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeTableNames suggests the default destination tables for --table.
// Any other name is still accepted; these are only suggestions.
func completeTableNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, table := range knownTables {
		if strings.HasPrefix(table, toComplete) {
			matches = append(matches, table)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
