package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	want := map[string]bool{"trips": false, "zones": false, "version": false}
	for _, sub := range rootCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Expected subcommand %q to be registered", name)
		}
	}
}

func TestRootCmd_SilencesUsageOnRuntimeErrors(t *testing.T) {
	// Usage spam on a failed load drowns the actual error message
	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be enabled")
	}
}

func TestRootCmd_DocumentsExitCodes(t *testing.T) {
	for _, want := range []string{
		"Exit Codes:",
		"12 - User denied table overwrite approval",
		"13 - Table load failed and was rolled back",
		"14 - Source dataset could not be fetched or decoded",
	} {
		if !strings.Contains(rootCmd.Long, want) {
			t.Errorf("Expected root help to contain %q", want)
		}
	}
}

func TestRootCmd_VerboseFlagAvailable(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	if flag == nil {
		t.Fatal("Expected persistent --verbose flag")
	}
	if flag.Shorthand != "v" {
		t.Errorf("Expected -v shorthand, got %q", flag.Shorthand)
	}
}

func TestGetVerboseFlag_MissingFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "bare"}
	if getVerboseFlag(cmd) {
		t.Error("Expected false when the verbose flag is absent")
	}
}

func TestIngestCommands_ShareFlagSet(t *testing.T) {
	// Both dataset commands accept the same connection surface
	for _, cmd := range []struct {
		name  string
		flags []string
	}{
		{"trips", []string{"connection", "host", "port", "username", "database", "sslmode", "url", "table", "fetch-timeout", "force"}},
		{"zones", []string{"connection", "host", "port", "username", "database", "sslmode", "url", "table", "fetch-timeout", "force"}},
	} {
		var target = tripsCmd
		if cmd.name == "zones" {
			target = zonesCmd
		}
		for _, name := range cmd.flags {
			if target.Flags().Lookup(name) == nil {
				t.Errorf("Expected %s command to register --%s", cmd.name, name)
			}
		}
	}
}
