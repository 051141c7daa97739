package main

import (
	"testing"

	"github.com/spf13/cobra"
)

// TestRootCmdSetup tests the initialization of the root command and its
// subcommands, which happens in init().
func TestRootCmdSetup(t *testing.T) {
	var _ *cobra.Command = rootCmd

	if rootCmd == nil {
		t.Fatal("rootCmd is nil after init")
	}

	expectedUse := "keyfs"
	if rootCmd.Use != expectedUse {
		t.Errorf("expected command Use %q, got %q", expectedUse, rootCmd.Use)
	}

	for _, want := range []string{"version", "mktree [base] [spec]", "rmtree [base] [spec]"} {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Use == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not found", want)
		}
	}
}

func TestRmTreeFlags(t *testing.T) {
	cmd := newRmTreeCommand()
	if cmd.Flags().Lookup("mode") == nil {
		t.Error("rmtree should expose a --mode flag")
	}
	if cmd.Flags().Lookup("legacy") == nil {
		t.Error("rmtree should expose a --legacy flag")
	}
}
