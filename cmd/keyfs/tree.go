package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arthur-debert/keyfs/pkg/keyfs/filesystem"
	"github.com/arthur-debert/keyfs/pkg/keyfs/tree"
)

func newMkTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mktree [base] [spec]",
		Short: "Create a directory subtree from a folder spec",
		Long: `Create the directory hierarchy described by a folder spec under base.
The spec is a JSON list mixing names and nested lists, e.g. '["a",["b","c"],"d"]'.
base must already exist; re-running the same spec is a no-op.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, rawSpec := args[0], args[1]

			nodes, err := tree.ParseJSON([]byte(rawSpec))
			if err != nil {
				return fmt.Errorf("failed to parse spec: %w", err)
			}
			logger, err := cliLogger()
			if err != nil {
				return err
			}
			walker := tree.NewWalker(filesystem.NewOSFileSystem(), logger)
			if err := walker.Create(base, nodes); err != nil {
				return fmt.Errorf("failed to create tree under %s: %w", base, err)
			}
			return nil
		},
	}
}

func newRmTreeCommand() *cobra.Command {
	var (
		mode   string
		legacy bool
	)

	cmd := &cobra.Command{
		Use:   "rmtree [base] [spec]",
		Short: "Delete a directory subtree described by a folder spec",
		Long: `Delete the directories described by a folder spec under base.
Missing paths are skipped; base itself is never deleted. With --legacy the
spec is interpreted in the wildcard dialect ("*" and ".." tokens) instead of
the mode-based grammar.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, rawSpec := args[0], args[1]

			nodes, err := tree.ParseJSON([]byte(rawSpec))
			if err != nil {
				return fmt.Errorf("failed to parse spec: %w", err)
			}
			logger, err := cliLogger()
			if err != nil {
				return err
			}
			walker := tree.NewWalker(filesystem.NewOSFileSystem(), logger)

			if legacy {
				if err := walker.DeleteLegacy(base, nodes); err != nil {
					return fmt.Errorf("failed to delete tree under %s: %w", base, err)
				}
				return nil
			}

			if mode == "" {
				mode = viper.GetString("delete_mode")
			}
			parsed, err := tree.ParseMode(mode)
			if err != nil {
				return err
			}
			if err := walker.Delete(base, nodes, parsed); err != nil {
				return fmt.Errorf("failed to delete tree under %s: %w", base, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "deletion mode: preserve (only empty dirs) or force")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "interpret the spec in the wildcard dialect")

	return cmd
}
