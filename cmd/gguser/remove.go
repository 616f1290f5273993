package main

import (
	"github.com/spf13/cobra"

	"github.com/nvinuesa/gguser/internal/model"
)

const msgRemoveNotFound = "Profile not found. Use 'gguser list' to see available profiles."

var removeCmd = &cobra.Command{
	Use:   "remove <profile>",
	Short: "Remove a Git profile",
	Args:  cobra.ArbitraryArgs,
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		printError(cmd.OutOrStdout(), msgRemoveNotFound)
		return silentExit(exitFailure)
	}

	key := args[0]
	if err := a.store.Remove(key); err != nil {
		if model.IsNotFound(err) {
			printError(cmd.OutOrStdout(), msgRemoveNotFound)
			return silentExit(exitFailure)
		}
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Removed profile: %s", key)
	return nil
}
