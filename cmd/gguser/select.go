package main

import (
	"github.com/spf13/cobra"
)

const selectTitle = "Select a Git profile:"

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Interactive profile selection",
	Long: `Pick a profile from a menu and switch to it.

Use the arrow keys (or j/k) and enter. Esc, q or Ctrl-C cancels. When
stdin is not a terminal a numbered list is printed and a number or
profile key is read from stdin.`,
	Args: cobra.NoArgs,
	RunE: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	if a.store.Len() == 0 {
		printError(cmd.OutOrStdout(), msgNoProfiles)
		return silentExit(exitFailure)
	}

	key, err := newSelector(cmd).Select(cmd.Context(), selectTitle, a.store.List())
	if err != nil {
		return err
	}
	return switchTo(cmd, a, key)
}
