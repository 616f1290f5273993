package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	items := a.store.List()
	if len(items) == 0 {
		printError(out, msgNoProfiles)
		return nil
	}

	printHeader(out, "Available Profiles:")
	for _, item := range items {
		fmt.Fprintf(out, "- %s: %s\n",
			render(out, keyStyle, item.Key),
			render(out, valueStyle, fmt.Sprintf("%s <%s>", item.Name, item.Email)))
		if item.HasSSHKey() {
			printMuted(out, "    ssh key: %s", item.SSHKey)
		}
	}
	return nil
}
