package main

import (
	"github.com/spf13/cobra"

	"github.com/nvinuesa/gguser/internal/model"
	"github.com/nvinuesa/gguser/internal/store"
)

var addCmd = &cobra.Command{
	Use:   "add <profile> <name> <email> [ssh_key]",
	Short: "Add a new Git profile with optional SSH key",
	Long: `Add a profile, or replace the profile stored under the same key.

Quote names that contain spaces. The SSH key path may start with ~/.

Examples:
  gguser add work "Jane Doe" jane@company.com
  gguser add oss "Jane Doe" jane@example.org ~/.ssh/id_ed25519_oss`,
	Args: cobra.ArbitraryArgs,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if len(args) < 3 {
		return &model.UsageError{Usage: store.AddUsage}
	}
	if len(args) > 4 {
		return &model.UsageError{Usage: store.AddUsage, Reason: "Too many arguments. Quote names that contain spaces."}
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	key := args[0]
	profile := model.Profile{Name: args[1], Email: args[2]}
	if len(args) == 4 {
		profile.SSHKey = args[3]
	}

	if err := a.store.Add(key, profile); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Added profile: %s", key)
	return nil
}
