package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvinuesa/gguser/internal/model"
)

const usageText = `Usage:
  gguser add <profile> <name> <email> [ssh_key]  Add a new Git profile with optional SSH key
  gguser <profile>                                Switch to a Git profile
  gguser list                                     List available profiles
  gguser select                                   Interactive profile selection
  gguser now                                      Show current Git user
  gguser remove <profile>                         Remove a Git profile
  gguser link <profile> [directory]               Link a profile to the current directory
  gguser unlink [directory]                       Remove an auto-switching rule
  gguser version                                  Print version information`

const (
	msgNoProfiles     = "No profiles found. Add one using: gguser add <profile> <name> <email> [ssh_key]"
	msgUnknownProfile = "Profile not found. Add with: gguser add <profile> <name> <email> [ssh_key]"
)

var rootCmd = &cobra.Command{
	Use:   "gguser [profile]",
	Short: "Switch between git identities",
	Long: `gguser keeps named git identities (name, email and an optional SSH key)
and switches the active one. Inside a repository the repository
configuration is changed; elsewhere the global configuration is.

` + usageText,
	Args:          cobra.ArbitraryArgs,
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgStorePath, "config", "", "Path to the profile store (default: <user config dir>/gguser/gguser.json)")
	rootCmd.PersistentFlags().BoolVar(&cfgDebug, "debug", false, "Log external commands and internal decisions to stderr")
}

// runRoot handles everything that is not a built-in command: no arguments
// prints usage, anything else is a profile key to switch to.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), usageText)
		return silentExit(exitFailure)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	key := args[0]
	if _, ok := a.store.Get(key); !ok || model.IsReservedKey(key) {
		// Unknown profiles are a soft failure
		printError(cmd.OutOrStdout(), msgUnknownProfile)
		return nil
	}
	return switchTo(cmd, a, key)
}
