package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/nvinuesa/gguser/internal/model"
)

var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Show current Git user",
	Long: `Show the git user in effect here: the repository configuration if it
sets both user.name and user.email, otherwise the global configuration.`,
	Args: cobra.NoArgs,
	RunE: runNow,
}

func init() {
	rootCmd.AddCommand(nowCmd)
}

func runNow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	id, err := a.applier.Current(cmd.Context())
	if errors.Is(err, model.ErrNoIdentity) {
		printWarning(cmd.OutOrStdout(), "No Git user configured in this scope.")
		return silentExit(exitFailure)
	}
	if err != nil {
		return err
	}

	printInfo(cmd.OutOrStdout(), "Current Git User: %s", id)
	a.log.WithField("scope", id.Scope).Debug("identity resolved")
	return nil
}
