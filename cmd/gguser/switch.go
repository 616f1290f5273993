package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvinuesa/gguser/internal/model"
)

// switchTo applies the stored profile key and reports the outcome. Problems
// with the SSH key are reported but do not fail the switch.
func switchTo(cmd *cobra.Command, a *app, key string) error {
	profile, ok := a.store.Get(key)
	if !ok {
		return &model.ProfileNotFoundError{Key: key}
	}

	res, err := a.applier.Apply(cmd.Context(), key, profile)
	if err != nil {
		return fmt.Errorf("switching to %s: %w", key, err)
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	switch {
	case res.KeyMissing:
		printError(errOut, "SSH key not found: %s", res.KeyPath)
	case res.KeyErr != nil:
		printWarning(errOut, "Could not add SSH key %s: %v", res.KeyPath, res.KeyErr)
	case res.KeyAdded && res.Fingerprint != "":
		printKey(out, "SSH key %s added (%s)", res.KeyPath, res.Fingerprint)
	case res.KeyAdded:
		printKey(out, "SSH key %s added", res.KeyPath)
	}

	printSuccess(out, "Switched to %s", key)
	a.log.WithField("scope", res.Scope).Debug("profile applied")
	return nil
}
