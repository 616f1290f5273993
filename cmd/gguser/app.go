package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nvinuesa/gguser/internal/execx"
	"github.com/nvinuesa/gguser/internal/gitconfig"
	"github.com/nvinuesa/gguser/internal/identity"
	"github.com/nvinuesa/gguser/internal/model"
	"github.com/nvinuesa/gguser/internal/selector"
	"github.com/nvinuesa/gguser/internal/sshkey"
	"github.com/nvinuesa/gguser/internal/store"
)

// profileSelector asks the user to choose one profile.
type profileSelector interface {
	Select(ctx context.Context, title string, items []model.ListItem) (string, error)
}

// Replaced in tests.
var (
	newRunner = func(logger logrus.FieldLogger) execx.Runner {
		return execx.NewRunner(logger)
	}
	newSelector = func(cmd *cobra.Command) profileSelector {
		return selector.New(os.Stdin, cmd.OutOrStdout())
	}
	workingDir = os.Getwd
)

// app holds the collaborators of one invocation.
type app struct {
	cfg     config
	log     *logrus.Logger
	store   *store.Store
	applier *identity.Applier
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Debug)

	st, err := store.Open(cfg.StorePath, logger)
	if err != nil {
		return nil, err
	}

	dir, err := workingDir()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	runner := newRunner(logger)
	agent, err := sshkey.New(sshkey.Options{
		Mode:   cfg.AgentMode,
		Runner: runner,
		Binary: cfg.SSHAddBinary,
		Prompt: sshkey.TerminalPrompt(os.Stdin, cmd.ErrOrStderr()),
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	git := gitconfig.New(runner, cfg.GitBinary, dir)
	logger.WithFields(logrus.Fields{
		"store": cfg.StorePath,
		"dir":   dir,
		"agent": cfg.AgentMode,
	}).Debug("configured")

	return &app{
		cfg:     cfg,
		log:     logger,
		store:   st,
		applier: identity.New(git, agent, dir, logger),
	}, nil
}
