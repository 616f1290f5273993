package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nvinuesa/gguser/internal/gitconfig"
	"github.com/nvinuesa/gguser/internal/paths"
	"github.com/nvinuesa/gguser/internal/sshkey"
)

// Environment variables read by loadConfig.
const (
	envStorePath = "GGUSER_CONFIG"
	envDebug     = "GGUSER_DEBUG"
	envGit       = "GGUSER_GIT"
	envSSHAdd    = "GGUSER_SSH_ADD"
	envKeyAgent  = "GGUSER_KEY_AGENT"
)

// Flag values
var (
	cfgStorePath string
	cfgDebug     bool
)

type config struct {
	StorePath    string
	Debug        bool
	GitBinary    string
	SSHAddBinary string
	AgentMode    sshkey.Mode
}

// loadConfig resolves settings from flags, then the environment, then
// defaults.
func loadConfig() (config, error) {
	cfg := config{
		GitBinary:    gitconfig.DefaultBinary,
		SSHAddBinary: sshkey.DefaultSSHAddBinary,
		AgentMode:    sshkey.ModeSSHAdd,
	}

	// Store path
	switch {
	case cfgStorePath != "":
		cfg.StorePath = cfgStorePath
	case os.Getenv(envStorePath) != "":
		cfg.StorePath = os.Getenv(envStorePath)
	default:
		p, err := paths.DefaultStorePath()
		if err != nil {
			return config{}, err
		}
		cfg.StorePath = p
	}
	p, err := paths.ExpandHome(cfg.StorePath)
	if err != nil {
		return config{}, fmt.Errorf("store path: %w", err)
	}
	cfg.StorePath = p

	// Debug
	cfg.Debug = cfgDebug
	if v := os.Getenv(envDebug); v != "" && !cfgDebug {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return config{}, fmt.Errorf("invalid %s: %q", envDebug, v)
		}
		cfg.Debug = debug
	}

	// External tools
	if v := os.Getenv(envGit); v != "" {
		cfg.GitBinary = v
	}
	if v := os.Getenv(envSSHAdd); v != "" {
		cfg.SSHAddBinary = v
	}
	mode, err := sshkey.ParseMode(os.Getenv(envKeyAgent))
	if err != nil {
		return config{}, fmt.Errorf("invalid %s: %w", envKeyAgent, err)
	}
	cfg.AgentMode = mode

	return cfg, nil
}
