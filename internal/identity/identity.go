// Package identity applies a profile to git and resolves the identity git
// currently uses.
package identity

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nvinuesa/gguser/internal/gitconfig"
	"github.com/nvinuesa/gguser/internal/model"
	"github.com/nvinuesa/gguser/internal/paths"
	"github.com/nvinuesa/gguser/internal/sshkey"
)

// ConfigStore reads and writes git configuration values.
type ConfigStore interface {
	Get(ctx context.Context, scope gitconfig.Scope, key string) (string, error)
	Set(ctx context.Context, scope gitconfig.Scope, key, value string) error
}

// Identity is a git user name and email.
type Identity struct {
	Name  string
	Email string
	Scope gitconfig.Scope
}

// String renders the identity as "name <email>".
func (i Identity) String() string {
	return fmt.Sprintf("%s <%s>", i.Name, i.Email)
}

// Result describes what Apply did.
type Result struct {
	Key   string
	Scope gitconfig.Scope

	// KeyPath is the expanded SSH key path, empty if the profile has none.
	KeyPath string
	// KeyAdded is set when the key was registered with the agent.
	KeyAdded bool
	// KeyMissing is set when KeyPath does not exist.
	KeyMissing bool
	// KeyErr holds the agent failure, if any. It does not fail Apply.
	KeyErr error
	// Fingerprint is the SHA256 fingerprint of the added key when it could
	// be computed.
	Fingerprint string
}

// Applier writes profiles to git configuration.
type Applier struct {
	git   ConfigStore
	agent sshkey.Agent
	dir   string
	log   logrus.FieldLogger

	// Seams for tests.
	exists      func(string) bool
	fingerprint func(string) (string, error)
}

// New returns an Applier writing through git, registering keys with agent
// and detecting the scope from dir. A nil agent skips key registration.
func New(git ConfigStore, agent sshkey.Agent, dir string, logger logrus.FieldLogger) *Applier {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Applier{
		git:         git,
		agent:       agent,
		dir:         dir,
		log:         logger,
		exists:      paths.Exists,
		fingerprint: sshkey.Fingerprint,
	}
}

// Scope returns the scope Apply writes to.
func (a *Applier) Scope() gitconfig.Scope {
	return gitconfig.DetectScope(a.dir)
}

// Apply sets user.name and user.email for profile and registers its SSH key.
// Config write failures are returned. Key problems are recorded on the
// result and never undo the identity switch.
func (a *Applier) Apply(ctx context.Context, key string, profile model.Profile) (*Result, error) {
	scope := a.Scope()
	res := &Result{Key: key, Scope: scope}

	a.log.WithFields(logrus.Fields{"profile": key, "scope": scope}).Debug("applying profile")

	if err := a.git.Set(ctx, scope, gitconfig.KeyUserName, profile.Name); err != nil {
		return nil, err
	}
	if err := a.git.Set(ctx, scope, gitconfig.KeyUserEmail, profile.Email); err != nil {
		return nil, err
	}

	if !profile.HasSSHKey() {
		return res, nil
	}

	path, err := paths.ExpandHome(profile.SSHKey)
	if err != nil {
		res.KeyPath = profile.SSHKey
		res.KeyErr = err
		return res, nil
	}
	res.KeyPath = path

	if !a.exists(path) {
		res.KeyMissing = true
		return res, nil
	}
	if a.agent == nil {
		return res, nil
	}

	if err := a.agent.Add(ctx, path); err != nil {
		a.log.WithError(err).Warn("could not add SSH key")
		res.KeyErr = err
		return res, nil
	}
	res.KeyAdded = true

	if fp, err := a.fingerprint(path); err == nil {
		res.Fingerprint = fp
	} else {
		a.log.WithError(err).Debug("no fingerprint for key")
	}
	return res, nil
}

// Current returns the identity configured in the local scope, or in the
// global scope if the local lookup fails. It returns model.ErrNoIdentity
// when neither scope has both a name and an email.
func (a *Applier) Current(ctx context.Context) (Identity, error) {
	for _, scope := range []gitconfig.Scope{gitconfig.ScopeLocal, gitconfig.ScopeGlobal} {
		id, err := a.lookup(ctx, scope)
		if err == nil {
			return id, nil
		}
		if ctx.Err() != nil {
			return Identity{}, ctx.Err()
		}
		a.log.WithError(err).Debugf("no %s identity", scope)
	}
	return Identity{}, model.ErrNoIdentity
}

func (a *Applier) lookup(ctx context.Context, scope gitconfig.Scope) (Identity, error) {
	name, err := a.git.Get(ctx, scope, gitconfig.KeyUserName)
	if err != nil {
		return Identity{}, err
	}
	email, err := a.git.Get(ctx, scope, gitconfig.KeyUserEmail)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Name: name, Email: email, Scope: scope}, nil
}

var _ ConfigStore = (*gitconfig.Client)(nil)
