// Package store persists gguser profiles in a JSON file.
//
// The file is loaded once per process, mutated in memory and written back
// after every mutation. There is no cross-process lock: two invocations that
// mutate concurrently are last-writer-wins. Writes replace the file
// atomically, so readers never observe a partially written document.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nvinuesa/gguser/internal/model"
)

// AddUsage is the usage line reported when add is missing arguments.
const AddUsage = "gguser add <profile> <name> <email> [ssh_key]"

const fileMode = 0o600

// Store is a file-backed profile store.
type Store struct {
	mu   sync.RWMutex
	path string
	cfg  *model.Config
	log  logrus.FieldLogger
}

// Open loads the store at path.
//
// A missing or blank file is initialized with an empty document. A file that
// cannot be parsed is copied aside to <path>.corrupt-<id>, logged, and reset
// to an empty document.
func Open(path string, logger logrus.FieldLogger) (*Store, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Store{
		path: path,
		log:  logger.WithField("store", path),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading store: %w", err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		s.log.Debug("initializing empty store")
		s.cfg = model.NewConfig()
		return s.save()
	}

	var cfg model.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		backup := s.path + ".corrupt-" + uuid.NewString()[:8]
		entry := s.log.WithError(err)
		if werr := os.WriteFile(backup, raw, fileMode); werr != nil {
			entry.WithField("backup_error", werr).Error("Error reading config file. Resetting...")
		} else {
			entry.WithField("backup", backup).Error("Error reading config file. Resetting...")
		}
		s.cfg = model.NewConfig()
		return s.save()
	}

	cfg.Normalize()
	s.cfg = &cfg
	return nil
}

// save must be called with the write lock held or before the store is shared.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing store: %w", err)
	}
	raw = append(raw, '\n')
	if err := atomicWriteFile(s.path, raw, fileMode); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}
	s.log.Debug("store saved")
	return nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Add stores profile p under key, replacing any existing profile with the
// same key, and persists the store.
func (s *Store) Add(key string, p model.Profile) error {
	if key == "" || p.Name == "" || p.Email == "" {
		return &model.UsageError{Usage: AddUsage}
	}
	if err := model.ValidateKey(key); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, replaced := s.cfg.Users.Set(key, p); replaced {
		s.log.WithField("profile", key).Debug("replacing existing profile")
	}
	return s.save()
}

// Remove deletes the profile stored under key and persists the store.
// The store is left untouched if key is absent.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cfg.Users.Get(key); !ok {
		return &model.ProfileNotFoundError{Key: key}
	}
	s.cfg.Users.Delete(key)
	return s.save()
}

// Get returns the profile stored under key.
func (s *Store) Get(key string) (model.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Users.Get(key)
}

// List returns all profiles in insertion order.
func (s *Store) List() []model.ListItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Items()
}

// Keys returns all profile keys in insertion order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Keys()
}

// Len returns the number of stored profiles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Users.Len()
}

// Directories returns a copy of the directory to profile links.
func (s *Store) Directories() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dirs := make(map[string]string, len(s.cfg.Directories))
	for dir, key := range s.cfg.Directories {
		dirs[dir] = key
	}
	return dirs
}
