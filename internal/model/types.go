// Package model defines the profile data model persisted in the gguser store.
package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Profile is a git identity that can be applied to a repository or globally.
// The profile key is not part of the value; it is the key under which the
// profile is stored.
type Profile struct {
	// Name is written to user.name.
	Name string `json:"name"`

	// Email is written to user.email.
	Email string `json:"email"`

	// SSHKey is an optional path to a private key registered with the agent on switch.
	SSHKey string `json:"sshKey,omitempty"`
}

// HasSSHKey reports whether the profile carries a key path.
func (p Profile) HasSSHKey() bool {
	return p.SSHKey != ""
}

// ListItem is a profile together with its key, as returned by listing operations.
type ListItem struct {
	Key string
	Profile
}

// Users maps profile keys to profiles, preserving insertion order.
type Users = orderedmap.OrderedMap[string, Profile]

// NewUsers returns an empty ordered profile mapping.
func NewUsers() *Users {
	return orderedmap.New[string, Profile]()
}

// Config is the on-disk document.
type Config struct {
	// Users holds every profile in insertion order.
	Users *Users `json:"users"`

	// Directories maps a directory to a linked profile key. It is carried
	// through load and save untouched; nothing consults it yet.
	Directories map[string]string `json:"directories"`
}

// NewConfig returns the empty document written for a fresh or reset store.
func NewConfig() *Config {
	return &Config{
		Users:       NewUsers(),
		Directories: map[string]string{},
	}
}

// Normalize fills in sections missing from a decoded document.
func (c *Config) Normalize() {
	if c.Users == nil {
		c.Users = NewUsers()
	}
	if c.Directories == nil {
		c.Directories = map[string]string{}
	}
}

// Items returns the profiles in insertion order.
func (c *Config) Items() []ListItem {
	if c.Users == nil {
		return nil
	}
	items := make([]ListItem, 0, c.Users.Len())
	for pair := c.Users.Oldest(); pair != nil; pair = pair.Next() {
		items = append(items, ListItem{Key: pair.Key, Profile: pair.Value})
	}
	return items
}

// Keys returns the profile keys in insertion order.
func (c *Config) Keys() []string {
	if c.Users == nil {
		return nil
	}
	keys := make([]string, 0, c.Users.Len())
	for pair := c.Users.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}
