// Package session caches the access token and user profile between runs.
// The core treats a present token as a precondition; it never refreshes or
// validates one.
package session

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Session is the persisted login state.
type Session struct {
	AccessToken string `yaml:"access_token"`
	User        User   `yaml:"user"`
}

// User is the cached profile of the logged-in account.
type User struct {
	ID           string `yaml:"id"`
	Username     string `yaml:"username"`
	EmailAddress string `yaml:"email_address"`
}

// Load reads the session file. A missing file means "not logged in" and
// returns nil without error.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.AccessToken == "" {
		return nil, nil
	}
	return &s, nil
}

// Save writes the session file, readable only by the owner.
func Save(path string, s *Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Clear removes the session file. Clearing an absent session is a no-op.
func Clear(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
