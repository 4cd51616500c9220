package client

import (
	"os"
	"path/filepath"
	"strings"
)

// IdentityStore persists the logged-in customer identity: one string
// value in one file, the terminal analog of a fixed localStorage key.
type IdentityStore struct{ path string }

func NewIdentityStore(path string) *IdentityStore { return &IdentityStore{path: path} }

// DefaultIdentityPath places the session file under the user config dir.
func DefaultIdentityPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "laundry-orders", "session"), nil
}

func (s *IdentityStore) Load() string {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func (s *IdentityStore) Save(identity string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(identity), 0o600)
}

func (s *IdentityStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Session decides which view is shown. On becoming authenticated it
// fires OnLogin (the initial order fetch); on any teardown it fires
// OnLogout (switch back to the auth view).
type Session struct {
	store    *IdentityStore // nil for the admin app (server-held session)
	identity string

	OnLogin  func(identity string)
	OnLogout func()
}

func NewSession(store *IdentityStore) *Session {
	s := &Session{store: store}
	if store != nil {
		s.identity = store.Load()
	}
	return s
}

func (s *Session) IsAuthenticated() bool { return s.identity != "" }

func (s *Session) Identity() string { return s.identity }

// Resume fires the login hook for an identity restored from disk.
func (s *Session) Resume() {
	if s.identity != "" && s.OnLogin != nil {
		s.OnLogin(s.identity)
	}
}

// SetAuthenticated records the identity, persists it, and triggers the
// authenticated-view transition.
func (s *Session) SetAuthenticated(identity string) {
	s.identity = identity
	if s.store != nil {
		_ = s.store.Save(identity)
	}
	if s.OnLogin != nil {
		s.OnLogin(identity)
	}
}

// Clear tears the session down: explicit logout and observed 401s both
// land here.
func (s *Session) Clear() {
	s.identity = ""
	if s.store != nil {
		_ = s.store.Clear()
	}
	if s.OnLogout != nil {
		s.OnLogout()
	}
}
