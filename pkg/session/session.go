// Package session holds the single signed-in user of the dashboard.
//
// There is no authentication: a session is created from a display name and
// a role chosen from the catalog, and it lives only in process memory.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vanderheijden86/civicdash/pkg/catalog"
)

// Login guard failures.
var (
	ErrEmptyName   = errors.New("name is required")
	ErrUnknownRole = errors.New("unknown role")
)

// Session is the record of the currently signed-in user.
type Session struct {
	ID        uuid.UUID
	Name      string
	Role      catalog.Role
	StartedAt time.Time
}

// ValidateName rejects empty and whitespace-only names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// State owns the optional current session. The zero value is not usable;
// construct with NewState.
type State struct {
	catalog *catalog.Catalog
	current *Session
	now     func() time.Time
}

// NewState returns a signed-out state that resolves roles against c.
func NewState(c *catalog.Catalog) *State {
	return &State{catalog: c, now: time.Now}
}

// Login replaces any existing session with a new one. The name is trimmed;
// roleKey must name a role with a catalog record. On error the state is
// left untouched.
func (s *State) Login(name, roleKey string) (Session, error) {
	if err := ValidateName(name); err != nil {
		return Session{}, err
	}
	role, ok := catalog.ParseRole(roleKey)
	if !ok {
		return Session{}, fmt.Errorf("%w: %q", ErrUnknownRole, roleKey)
	}
	if _, ok := s.catalog.Role(role); !ok {
		return Session{}, fmt.Errorf("%w: %q has no catalog record", ErrUnknownRole, roleKey)
	}

	sess := Session{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Role:      role,
		StartedAt: s.now(),
	}
	s.current = &sess
	return sess, nil
}

// Logout clears the session and returns the one that ended, if any.
func (s *State) Logout() (Session, bool) {
	if s.current == nil {
		return Session{}, false
	}
	ended := *s.current
	s.current = nil
	return ended, true
}

// Current returns the active session.
func (s *State) Current() (Session, bool) {
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// LoggedIn reports whether a session is active.
func (s *State) LoggedIn() bool {
	return s.current != nil
}

// Catalog returns the catalog roles are resolved against.
func (s *State) Catalog() *catalog.Catalog {
	return s.catalog
}
