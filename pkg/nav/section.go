// Package nav defines the closed set of dashboard sections a navigation
// entry can point at.
package nav

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vanderheijden86/civicdash/pkg/catalog"
)

// ErrUnknownSection is returned by Parse for a tag that is not one of the six
// sections.
var ErrUnknownSection = errors.New("unknown section")

// Section is a navigation target.
type Section int

const (
	Home Section = iota
	Resources
	Discussions
	AdminPanel
	EducatorPanel
	ExpertPanel
)

// All returns every section in sidebar order.
func All() []Section {
	return []Section{Home, Resources, Discussions, AdminPanel, EducatorPanel, ExpertPanel}
}

// Tag returns the short identifier used on the command line and in config.
func (s Section) Tag() string {
	switch s {
	case Home:
		return "home"
	case Resources:
		return "resources"
	case Discussions:
		return "discussions"
	case AdminPanel:
		return "admin"
	case EducatorPanel:
		return "educator"
	case ExpertPanel:
		return "expert"
	}
	return fmt.Sprintf("section(%d)", int(s))
}

func (s Section) String() string {
	return s.Tag()
}

// Title is the sidebar label.
func (s Section) Title() string {
	switch s {
	case Home:
		return "Home"
	case Resources:
		return "Resources"
	case Discussions:
		return "Discussions"
	case AdminPanel:
		return "Admin Panel"
	case EducatorPanel:
		return "Educator Tools"
	case ExpertPanel:
		return "Expert Desk"
	}
	return s.Tag()
}

// ParseTag resolves a section tag, ignoring case and surrounding space.
func ParseTag(tag string) (Section, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, s := range All() {
		if s.Tag() == tag {
			return s, true
		}
	}
	return 0, false
}

// Parse is ParseTag with an error for callers that report it.
func Parse(tag string) (Section, error) {
	s, ok := ParseTag(tag)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSection, tag)
	}
	return s, nil
}

// IsManagement reports whether s is one of the role-restricted panels.
func (s Section) IsManagement() bool {
	_, ok := s.RequiredRole()
	return ok
}

// RequiredRole returns the role whose dashboard reveals this section.
func (s Section) RequiredRole() (catalog.Role, bool) {
	switch s {
	case AdminPanel:
		return catalog.RoleAdmin, true
	case EducatorPanel:
		return catalog.RoleEducator, true
	case ExpertPanel:
		return catalog.RoleLegalExpert, true
	case Home, Resources, Discussions:
		return "", false
	}
	return "", false
}

// RestrictedFor returns the management section revealed for role, if any.
// Citizens have none.
func RestrictedFor(role catalog.Role) (Section, bool) {
	for _, s := range All() {
		if r, ok := s.RequiredRole(); ok && r == role {
			return s, true
		}
	}
	return 0, false
}
