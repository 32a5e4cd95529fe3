// Package catalog holds the static, read-only content behind the dashboard:
// per-role descriptions, the resource list and the discussion topics.
//
// A Catalog never changes after it is built. Accessors hand out copies so a
// caller rendering content cannot alter what the next caller sees.
package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidCatalog is wrapped by every Validate failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Feature is a named platform capability listed for a role.
type Feature struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// RoleInfo is the descriptive record for one Role.
type RoleInfo struct {
	Icon             string    `json:"icon" yaml:"icon"`
	Title            string    `json:"title" yaml:"title"`
	Intro            string    `json:"intro" yaml:"intro"` // markdown emphasis allowed
	Responsibilities []string  `json:"responsibilities" yaml:"responsibilities"`
	Features         []Feature `json:"features" yaml:"features"`
}

func (ri RoleInfo) clone() RoleInfo {
	ri.Responsibilities = slices.Clone(ri.Responsibilities)
	ri.Features = slices.Clone(ri.Features)
	return ri
}

// Resource is a document or study aid. Link may be a placeholder.
type Resource struct {
	ID    int    `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Type  string `json:"type" yaml:"type"`
	Link  string `json:"link" yaml:"link"`
}

// DiscussionTopic is a forum thread summary. Author is free-form text.
type DiscussionTopic struct {
	ID      int    `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Author  string `json:"author" yaml:"author"`
	Replies int    `json:"replies" yaml:"replies"`
}

// Catalog is the immutable content table.
type Catalog struct {
	roles       map[Role]RoleInfo
	resources   []Resource
	discussions []DiscussionTopic
}

// New builds a catalog from the given records. The inputs are copied.
func New(roles map[Role]RoleInfo, resources []Resource, discussions []DiscussionTopic) *Catalog {
	c := &Catalog{
		roles:       make(map[Role]RoleInfo, len(roles)),
		resources:   slices.Clone(resources),
		discussions: slices.Clone(discussions),
	}
	for r, info := range roles {
		c.roles[r] = info.clone()
	}
	return c
}

// Role looks up the record for r. The second result is false for a key
// that has no record.
func (c *Catalog) Role(r Role) (RoleInfo, bool) {
	info, ok := c.roles[r]
	if !ok {
		return RoleInfo{}, false
	}
	return info.clone(), true
}

// Roles returns the roles that have a record, in selector order.
func (c *Catalog) Roles() []Role {
	out := make([]Role, 0, len(c.roles))
	for _, r := range AllRoles() {
		if _, ok := c.roles[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Resources returns the resources in display order.
func (c *Catalog) Resources() []Resource {
	return slices.Clone(c.resources)
}

// Discussions returns the discussion topics in display order.
func (c *Catalog) Discussions() []DiscussionTopic {
	return slices.Clone(c.discussions)
}

// Validate checks that every role has a complete record and that list
// entries are well formed.
func (c *Catalog) Validate() error {
	for _, r := range AllRoles() {
		info, ok := c.roles[r]
		if !ok {
			return fmt.Errorf("%w: no record for role %s", ErrInvalidCatalog, r)
		}
		if info.Icon == "" || info.Title == "" {
			return fmt.Errorf("%w: role %s missing icon or title", ErrInvalidCatalog, r)
		}
		if len(info.Responsibilities) == 0 {
			return fmt.Errorf("%w: role %s has no responsibilities", ErrInvalidCatalog, r)
		}
		// Management panels show the first two features.
		if len(info.Features) < 2 {
			return fmt.Errorf("%w: role %s needs at least 2 features, has %d", ErrInvalidCatalog, r, len(info.Features))
		}
	}
	for r := range c.roles {
		if !r.Valid() {
			return fmt.Errorf("%w: unknown role key %q", ErrInvalidCatalog, string(r))
		}
	}

	seen := make(map[int]bool, len(c.resources))
	for _, res := range c.resources {
		if seen[res.ID] {
			return fmt.Errorf("%w: duplicate resource id %d", ErrInvalidCatalog, res.ID)
		}
		seen[res.ID] = true
	}

	seen = make(map[int]bool, len(c.discussions))
	for _, d := range c.discussions {
		if seen[d.ID] {
			return fmt.Errorf("%w: duplicate discussion id %d", ErrInvalidCatalog, d.ID)
		}
		if d.Replies < 0 {
			return fmt.Errorf("%w: discussion %d has negative reply count", ErrInvalidCatalog, d.ID)
		}
		seen[d.ID] = true
	}
	return nil
}
