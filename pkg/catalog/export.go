package catalog

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// RoleEntry pairs a role key with its record for ordered export.
type RoleEntry struct {
	Key   Role   `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	RoleInfo `yaml:",inline"`
}

// Snapshot is the serialisable form of a Catalog, with roles in selector
// order so dumps are stable.
type Snapshot struct {
	Roles       []RoleEntry       `json:"roles" yaml:"roles"`
	Resources   []Resource        `json:"resources" yaml:"resources"`
	Discussions []DiscussionTopic `json:"discussions" yaml:"discussions"`
}

// Snapshot returns a copy of the catalog contents.
func (c *Catalog) Snapshot() Snapshot {
	s := Snapshot{
		Resources:   c.Resources(),
		Discussions: c.Discussions(),
	}
	for _, r := range c.Roles() {
		info, _ := c.Role(r)
		s.Roles = append(s.Roles, RoleEntry{Key: r, Label: r.Label(), RoleInfo: info})
	}
	return s
}

// WriteJSON writes the catalog as indented JSON.
func (c *Catalog) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.Snapshot()); err != nil {
		return fmt.Errorf("encoding catalog json: %w", err)
	}
	return nil
}

// WriteYAML writes the catalog as YAML.
func (c *Catalog) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c.Snapshot()); err != nil {
		return fmt.Errorf("encoding catalog yaml: %w", err)
	}
	return enc.Close()
}
