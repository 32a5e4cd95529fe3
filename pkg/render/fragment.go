// Package render turns catalog content into declarative fragments.
//
// A Fragment is a small tree (heading, intro, side-by-side panels, cards)
// that says what a section shows without saying how. The TUI styles it with
// lipgloss; Plain and Markdown give terminal-neutral renditions for tests
// and the CLI.
package render

import (
	"fmt"

	"github.com/vanderheijden86/civicdash/pkg/catalog"
	"github.com/vanderheijden86/civicdash/pkg/metrics"
	"github.com/vanderheijden86/civicdash/pkg/nav"
)

// Item is one list entry. Label is optional and rendered in bold before Text.
type Item struct {
	Label string `json:"label,omitempty"`
	Text  string `json:"text"`
}

// Panel is a titled list shown next to its siblings.
type Panel struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Card is a bordered block. Action, when set, is an inert call-to-action.
type Card struct {
	Title  string   `json:"title"`
	Lines  []string `json:"lines,omitempty"`
	Action string   `json:"action,omitempty"`
}

// Fragment is the complete content of the display region for one section.
type Fragment struct {
	Section nav.Section `json:"-"`
	Tag     string      `json:"section"`
	Heading string      `json:"heading"`
	Intro   string      `json:"intro,omitempty"`
	Panels  []Panel     `json:"panels,omitempty"`
	Cards   []Card      `json:"cards,omitempty"`
}

const (
	resourcesHeading   = "📝 Resources & Documents"
	resourcesIntro     = "Access the core documents, landmark case studies, and essential learning materials."
	discussionsHeading = "💬 Discussions Forum"
	discussionsIntro   = "Engage in civic dialogue, ask questions, and share insights with the community."
	managementIntro    = "Welcome to your dedicated management area. This is where you perform critical tasks such as:"

	responsibilitiesTitle = "Core Responsibilities"
	featuresTitle         = "Key Platform Features"
)

// Home builds the role dashboard. ok is false when role has no catalog
// record; callers leave the previous content in place.
func Home(c *catalog.Catalog, role catalog.Role) (Fragment, bool) {
	defer metrics.Timer(metrics.RenderHome)()

	info, ok := c.Role(role)
	if !ok {
		return Fragment{}, false
	}

	resp := Panel{Title: responsibilitiesTitle}
	for _, r := range info.Responsibilities {
		resp.Items = append(resp.Items, Item{Text: r})
	}
	feat := Panel{Title: featuresTitle}
	for _, f := range info.Features {
		feat.Items = append(feat.Items, Item{Label: f.Title, Text: f.Description})
	}

	return Fragment{
		Section: nav.Home,
		Tag:     nav.Home.Tag(),
		Heading: info.Icon + " " + info.Title,
		Intro:   info.Intro,
		Panels:  []Panel{resp, feat},
	}, true
}

// Resources builds one card per catalog resource, in catalog order.
func Resources(c *catalog.Catalog) Fragment {
	defer metrics.Timer(metrics.RenderResources)()

	f := Fragment{
		Section: nav.Resources,
		Tag:     nav.Resources.Tag(),
		Heading: resourcesHeading,
		Intro:   resourcesIntro,
	}
	for _, r := range c.Resources() {
		f.Cards = append(f.Cards, Card{
			Title: r.Title,
			Lines: []string{
				fmt.Sprintf("Type: **%s**", r.Type),
				fmt.Sprintf("View Document (Simulated Link) → %s", r.Link),
			},
		})
	}
	return f
}

// Discussions builds one card per discussion topic, in catalog order.
func Discussions(c *catalog.Catalog) Fragment {
	defer metrics.Timer(metrics.RenderDiscussions)()

	f := Fragment{
		Section: nav.Discussions,
		Tag:     nav.Discussions.Tag(),
		Heading: discussionsHeading,
		Intro:   discussionsIntro,
	}
	for _, d := range c.Discussions() {
		f.Cards = append(f.Cards, Card{
			Title: d.Title,
			Lines: []string{fmt.Sprintf("Posted by: %s | Replies: %d", d.Author, d.Replies)},
		})
	}
	return f
}

// Management builds the task panel for a role-restricted section: the
// first two features of the owning role, each with an inert action.
// ok is false for a section that is not a management panel or whose role
// has fewer than two features.
func Management(c *catalog.Catalog, s nav.Section) (Fragment, bool) {
	defer metrics.Timer(metrics.RenderManagement)()

	role, ok := s.RequiredRole()
	if !ok {
		return Fragment{}, false
	}
	info, ok := c.Role(role)
	if !ok || len(info.Features) < 2 {
		return Fragment{}, false
	}

	f := Fragment{
		Section: s,
		Tag:     s.Tag(),
		Heading: info.Icon + " " + info.Features[0].Title,
		Intro:   managementIntro,
	}
	for _, feat := range info.Features[:2] {
		f.Cards = append(f.Cards, Card{
			Title:  "Core Task: " + feat.Title,
			Lines:  []string{feat.Description},
			Action: fmt.Sprintf("Go to %s Interface", feat.Title),
		})
	}
	return f, true
}

// Section renders any section for a viewer with the given role. Management
// sections that fail their guard fall back to Home. ok is false only when
// Home itself cannot be built.
func Section(c *catalog.Catalog, s nav.Section, role catalog.Role) (Fragment, bool) {
	switch s {
	case nav.Home:
		return Home(c, role)
	case nav.Resources:
		return Resources(c), true
	case nav.Discussions:
		return Discussions(c), true
	case nav.AdminPanel, nav.EducatorPanel, nav.ExpertPanel:
		if f, ok := Management(c, s); ok {
			return f, true
		}
		return Home(c, role)
	}
	return Home(c, role)
}
