package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/civicdash/pkg/catalog"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Roles
	Admin       lipgloss.AdaptiveColor
	Educator    lipgloss.AdaptiveColor
	Citizen     lipgloss.AdaptiveColor
	LegalExpert lipgloss.AdaptiveColor

	// Styles
	Base       lipgloss.Style
	Header     lipgloss.Style
	Heading    lipgloss.Style
	PanelTitle lipgloss.Style
	Bold       lipgloss.Style
	MutedText  lipgloss.Style
	ErrorText  lipgloss.Style
	StatusText lipgloss.Style
	Button     lipgloss.Style

	NavItem   lipgloss.Style
	NavActive lipgloss.Style

	LoginPanel      lipgloss.Style
	LoginPanelEntry lipgloss.Style // one-shot highlight after logout
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},
		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},

		Admin:       lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
		Educator:    lipgloss.AdaptiveColor{Light: "#2684FF", Dark: "#4C9AFF"},
		Citizen:     lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},
		LegalExpert: lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"},
	}

	t.Base = r.NewStyle().Foreground(ColorText)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.Heading = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.PanelTitle = r.NewStyle().Foreground(ColorInfo).Bold(true)
	t.Bold = r.NewStyle().Foreground(ColorText).Bold(true)
	t.MutedText = r.NewStyle().Foreground(ColorMuted)
	t.ErrorText = r.NewStyle().Foreground(ColorDanger).Bold(true)
	t.StatusText = r.NewStyle().Foreground(ColorSuccess)
	t.Button = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Background(t.Primary).
		Padding(0, 2)

	t.NavItem = r.NewStyle().PaddingLeft(2).Foreground(t.Subtext)
	t.NavActive = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.LoginPanel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)
	t.LoginPanelEntry = t.LoginPanel.
		Border(lipgloss.ThickBorder()).
		BorderForeground(ColorSuccess)

	return t
}

// RoleColor returns the accent used for a role's badge.
func (t Theme) RoleColor(r catalog.Role) lipgloss.AdaptiveColor {
	switch r {
	case catalog.RoleAdmin:
		return t.Admin
	case catalog.RoleEducator:
		return t.Educator
	case catalog.RoleCitizen:
		return t.Citizen
	case catalog.RoleLegalExpert:
		return t.LegalExpert
	default:
		return t.Subtext
	}
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
