package ui

import (
	"testing"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/civicdash/pkg/catalog"
)

func TestDefaultTheme(t *testing.T) {
	renderer := lipgloss.NewRenderer(nil)
	theme := DefaultTheme(renderer)

	if theme.Renderer != renderer {
		t.Error("DefaultTheme renderer mismatch")
	}
	// Check a few known colors are set (not zero value)
	if isColorEmpty(theme.Primary) {
		t.Error("DefaultTheme Primary color is empty")
	}
	if isColorEmpty(theme.LegalExpert) {
		t.Error("DefaultTheme LegalExpert color is empty")
	}
}

func isColorEmpty(c lipgloss.AdaptiveColor) bool {
	return c.Light == "" && c.Dark == ""
}

func TestRoleColor(t *testing.T) {
	theme := DefaultTheme(lipgloss.NewRenderer(nil))

	tests := []struct {
		role catalog.Role
		want lipgloss.AdaptiveColor
	}{
		{catalog.RoleAdmin, theme.Admin},
		{catalog.RoleEducator, theme.Educator},
		{catalog.RoleCitizen, theme.Citizen},
		{catalog.RoleLegalExpert, theme.LegalExpert},
		{catalog.Role("Mayor"), theme.Subtext},
		{"", theme.Subtext},
	}

	for _, tt := range tests {
		if got := theme.RoleColor(tt.role); got != tt.want {
			t.Errorf("RoleColor(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestColorProfile_Detection(t *testing.T) {
	// TermProfile is set at init(); just verify it's a valid value
	valid := map[colorprofile.Profile]bool{
		colorprofile.Unknown:   true,
		colorprofile.NoTTY:     true,
		colorprofile.ASCII:     true,
		colorprofile.ANSI:      true,
		colorprofile.ANSI256:   true,
		colorprofile.TrueColor: true,
	}
	if !valid[TermProfile] {
		t.Errorf("TermProfile has unexpected value: %d", TermProfile)
	}
}

func TestThemeFg_TrueColor(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	TermProfile = colorprofile.TrueColor

	got := ThemeFg("#6272A4")
	if c, ok := got.(lipgloss.Color); !ok || string(c) != "#6272A4" {
		t.Errorf("ThemeFg should keep the hex color in TrueColor mode, got %v", got)
	}
}

func TestThemeFg_ANSI(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	TermProfile = colorprofile.ANSI

	got := ThemeFg("#6272A4")
	if _, ok := got.(lipgloss.ANSIColor); !ok {
		t.Errorf("ThemeFg should fall back to an ANSI color, got %T", got)
	}
}

func TestLoginPanelEntryStandsOut(t *testing.T) {
	theme := TestTheme()
	if theme.LoginPanelEntry.GetBorderStyle() == theme.LoginPanel.GetBorderStyle() {
		t.Error("entry highlight should use a different border than the resting panel")
	}
}
