package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"pgregory.net/rapid"

	"github.com/vanderheijden86/civicdash/pkg/catalog"
	"github.com/vanderheijden86/civicdash/pkg/config"
	"github.com/vanderheijden86/civicdash/pkg/nav"
	"github.com/vanderheijden86/civicdash/pkg/render"
)

type nopMsg struct{}

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.UI.TransitionDelayMs = 1
	cfg.UI.EntryAnimationMs = 1
	return cfg
}

func newTestModel() Model {
	return NewModel(catalog.Default(), testConfig())
}

func loggedIn(t *testing.T, name string, role catalog.Role) Model {
	t.Helper()
	m, _ := newTestModel().Login(name, string(role))
	if m.CurrentView() != ViewDashboard {
		t.Fatalf("expected dashboard after login as %s, got %v (err %q)", role, m.CurrentView(), m.LoginError())
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel_StartsOnLogin(t *testing.T) {
	m := newTestModel()
	if m.CurrentView() != ViewLogin {
		t.Errorf("expected login view, got %v", m.CurrentView())
	}
	if _, ok := m.Session(); ok {
		t.Error("expected no session before login")
	}
	for _, s := range []nav.Section{nav.AdminPanel, nav.EducatorPanel, nav.ExpertPanel} {
		if m.EntryVisible(s) {
			t.Errorf("expected %s hidden before login", s)
		}
	}
}

func TestLogin_EmptyNameStaysOnLogin(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		m, cmd := newTestModel().Login(name, "Citizen")
		if cmd != nil {
			t.Errorf("name %q: expected no command", name)
		}
		if m.CurrentView() != ViewLogin {
			t.Errorf("name %q: expected login view, got %v", name, m.CurrentView())
		}
		if _, ok := m.Session(); ok {
			t.Errorf("name %q: expected no session", name)
		}
		if m.Profile() != (Profile{}) {
			t.Errorf("name %q: expected empty profile, got %+v", name, m.Profile())
		}
		if m.LoginError() == "" {
			t.Errorf("name %q: expected an inline error", name)
		}
	}
}

func TestLogin_UnknownRoleStaysOnLogin(t *testing.T) {
	m, _ := newTestModel().Login("Asha", "Mayor")
	if m.CurrentView() != ViewLogin {
		t.Fatalf("expected login view, got %v", m.CurrentView())
	}
	if !strings.Contains(m.LoginError(), "role") {
		t.Errorf("expected role error, got %q", m.LoginError())
	}
}

func TestLogin_CitizenDashboard(t *testing.T) {
	m := loggedIn(t, "Asha", catalog.RoleCitizen)

	sess, ok := m.Session()
	if !ok || sess.Name != "Asha" || sess.Role != catalog.RoleCitizen {
		t.Fatalf("expected Asha/Citizen session, got %+v (ok=%v)", sess, ok)
	}

	p := m.Profile()
	if p.Name != "Asha" || p.RoleLabel != "Citizen" || p.Icon != "🧑‍🤝‍🧑" {
		t.Errorf("unexpected profile %+v", p)
	}

	for _, s := range []nav.Section{nav.AdminPanel, nav.EducatorPanel, nav.ExpertPanel} {
		if m.EntryVisible(s) {
			t.Errorf("expected %s hidden for a citizen", s)
		}
	}

	active, ok := m.ActiveSection()
	if !ok || active != nav.Home || m.ActiveCount() != 1 {
		t.Errorf("expected only home active, got %v (count %d)", active, m.ActiveCount())
	}

	f, ok := m.Content()
	if !ok || !m.ContentVisible() {
		t.Fatal("expected home content rendered immediately")
	}
	info, _ := catalog.Default().Role(catalog.RoleCitizen)
	if f.Section != nav.Home || f.Heading != info.Icon+" "+info.Title {
		t.Errorf("expected citizen home, got %q", f.Heading)
	}
}

func TestLogin_RevealsOnlyOwnPanel(t *testing.T) {
	cases := []struct {
		role catalog.Role
		want nav.Section
	}{
		{catalog.RoleAdmin, nav.AdminPanel},
		{catalog.RoleEducator, nav.EducatorPanel},
		{catalog.RoleLegalExpert, nav.ExpertPanel},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			m := loggedIn(t, "Kai", tc.role)
			for _, s := range []nav.Section{nav.AdminPanel, nav.EducatorPanel, nav.ExpertPanel} {
				if got := m.EntryVisible(s); got != (s == tc.want) {
					t.Errorf("%s visible=%v for %s", s, got, tc.role)
				}
			}
		})
	}
}

func TestLogin_LegalExpertLabel(t *testing.T) {
	m := loggedIn(t, "Rin", catalog.RoleLegalExpert)
	if m.Profile().RoleLabel != "Legal Expert" {
		t.Errorf("expected spaced label, got %q", m.Profile().RoleLabel)
	}
}

func TestLogin_VisibilityRecomputedAcrossSessions(t *testing.T) {
	m := loggedIn(t, "Ada", catalog.RoleAdmin)
	m, _ = m.Logout()
	m, _ = m.Login("Ben", "Educator")

	if m.EntryVisible(nav.AdminPanel) {
		t.Error("admin panel leaked into the educator session")
	}
	if !m.EntryVisible(nav.EducatorPanel) {
		t.Error("expected educator panel visible")
	}
}

func TestLogout_EntryAnimation(t *testing.T) {
	m := loggedIn(t, "Ada", catalog.RoleAdmin)

	m, cmd := m.Logout()
	if m.CurrentView() != ViewLogin {
		t.Fatalf("expected login view after logout, got %v", m.CurrentView())
	}
	if _, ok := m.Session(); ok {
		t.Error("expected session cleared")
	}
	if !m.LoginAnimating() {
		t.Error("expected entry animation to start")
	}
	if name, role := m.LoginValues(); name != "" || role != "" {
		t.Errorf("expected empty form, got %q/%q", name, role)
	}
	if m.Profile() != (Profile{}) {
		t.Errorf("expected profile cleared, got %+v", m.Profile())
	}
	if cmd == nil {
		t.Fatal("expected a deferred animation command")
	}

	m = update(t, m, cmd())
	if m.LoginAnimating() {
		t.Error("expected entry animation cleared after the deferred task")
	}
}

func TestLogout_CancelsPendingRender(t *testing.T) {
	m := loggedIn(t, "Ada", catalog.RoleAdmin)
	m, nav1 := m.Navigate(nav.Resources)
	m, _ = m.Logout()

	m = update(t, m, nav1())
	if _, ok := m.Content(); ok {
		t.Error("a render scheduled before logout should not fill the content region")
	}
}

func TestLogout_WhenSignedOutIsNoop(t *testing.T) {
	m, cmd := newTestModel().Logout()
	if cmd != nil || m.LoginAnimating() {
		t.Error("expected logout on the login view to do nothing")
	}
}

func TestNavigate_DefersRender(t *testing.T) {
	m := loggedIn(t, "Asha", catalog.RoleCitizen)

	m, cmd := m.Navigate(nav.Resources)
	if cmd == nil {
		t.Fatal("expected a deferred render command")
	}
	if m.ContentVisible() {
		t.Error("expected content hidden while the render is pending")
	}
	if active, _ := m.ActiveSection(); active != nav.Resources {
		t.Errorf("expected resources active immediately, got %v", active)
	}

	m = update(t, m, cmd())
	f, ok := m.Content()
	if !ok || !m.ContentVisible() || f.Section != nav.Resources {
		t.Errorf("expected resources rendered, got %v (visible=%v)", f.Section, m.ContentVisible())
	}
}

func TestNavigate_LastWins(t *testing.T) {
	orders := map[string][2]int{"in order": {0, 1}, "reversed": {1, 0}}
	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			m := loggedIn(t, "Asha", catalog.RoleCitizen)

			var cmds [2]tea.Cmd
			m, cmds[0] = m.Navigate(nav.Resources)
			if m.ActiveCount() != 1 {
				t.Fatalf("expected one active entry, got %d", m.ActiveCount())
			}
			m, cmds[1] = m.Navigate(nav.Discussions)
			if m.ActiveCount() != 1 {
				t.Fatalf("expected one active entry, got %d", m.ActiveCount())
			}

			msgs := [2]tea.Msg{cmds[0](), cmds[1]()}
			for _, i := range order {
				m = update(t, m, msgs[i])
				if m.ActiveCount() != 1 {
					t.Fatalf("expected one active entry, got %d", m.ActiveCount())
				}
			}

			f, ok := m.Content()
			if !ok || f.Section != nav.Discussions {
				t.Errorf("expected discussions to win, got %v", f.Section)
			}
			if active, _ := m.ActiveSection(); active != nav.Discussions {
				t.Errorf("expected discussions active, got %v", active)
			}
		})
	}
}

func TestNavigate_HiddenEntryIgnored(t *testing.T) {
	m := loggedIn(t, "Asha", catalog.RoleCitizen)
	m, cmd := m.Navigate(nav.AdminPanel)
	if cmd != nil {
		t.Error("expected no render for a hidden entry")
	}
	if active, _ := m.ActiveSection(); active != nav.Home {
		t.Errorf("expected home still active, got %v", active)
	}
	if !m.ContentVisible() {
		t.Error("expected content left in place")
	}
}

func TestNavigate_SignedOutIgnored(t *testing.T) {
	m, cmd := newTestModel().Navigate(nav.Home)
	if cmd != nil || m.CurrentView() != ViewLogin {
		t.Error("expected navigate to be ignored on the login view")
	}
}

func TestNavigate_ManagementPanel(t *testing.T) {
	m := loggedIn(t, "Rin", catalog.RoleLegalExpert)
	m, cmd := m.Navigate(nav.ExpertPanel)
	m = update(t, m, cmd())

	f, _ := m.Content()
	if f.Section != nav.ExpertPanel || len(f.Cards) != 2 {
		t.Errorf("expected expert panel with two cards, got %v with %d cards", f.Section, len(f.Cards))
	}
}

func TestNavigate_ManagementFallsBackToHome(t *testing.T) {
	info, _ := catalog.Default().Role(catalog.RoleAdmin)
	info.Features = info.Features[:1]
	roles := map[catalog.Role]catalog.RoleInfo{}
	for _, r := range catalog.AllRoles() {
		ri, _ := catalog.Default().Role(r)
		roles[r] = ri
	}
	roles[catalog.RoleAdmin] = info
	c := catalog.New(roles, catalog.Default().Resources(), catalog.Default().Discussions())

	m, _ := NewModel(c, testConfig()).Login("Ada", "Admin")
	m, cmd := m.Navigate(nav.AdminPanel)
	m = update(t, m, cmd())

	f, _ := m.Content()
	if f.Section != nav.Home {
		t.Errorf("expected home fallback, got %v", f.Section)
	}
	if active, _ := m.ActiveSection(); active != nav.Home || m.ActiveCount() != 1 {
		t.Errorf("expected home to take the active marker, got %v", active)
	}
}

func TestNavigate_SequencesKeepOneActive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		role := rapid.SampledFrom(catalog.AllRoles()).Draw(rt, "role")
		m, _ := newTestModel().Login("Asha", string(role))

		steps := rapid.SliceOfN(rapid.SampledFrom(nav.All()), 1, 12).Draw(rt, "steps")
		var pending []tea.Cmd
		last := nav.Home
		for _, s := range steps {
			var cmd tea.Cmd
			m, cmd = m.Navigate(s)
			if cmd != nil {
				pending = append(pending, cmd)
				last = s
			}
			if m.ActiveCount() != 1 {
				rt.Fatalf("expected one active entry after navigate(%s), got %d", s, m.ActiveCount())
			}
		}
		for _, cmd := range pending {
			next, _ := m.Update(cmd())
			m = next.(Model)
			if m.ActiveCount() != 1 {
				rt.Fatalf("expected one active entry, got %d", m.ActiveCount())
			}
		}
		if f, _ := m.Content(); f.Section != last {
			rt.Fatalf("expected %s displayed, got %s", last, f.Section)
		}
	})
}

func TestUpdate_CompletedFormLogsIn(t *testing.T) {
	m := newTestModel()
	m.login.values.name = "  Asha "
	m.login.values.role = "Citizen"
	m.login.form.State = huh.StateCompleted

	m = update(t, m, nopMsg{})
	if m.CurrentView() != ViewDashboard {
		t.Fatalf("expected dashboard, got %v", m.CurrentView())
	}
	if sess, _ := m.Session(); sess.Name != "Asha" {
		t.Errorf("expected trimmed name, got %q", sess.Name)
	}
}

func TestUpdate_CompletedFormRejectedKeepsValues(t *testing.T) {
	m := newTestModel()
	m.login.values.name = "   "
	m.login.values.role = "Educator"
	m.login.form.State = huh.StateCompleted

	m = update(t, m, nopMsg{})
	if m.CurrentView() != ViewLogin {
		t.Fatalf("expected login view, got %v", m.CurrentView())
	}
	if m.login.State() != huh.StateNormal {
		t.Error("expected a fresh form after a rejected submission")
	}
	if _, role := m.LoginValues(); role != "Educator" {
		t.Errorf("expected role kept, got %q", role)
	}
}

func TestUpdate_AbortedFormResets(t *testing.T) {
	m := newTestModel()
	m.login.values.name = "Asha"
	m.login.form.State = huh.StateAborted

	m = update(t, m, nopMsg{})
	if name, _ := m.LoginValues(); name != "" {
		t.Errorf("expected reset form, got name %q", name)
	}
}

func TestNewModel_DefaultRoleFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.UI.DefaultRole = "legal expert"
	m := NewModel(catalog.Default(), cfg)
	if _, role := m.LoginValues(); role != "LegalExpert" {
		t.Errorf("expected LegalExpert preselected, got %q", role)
	}
}

func TestDashboardKeys_JumpAndEnter(t *testing.T) {
	m := loggedIn(t, "Ada", catalog.RoleAdmin)

	// Visible order for an admin: home, resources, discussions, admin.
	next, cmd := m.Update(keyRunes("4"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected jump to schedule a render")
	}
	m = update(t, m, cmd())
	if f, _ := m.Content(); f.Section != nav.AdminPanel {
		t.Errorf("expected admin panel, got %v", f.Section)
	}

	m = update(t, m, keyRunes("k"))
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	m = update(t, m, cmd())
	if f, _ := m.Content(); f.Section != nav.Discussions {
		t.Errorf("expected discussions after moving up, got %v", f.Section)
	}
}

func TestDashboardKeys_CursorSkipsHidden(t *testing.T) {
	m := loggedIn(t, "Asha", catalog.RoleCitizen)
	for i := 0; i < 10; i++ {
		m = update(t, m, keyRunes("j"))
	}
	if m.entries[m.cursor].section != nav.Discussions {
		t.Errorf("expected cursor clamped at discussions, got %v", m.entries[m.cursor].section)
	}
}

func TestDashboardKeys_Copy(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	m := loggedIn(t, "Asha", catalog.RoleCitizen)
	m = update(t, m, keyRunes("y"))

	f, _ := m.Content()
	if copied != render.Plain(f) {
		t.Errorf("expected plain content copied, got %q", copied)
	}
	if m.statusIsError {
		t.Errorf("unexpected error status %q", m.statusMsg)
	}
}

func TestDashboardKeys_CopyFailure(t *testing.T) {
	orig := writeClipboard
	writeClipboard = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { writeClipboard = orig })

	m := loggedIn(t, "Asha", catalog.RoleCitizen)
	m = update(t, m, keyRunes("y"))
	if !m.statusIsError || !strings.Contains(m.statusMsg, "no clipboard") {
		t.Errorf("expected copy error status, got %q", m.statusMsg)
	}
}

func TestDashboardKeys_Logout(t *testing.T) {
	m := loggedIn(t, "Asha", catalog.RoleCitizen)
	next, cmd := m.Update(keyRunes("L"))
	m = next.(Model)
	if m.CurrentView() != ViewLogin || !m.LoginAnimating() {
		t.Error("expected logout with entry animation")
	}
	if cmd == nil {
		t.Error("expected animation and form init commands")
	}
}

func TestUpdate_StaleAnimationIgnoredAfterLogin(t *testing.T) {
	m := loggedIn(t, "Asha", catalog.RoleCitizen)
	m, anim := m.Logout()
	m, _ = m.Login("Asha", "Citizen")
	m, _ = m.Logout()

	// The first animation task was cancelled by the login in between.
	m = update(t, m, anim())
	if !m.LoginAnimating() {
		t.Error("stale animation task should not end the newer highlight")
	}
}

func TestUpdate_WindowResize(t *testing.T) {
	m := loggedIn(t, "Asha", catalog.RoleCitizen)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if m.width != 80 || m.height != 24 {
		t.Fatalf("expected 80x24, got %dx%d", m.width, m.height)
	}
	if m.renderer.Width() != m.contentWidth() {
		t.Errorf("expected renderer width %d, got %d", m.contentWidth(), m.renderer.Width())
	}
}

func TestUpdate_ConfigChangedReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  transition_delay_ms: 7\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	m := newTestModel()
	m.configPath = path

	m = update(t, m, ConfigChangedMsg{})
	if m.cfg.UI.TransitionDelayMs != 7 {
		t.Errorf("expected reloaded delay 7, got %d", m.cfg.UI.TransitionDelayMs)
	}
	if m.statusIsError {
		t.Errorf("unexpected error %q", m.statusMsg)
	}

	if err := os.WriteFile(path, []byte("ui: [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	m = update(t, m, ConfigChangedMsg{})
	if !m.statusIsError {
		t.Error("expected error status for a broken config")
	}
	if m.cfg.UI.TransitionDelayMs != 7 {
		t.Error("expected previous config kept after a failed reload")
	}
}

func TestView_RendersBothScreens(t *testing.T) {
	m := newTestModel()
	if !strings.Contains(m.View(), "Civic Education Dashboard") {
		t.Error("expected app title on the login screen")
	}
	m, _ = m.Login("", "Citizen")
	if !strings.Contains(m.View(), "Please enter your name.") {
		t.Error("expected inline error on the login screen")
	}

	m = loggedIn(t, "Asha", catalog.RoleCitizen)
	out := m.View()
	for _, want := range []string{"Asha", "Citizen", "Home", "Resources", "Discussions"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in dashboard view", want)
		}
	}
	if strings.Contains(out, "Admin Panel") {
		t.Error("hidden entries should not be drawn")
	}

	m, _ = m.Navigate(nav.Resources)
	if !strings.Contains(m.View(), "Loading") {
		t.Error("expected placeholder while the render is pending")
	}
}
