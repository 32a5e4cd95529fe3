package ui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/civicdash/pkg/catalog"
	"github.com/vanderheijden86/civicdash/pkg/config"
	"github.com/vanderheijden86/civicdash/pkg/debug"
	"github.com/vanderheijden86/civicdash/pkg/metrics"
	"github.com/vanderheijden86/civicdash/pkg/nav"
	"github.com/vanderheijden86/civicdash/pkg/render"
	"github.com/vanderheijden86/civicdash/pkg/session"
	"github.com/vanderheijden86/civicdash/pkg/watcher"
)

const appTitle = "🏛️  Civic Education Dashboard"

// View is the top-level screen.
type View int

const (
	ViewLogin View = iota
	ViewDashboard
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewDashboard:
		return "dashboard"
	}
	return "unknown"
}

// ConfigChangedMsg is sent when the watched config file changes on disk.
type ConfigChangedMsg struct{}

// WatchConfigCmd waits for the next config change.
func WatchConfigCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return ConfigChangedMsg{}
	}
}

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

type navEntry struct {
	section nav.Section
	visible bool
	active  bool
}

// Profile is the signed-in user summary shown in the header.
type Profile struct {
	Name      string
	RoleLabel string
	Icon      string
	Role      catalog.Role
}

// contentRegion is the single display area. Every render replaces it whole.
type contentRegion struct {
	fragment render.Fragment
	filled   bool
	visible  bool // false while a deferred render is pending
}

// Model is the dashboard controller.
type Model struct {
	catalog *catalog.Catalog
	state   *session.State
	cfg     config.Config

	theme Theme
	keys  dashboardKeys
	help  help.Model

	view           View
	login          LoginForm
	loginErr       string
	loginAnimating bool

	profile Profile
	entries []navEntry
	cursor  int

	content  contentRegion
	viewport viewport.Model
	renderer *ContentRenderer
	tasks    taskQueue

	width  int
	height int

	statusMsg     string
	statusIsError bool

	watcher    *watcher.Watcher
	configPath string
}

// NewModel returns a signed-out model on the login view.
func NewModel(c *catalog.Catalog, cfg config.Config) Model {
	theme := DefaultTheme(lipgloss.DefaultRenderer())

	entries := make([]navEntry, 0, len(nav.All()))
	for _, s := range nav.All() {
		// Restricted entries stay hidden until a login reveals one.
		entries = append(entries, navEntry{section: s, visible: !s.IsManagement()})
	}

	h := help.New()
	h.Styles.ShortKey = theme.Bold
	h.Styles.ShortDesc = theme.MutedText
	h.Styles.FullKey = theme.Bold
	h.Styles.FullDesc = theme.MutedText

	m := Model{
		catalog: c,
		state:   session.NewState(c),
		cfg:     cfg,
		theme:   theme,
		keys:    defaultKeys(),
		help:    h,
		view:    ViewLogin,
		login:   newLoginForm(c, "", defaultRoleKey(cfg), loginFormWidth),
		entries: entries,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.viewport = viewport.New(m.contentWidth(), m.bodyHeight())
	m.renderer = NewContentRenderer(theme, m.contentWidth())
	return m
}

// WithConfigWatcher enables live reload of the config file at path.
func (m Model) WithConfigWatcher(w *watcher.Watcher, path string) Model {
	m.watcher = w
	m.configPath = path
	return m
}

func defaultRoleKey(cfg config.Config) string {
	if r, ok := catalog.ParseRole(cfg.UI.DefaultRole); ok {
		return string(r)
	}
	return ""
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.login.Init()}
	if m.watcher != nil {
		cmds = append(cmds, WatchConfigCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Login signs in and switches to the dashboard with Home rendered. A failed
// guard leaves the session and view untouched and only sets the inline
// error line.
func (m Model) Login(name, roleKey string) (Model, tea.Cmd) {
	sess, err := m.state.Login(name, roleKey)
	if err != nil {
		m.loginErr = loginErrorText(err)
		debug.Log("login rejected: %v", err)
		return m, nil
	}

	info, _ := m.catalog.Role(sess.Role)
	m.profile = Profile{
		Name:      sess.Name,
		RoleLabel: sess.Role.Label(),
		Icon:      info.Icon,
		Role:      sess.Role,
	}
	m.loginErr = ""
	m.loginAnimating = false
	m.tasks.cancelAll()
	m.entries = slices.Clone(m.entries)

	// Visibility is recomputed in full so nothing leaks from a prior session.
	restricted, hasRestricted := nav.RestrictedFor(sess.Role)
	for i := range m.entries {
		s := m.entries[i].section
		if s.IsManagement() {
			m.entries[i].visible = hasRestricted && s == restricted
		}
	}

	m.view = ViewDashboard
	m.setActive(nav.Home)
	m.cursor, _ = m.entryIndex(nav.Home)
	if f, ok := render.Home(m.catalog, sess.Role); ok {
		m = m.show(f)
	}
	m.statusMsg = fmt.Sprintf("Welcome, %s", sess.Name)
	m.statusIsError = false

	debug.With("login", "session", sess.ID.String(), "role", string(sess.Role))
	return m, nil
}

func loginErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, session.ErrEmptyName):
		return "Please enter your name."
	case errors.Is(err, session.ErrUnknownRole):
		return "Please choose a role."
	}
	return err.Error()
}

// Logout clears the session and returns to a fresh login form. The returned
// command ends the login panel highlight.
func (m Model) Logout() (Model, tea.Cmd) {
	if m.view != ViewDashboard {
		return m, nil
	}
	if sess, ok := m.state.Logout(); ok {
		debug.With("logout", "session", sess.ID.String())
	}

	m.tasks.cancel(taskRender)
	m.profile = Profile{}
	m.content = contentRegion{}
	m.viewport.SetContent("")
	m.statusMsg = ""
	m.statusIsError = false

	m.login = newLoginForm(m.catalog, "", defaultRoleKey(m.cfg), loginFormWidth)
	m.loginErr = ""
	m.view = ViewLogin
	m.loginAnimating = true

	tok := m.tasks.schedule(taskEntryAnimation)
	return m, deferCmd(m.cfg.EntryAnimation(), deferredMsg{kind: taskEntryAnimation, token: tok})
}

// Navigate marks s active and schedules its render after the transition
// delay. Any render still pending is superseded. Hidden entries and the
// login view ignore it.
func (m Model) Navigate(s nav.Section) (Model, tea.Cmd) {
	if m.view != ViewDashboard || !m.state.LoggedIn() {
		return m, nil
	}
	i, ok := m.entryIndex(s)
	if !ok || !m.entries[i].visible {
		return m, nil
	}

	m.entries = slices.Clone(m.entries)
	m.setActive(s)
	m.cursor = i
	m.content.visible = false

	tok := m.tasks.schedule(taskRender)
	debug.Log("navigate %s (task %d)", s, tok)
	return m, deferCmd(m.cfg.TransitionDelay(), deferredMsg{kind: taskRender, token: tok, section: s})
}

// dispatch renders s for the current session. Management sections that
// cannot be built fall back to Home and Home takes the active marker.
func (m Model) dispatch(s nav.Section) Model {
	sess, ok := m.state.Current()
	if !ok {
		return m
	}
	f, ok := render.Section(m.catalog, s, sess.Role)
	if !ok {
		m.content.visible = m.content.filled
		return m
	}
	if f.Section != s {
		debug.Warn("section %s unavailable, showing %s", s, f.Section)
		m.entries = slices.Clone(m.entries)
		m.setActive(f.Section)
		if i, ok := m.entryIndex(f.Section); ok {
			m.cursor = i
		}
	}
	return m.show(f)
}

func (m Model) show(f render.Fragment) Model {
	m.content = contentRegion{fragment: f, filled: true, visible: true}
	m.viewport.SetContent(m.renderer.Render(f))
	m.viewport.GotoTop()
	return m
}

// setActive marks s active and every other entry inactive. Callers clone
// entries first so earlier Model values keep their markers.
func (m Model) setActive(s nav.Section) {
	for i := range m.entries {
		m.entries[i].active = m.entries[i].section == s
	}
}

func (m Model) entryIndex(s nav.Section) (int, bool) {
	for i, e := range m.entries {
		if e.section == s {
			return i, true
		}
	}
	return 0, false
}

// visibleIndexes lists entry indexes in sidebar order, skipping hidden ones.
func (m Model) visibleIndexes() []int {
	var out []int
	for i, e := range m.entries {
		if e.visible {
			out = append(out, i)
		}
	}
	return out
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.resize(), nil

	case deferredMsg:
		if !m.tasks.accept(msg.kind, msg.token) {
			debug.Log("dropping stale %s task %d", msg.kind, msg.token)
			return m, nil
		}
		switch msg.kind {
		case taskRender:
			m = m.dispatch(msg.section)
		case taskEntryAnimation:
			m.loginAnimating = false
		}
		return m, nil

	case ConfigChangedMsg:
		m = m.reloadConfig()
		if m.watcher != nil {
			return m, WatchConfigCmd(m.watcher)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view == ViewDashboard {
			return m.handleDashboardKey(msg)
		}
	}

	if m.view == ViewLogin {
		return m.updateLogin(msg)
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)

	switch m.login.State() {
	case huh.StateCompleted:
		name, role := m.login.Values()
		m, _ = m.Login(name, role)
		if m.view == ViewLogin {
			m.login = newLoginForm(m.catalog, name, role, loginFormWidth)
			return m, m.login.Init()
		}
		return m, nil
	case huh.StateAborted:
		m.login = newLoginForm(m.catalog, "", defaultRoleKey(m.cfg), loginFormWidth)
		return m, m.login.Init()
	}
	return m, cmd
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleIndexes()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursor = stepCursor(visible, m.cursor, -1)

	case key.Matches(msg, m.keys.Down):
		m.cursor = stepCursor(visible, m.cursor, 1)

	case key.Matches(msg, m.keys.Enter):
		if m.cursor >= 0 && m.cursor < len(m.entries) {
			return m.Navigate(m.entries[m.cursor].section)
		}

	case key.Matches(msg, m.keys.Jump):
		n := int(msg.String()[0] - '1')
		if n >= 0 && n < len(visible) {
			return m.Navigate(m.entries[visible[n]].section)
		}

	case key.Matches(msg, m.keys.Copy):
		m = m.copyContent()

	case key.Matches(msg, m.keys.Logout):
		var cmd tea.Cmd
		m, cmd = m.Logout()
		return m, tea.Batch(cmd, m.login.Init())

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.resize(), nil

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// stepCursor moves cur by delta among the visible indexes, clamping at
// both ends.
func stepCursor(visible []int, cur, delta int) int {
	if len(visible) == 0 {
		return cur
	}
	pos := 0
	for i, idx := range visible {
		if idx == cur {
			pos = i
			break
		}
	}
	pos += delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(visible) {
		pos = len(visible) - 1
	}
	return visible[pos]
}

func (m Model) copyContent() Model {
	if !m.content.filled || !m.content.visible {
		m.statusMsg = "Nothing to copy yet"
		m.statusIsError = true
		return m
	}
	if err := writeClipboard(render.Plain(m.content.fragment)); err != nil {
		m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
		m.statusIsError = true
		return m
	}
	m.statusMsg = fmt.Sprintf("Copied %s to clipboard", m.content.fragment.Tag)
	m.statusIsError = false
	return m
}

func (m Model) reloadConfig() Model {
	if m.configPath == "" {
		return m
	}
	cfg, err := config.LoadFrom(m.configPath)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Config reload failed: %v", err)
		m.statusIsError = true
		debug.Warn("config reload: %v", err)
		return m
	}
	m.cfg = cfg
	m.statusMsg = "Config reloaded"
	m.statusIsError = false
	debug.Log("config reloaded from %s", m.configPath)
	return m.resize()
}

// resize recomputes the viewport and rebuilds the renderer for the new
// content width.
func (m Model) resize() Model {
	w := m.contentWidth()
	m.viewport.Width = w
	m.viewport.Height = m.bodyHeight()
	if m.renderer == nil || m.renderer.Width() != w {
		m.renderer = NewContentRenderer(m.theme, w)
	}
	if m.content.filled {
		m.viewport.SetContent(m.renderer.Render(m.content.fragment))
	}
	m.help.Width = m.width
	return m
}

func (m Model) contentWidth() int {
	w := m.width - sidebarWidth - 4
	if m.cfg.UI.ContentWidth > 0 && m.cfg.UI.ContentWidth < w {
		w = m.cfg.UI.ContentWidth
	}
	if w < minPanelWidth {
		w = minPanelWidth
	}
	return w
}

func (m Model) bodyHeight() int {
	footer := 1
	if m.help.ShowAll {
		footer = 4
	}
	h := m.height - 3 - footer // header, divider, status
	if h < 3 {
		h = 3
	}
	return h
}

// View implements tea.Model.
func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	if m.view == ViewLogin {
		return m.loginView()
	}
	return m.dashboardView()
}

func (m Model) loginView() string {
	t := m.theme
	panel := t.LoginPanel
	if m.loginAnimating {
		panel = t.LoginPanelEntry
	}

	var b strings.Builder
	b.WriteString(t.Heading.Render(appTitle))
	b.WriteString("\n")
	b.WriteString(t.MutedText.Render("Sign in to explore your civic role."))
	b.WriteString("\n\n")
	b.WriteString(m.login.View())
	if m.loginErr != "" {
		b.WriteString("\n")
		b.WriteString(t.ErrorText.Render("✗ " + m.loginErr))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		panel.Render(b.String()))
}

func (m Model) dashboardView() string {
	t := m.theme

	badge := t.Renderer.NewStyle().
		Foreground(t.RoleColor(m.profile.Role)).
		Bold(true).
		Render(m.profile.Icon + " " + m.profile.RoleLabel)
	title := t.Header.Render(appTitle)
	user := t.Bold.Render(m.profile.Name) + "  " + badge
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(user)
	if gap < 1 {
		gap = 1
	}
	header := title + strings.Repeat(" ", gap) + user

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), " ", m.contentView())

	var footer string
	if m.statusMsg != "" {
		style := t.StatusText
		if m.statusIsError {
			style = t.ErrorText
		}
		footer = style.Render(m.statusMsg) + "  "
	}
	footer += m.help.View(m.keys)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		RenderDivider(m.width),
		body,
		footer,
	)
}

func (m Model) sidebarView() string {
	t := m.theme
	var lines []string
	lines = append(lines, t.PanelTitle.Render("Navigate"), "")
	for n, idx := range m.visibleIndexes() {
		e := m.entries[idx]
		num := t.Renderer.NewStyle().Foreground(ThemeFg("#6272A4")).Render(fmt.Sprintf("%d", n+1))
		label := truncateRunesHelper(e.section.Title(), sidebarWidth-8, "…")
		marker := "  "
		if idx == m.cursor {
			marker = "› "
		}
		style := t.NavItem
		if e.active {
			style = t.NavActive
		}
		lines = append(lines, marker+num+" "+style.Render(padRight(label, sidebarWidth-8)))
	}
	return FocusedPanelStyle.
		Width(sidebarWidth).
		Height(m.bodyHeight()).
		Render(strings.Join(lines, "\n"))
}

func (m Model) contentView() string {
	if !m.content.visible {
		placeholder := m.theme.MutedText.Render("Loading…")
		return PanelStyle.Width(m.contentWidth()).Height(m.bodyHeight()).Render(placeholder)
	}
	return PanelStyle.Render(m.viewport.View())
}

// CurrentView returns the visible screen.
func (m Model) CurrentView() View { return m.view }

// Session returns the current session, if any.
func (m Model) Session() (session.Session, bool) { return m.state.Current() }

// Profile returns the header summary. It is zero when signed out.
func (m Model) Profile() Profile { return m.profile }

// ActiveSection returns the first entry marked active.
func (m Model) ActiveSection() (nav.Section, bool) {
	for _, e := range m.entries {
		if e.active {
			return e.section, true
		}
	}
	return 0, false
}

// ActiveCount returns how many entries carry the active marker.
func (m Model) ActiveCount() int {
	n := 0
	for _, e := range m.entries {
		if e.active {
			n++
		}
	}
	return n
}

// EntryVisible reports whether s is shown in the sidebar.
func (m Model) EntryVisible(s nav.Section) bool {
	i, ok := m.entryIndex(s)
	return ok && m.entries[i].visible
}

// ContentVisible reports whether the display region shows content, as
// opposed to waiting on a deferred render.
func (m Model) ContentVisible() bool { return m.content.visible }

// Content returns the fragment last rendered into the display region.
func (m Model) Content() (render.Fragment, bool) {
	return m.content.fragment, m.content.filled
}

// LoginAnimating reports whether the login panel entry highlight is on.
func (m Model) LoginAnimating() bool { return m.loginAnimating }

// LoginError returns the inline login error line.
func (m Model) LoginError() string { return m.loginErr }

// LoginValues returns the current login form values.
func (m Model) LoginValues() (name, role string) { return m.login.Values() }
