package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/vanderheijden86/civicdash/pkg/catalog"
	"github.com/vanderheijden86/civicdash/pkg/session"
)

// loginValues is heap-allocated so the huh fields keep pointing at it
// while the Model is copied through Update.
type loginValues struct {
	name string
	role string
}

// LoginForm wraps the huh form used to sign in.
type LoginForm struct {
	form   *huh.Form
	values *loginValues
}

var errChooseRole = errors.New("choose a role")

// newLoginForm builds a fresh form. name and role seed the fields; pass
// empty strings for a reset form.
func newLoginForm(c *catalog.Catalog, name, role string, width int) LoginForm {
	v := &loginValues{name: name, role: role}

	opts := []huh.Option[string]{huh.NewOption("Select your role…", "")}
	for _, r := range c.Roles() {
		info, _ := c.Role(r)
		opts = append(opts, huh.NewOption(info.Icon+"  "+r.Label(), string(r)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Your name").
				Placeholder("e.g. Asha").
				CharLimit(64).
				Value(&v.name).
				Validate(session.ValidateName),
			huh.NewSelect[string]().
				Key("role").
				Title("I am joining as").
				Options(opts...).
				Value(&v.role).
				Validate(func(s string) error {
					if s == "" {
						return errChooseRole
					}
					return nil
				}),
		),
	).
		WithTheme(huh.ThemeDracula()).
		WithShowHelp(true).
		WithWidth(width)

	return LoginForm{form: form, values: v}
}

// Init starts the form's cursor and focus.
func (f LoginForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update forwards msg to the form.
func (f LoginForm) Update(msg tea.Msg) (LoginForm, tea.Cmd) {
	model, cmd := f.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		f.form = form
	}
	return f, cmd
}

// State reports whether the form is still being filled in.
func (f LoginForm) State() huh.FormState {
	return f.form.State
}

// Values returns the raw field values.
func (f LoginForm) Values() (name, role string) {
	return f.values.name, f.values.role
}

func (f LoginForm) View() string {
	return f.form.View()
}
