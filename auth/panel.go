package auth

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	nt "portal/entity"
	"portal/form"
	"portal/style"
)

var roles = []nt.Role{nt.Admin, nt.Brand}

var roleLabels = map[nt.Role]string{
	nt.Admin: "Admin",
	nt.Brand: "Brand",
}

var roleBlurbs = map[nt.Role]string{
	nt.Admin: "Admin portal for system management",
	nt.Brand: "Brand portal for managing your brand",
}

// Panel is the login card.
type Panel struct {
	role    nt.Role
	form    form.Form
	loading bool
	err     error

	authn   Authenticator
	timeout time.Duration
	width   int
	height  int

	ctx    context.Context
	logger nt.Logger
}

// New creates a login panel on the admin tab.
// A zero timeout leaves the login unbounded apart from ctx.
func New(ctx context.Context, authn Authenticator, timeout time.Duration, lgr nt.Logger) Panel {

	return Panel{
		role:    nt.Admin,
		form:    newForm(),
		authn:   authn,
		timeout: timeout,
		ctx:     ctx,
		logger:  lgr,
	}
}

func newForm() form.Form {
	return form.New([]nt.Field{
		{Key: "email", Label: "Email", Kind: nt.TextInput},
		{Key: "password", Label: "Password", Kind: nt.PasswordInput},
	}, nil)
}

// Role returns the selected tab.
func (pnl Panel) Role() nt.Role {
	return pnl.role
}

// Loading reports whether a login is in flight.
func (pnl Panel) Loading() bool {
	return pnl.loading
}

// Err returns the message shown under the form, if any.
func (pnl Panel) Err() error {
	return pnl.err
}

func (pnl Panel) Update(msg tea.Msg) (Panel, tea.Cmd) {

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height

	case LoggedInMsg:
		pnl.loading = false

	case failedMsg:
		pnl.logger.Error(pnl.ctx, "login failed", msg.err, "role", string(pnl.role))
		pnl.loading = false
		pnl.err = msg.err

	case tea.KeyPressMsg:
		return pnl.Key(msg.String())
	}

	return pnl, nil
}

// Key handles a key press; everything is ignored while signing in.
func (pnl Panel) Key(key string) (Panel, tea.Cmd) {

	if pnl.loading {
		return pnl, nil
	}

	switch key {
	case "ctrl+t":
		return pnl.SwitchRole(), nil
	case "enter":
		return pnl.Submit()
	}

	pnl.form = pnl.form.Key(key)
	return pnl, nil
}

// SwitchRole moves to the other tab, clearing fields and error.
func (pnl Panel) SwitchRole() Panel {

	next := nt.Admin
	if pnl.role == nt.Admin {
		next = nt.Brand
	}

	pnl.role = next
	pnl.form = newForm()
	pnl.err = nil
	return pnl
}

// Submit validates and starts a login.
func (pnl Panel) Submit() (Panel, tea.Cmd) {

	if pnl.loading {
		return pnl, nil
	}

	email := pnl.form.Raw("email")
	password := pnl.form.Raw("password")
	if email == "" || password == "" {
		pnl.err = ErrMissing
		return pnl, nil
	}

	pnl.err = nil
	pnl.loading = true
	pnl.logger.Info(pnl.ctx, "signing in", "email", email, "role", string(pnl.role))

	return pnl, pnl.login(pnl.role, email, password)
}

func (pnl Panel) login(role nt.Role, email, password string) tea.Cmd {

	return func() tea.Msg {

		ctx := pnl.ctx
		if pnl.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, pnl.timeout)
			defer cancel()
		}

		user, err := pnl.authn.Login(ctx, role, email, password)
		if err != nil {
			return failedMsg{err: err}
		}
		return LoggedInMsg{User: user}
	}
}

func (pnl Panel) Render() string {

	var tabs []string
	for _, role := range roles {
		label := " " + roleLabels[role] + " "
		if role == pnl.role {
			tabs = append(tabs, style.ActiveStyle.Reverse(true).Render(label))
			continue
		}
		tabs = append(tabs, style.MutedStyle.Render(label))
	}

	button := "[ Sign In as " + roleLabels[pnl.role] + " ]"
	if pnl.loading {
		button = style.MutedStyle.Render("Signing in...")
	}

	sections := []string{
		style.TitleStyle.Render("Portal Login"),
		style.MutedStyle.Render("Sign in to access your dashboard"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
		pnl.form.Render(),
	}
	if pnl.err != nil {
		sections = append(sections, "", style.ErrorStyle.Render(pnl.err.Error()))
	}
	sections = append(sections,
		"",
		button,
		"",
		style.MutedStyle.Render(roleBlurbs[pnl.role]),
		style.MutedStyle.Render("Tab: next field  Ctrl+T: switch portal  Enter: sign in"),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return style.Dialog(style.DialogStyle, content, pnl.width, pnl.height)
}
