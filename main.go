// shopfront TUI - a terminal storefront client.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopfront-tui/internal/cli"
	"github.com/jeranaias/shopfront-tui/internal/config"
	"github.com/jeranaias/shopfront-tui/internal/routes"
	"github.com/jeranaias/shopfront-tui/internal/session"
	"github.com/jeranaias/shopfront-tui/internal/ui/components"
	"github.com/jeranaias/shopfront-tui/internal/ui/styles"
	"github.com/jeranaias/shopfront-tui/internal/ui/views"
)

// Version information (set at build time).
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with the cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdLogin:
		cli.HandleLogin(args)
	case cli.CmdLogout:
		cli.HandleLogout(args)
	case cli.CmdWhoami:
		cli.HandleWhoami(args)
	case cli.CmdProducts:
		cli.HandleProducts(args)
	case cli.CmdStatus:
		cli.HandleStatus(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp(args)
	}
}

// =============================================================================
// TUI STARTUP
// =============================================================================

func runTUI(args *cli.Args) {
	cfg := config.Global()

	logger := openLogger(cfg)

	state, err := cli.OpenState(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open state store: %v\n", err)
		os.Exit(1)
	}
	defer state.Close()

	client := cli.NewClient(cfg, state).WithLogger(logger)

	store := session.NewStore(client, session.Config{
		AuthTimeout: time.Duration(cfg.API.AuthTimeoutSecs) * time.Second,
	})
	store.SetLogger(logger)

	guard := routes.NewGuard(nil, state, routes.Config{
		LoginPath:        cfg.Nav.LoginPath,
		LandingPath:      cfg.Nav.LandingPath,
		AdminLandingPath: cfg.Nav.AdminLandingPath,
	})
	guard.SetLogger(logger)

	vctx := &views.Context{
		Theme:    styles.NewTheme(),
		Client:   client,
		Session:  store,
		State:    state,
		Currency: cfg.UI.Currency,
		PageSize: cfg.UI.PageSize,
	}

	// Hot-reload display settings; core routing and the session are not
	// reconfigured mid-run.
	stopWatch, watchErr := config.Watch(func(next *config.Config) {
		config.SetGlobal(next)
		vctx.Currency = next.UI.Currency
		vctx.PageSize = next.UI.PageSize
	})
	if watchErr == nil {
		defer stopWatch()
	}

	model := newAppModel(vctx, guard, store)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openLogger opens the client log file when logging is enabled. Returns nil
// (logging disabled) on any failure; the TUI must start regardless.
func openLogger(cfg *config.Config) *log.Logger {
	if !cfg.Log.Enabled {
		return nil
	}
	path := cfg.Log.Path
	if path == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			return nil
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil
		}
		path = filepath.Join(dir, "client.log")
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil
	}
	return log.New(file, "", log.LstdFlags)
}

// =============================================================================
// ROOT MODEL
// =============================================================================

// appModel is the root Bubble Tea model. It owns the chrome (header, status
// bar, toasts, bootstrap spinner) and the active view; every navigation goes
// through the route guard.
type appModel struct {
	ctx   *views.Context
	guard *routes.Guard
	store *session.Store

	header  components.Header
	spinner components.Spinner
	toasts  *components.ToastManager

	view views.View
	path string

	// pendingPath holds a navigation deferred while the session bootstrap
	// is still resolving.
	pendingPath string

	width  int
	height int
}

func newAppModel(ctx *views.Context, guard *routes.Guard, store *session.Store) *appModel {
	return &appModel{
		ctx:         ctx,
		guard:       guard,
		store:       store,
		header:      components.NewHeader(),
		spinner:     components.NewSessionSpinner(),
		toasts:      components.NewToastManager(),
		pendingPath: routes.PathHome,
	}
}

// Init implements tea.Model.
func (m *appModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Start(),
		m.store.BootstrapCmd(context.Background()),
	)
}

// Update implements tea.Model.
func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ctx.Theme.SetSize(msg.Width, msg.Height)
		m.header.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			if m.store.Snapshot().Phase == session.PhaseAuthenticated {
				return m, m.store.LogoutCmd(context.Background())
			}
			return m, m.navigate(m.guard.LoginPath())
		case "ctrl+g":
			return m, m.navigate(routes.PathHome)
		}

	case views.NavigateMsg:
		return m, m.navigate(msg.Path)

	case views.ToastMsg:
		m.toasts.AddToast(msg.Toast)
		return m, components.ToastTickCmd()

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		if m.toasts.HasToasts() {
			return m, components.ToastTickCmd()
		}
		return m, nil

	case components.ToastDismissMsg:
		m.toasts.RemoveToast(msg.ID)
		return m, nil

	case session.ChangedMsg:
		return m.onSessionChange(msg.State)

	case session.LoginResultMsg:
		var cmds []tea.Cmd
		if m.view != nil {
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			cmds = append(cmds, cmd)
		}
		if msg.State.Phase == session.PhaseAuthenticated {
			cmds = append(cmds, m.navigate(m.guard.PostLoginPath(msg.State)))
		}
		return m, tea.Batch(cmds...)

	case session.LoggedOutMsg:
		m.toasts.AddStatus("Signed out")
		return m, tea.Batch(components.ToastTickCmd(), m.navigate(routes.PathHome))
	}

	if m.spinner.IsActive() {
		if cmd := m.spinner.Update(msg); cmd != nil {
			return m, cmd
		}
	}

	if m.view != nil {
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}
	return m, nil
}

// onSessionChange reacts to a resolved session transition: stop the
// bootstrap spinner, surface errors, and re-evaluate the current target.
func (m *appModel) onSessionChange(st session.State) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if st.InitialCheckDone && m.spinner.IsActive() {
		m.spinner.Stop()
	}
	if st.Err != nil {
		m.toasts.AddToast(components.FromSessionError(*st.Err))
		cmds = append(cmds, components.ToastTickCmd())
	}

	target := m.pendingPath
	if target == "" {
		target = m.path
	}
	if st.Phase == session.PhaseAuthenticated && target == m.guard.LoginPath() {
		target = m.guard.PostLoginPath(st)
	}
	cmds = append(cmds, m.navigate(target))
	return m, tea.Batch(cmds...)
}

// navigate evaluates path through the guard and installs the resulting view.
func (m *appModel) navigate(path string) tea.Cmd {
	decision := m.guard.Evaluate(path, m.store.Snapshot())

	switch decision.Action {
	case routes.ActionSuspend:
		m.pendingPath = path
		return nil

	case routes.ActionRedirectLogin:
		m.toasts.AddStatus("Sign in to continue")
		return tea.Batch(components.ToastTickCmd(), m.navigate(decision.RedirectTo))

	case routes.ActionForbidden:
		m.install(path, views.NewForbidden(m.ctx))
		return m.view.Init()

	case routes.ActionNotFound:
		m.install(path, views.NewNotFound(m.ctx, path))
		return m.view.Init()

	default: // ActionRender
		m.install(path, m.buildView(path, decision.Params))
		return m.view.Init()
	}
}

func (m *appModel) install(path string, v views.View) {
	m.pendingPath = ""
	m.path = path
	m.view = v
	m.header.Title = v.Title()
}

// buildView constructs the view for a render decision.
func (m *appModel) buildView(path string, params map[string]string) views.View {
	switch {
	case path == routes.PathHome:
		return views.NewCatalog(m.ctx)
	case strings.HasPrefix(path, "/products/"):
		return views.NewProductDetail(m.ctx, params["id"])
	case path == routes.PathLogin:
		return views.NewLogin(m.ctx)
	case path == routes.PathRegister:
		return views.NewRegister(m.ctx)
	case path == routes.PathCart:
		return views.NewCart(m.ctx)
	case path == routes.PathCheckout:
		return views.NewCheckout(m.ctx)
	case path == routes.PathProfile:
		return views.NewProfile(m.ctx)
	case path == routes.PathOrders:
		return views.NewOrders(m.ctx)
	case path == routes.PathAdminHome:
		return views.NewAdminDashboard(m.ctx)
	case path == routes.PathAdminUsers:
		return views.NewAdminUsers(m.ctx)
	case path == routes.PathAdminCatalog:
		return views.NewAdminProducts(m.ctx)
	case path == "/admin/addproducts":
		return views.NewAdminProductForm(m.ctx, "")
	case strings.HasPrefix(path, "/admin/editproducts/"):
		return views.NewAdminProductForm(m.ctx, params["id"])
	case path == "/admin/orders":
		return views.NewAdminOrders(m.ctx)
	default:
		return views.NewNotFound(m.ctx, path)
	}
}

// View implements tea.Model.
func (m *appModel) View() string {
	if m.width == 0 {
		return ""
	}
	theme := m.ctx.Theme
	st := m.store.Snapshot()

	header := m.header.View(theme, st)
	status := m.statusBar(st).View(theme)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(status)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if m.view == nil {
		body = m.spinner.View(theme)
	} else {
		body = m.view.View(m.width, bodyHeight)
	}

	if m.toasts.HasToasts() {
		stack := components.RenderToastStack(m.toasts.GetToasts(), m.width, 0)
		body = lipgloss.JoinVertical(lipgloss.Left, body,
			lipgloss.PlaceHorizontal(m.width, lipgloss.Right, stack))
	}

	body = theme.Container.
		Width(m.width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

// statusBar builds the bottom bar for the current session state.
func (m *appModel) statusBar(st session.State) components.StatusBar {
	shortcuts := []components.Shortcut{{Key: "^c", Desc: "quit"}}
	if st.Phase == session.PhaseAuthenticated {
		shortcuts = append(shortcuts, components.Shortcut{Key: "^l", Desc: "sign out"})
	} else {
		shortcuts = append(shortcuts, components.Shortcut{Key: "^l", Desc: "sign in"})
	}
	shortcuts = append(shortcuts, components.Shortcut{Key: "^g", Desc: "catalog"})

	return components.StatusBar{
		Width:     m.width,
		Shortcuts: shortcuts,
		Note:      m.path,
	}
}
