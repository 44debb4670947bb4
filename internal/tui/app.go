// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Binds screens to router locations and reacts to session and navigation events

package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Depaula010/meusecretariofront/internal/client"
	"github.com/Depaula010/meusecretariofront/internal/router"
	"github.com/Depaula010/meusecretariofront/internal/session"
	"github.com/Depaula010/meusecretariofront/internal/tui/authform"
	"github.com/Depaula010/meusecretariofront/internal/tui/comparison"
	"github.com/Depaula010/meusecretariofront/internal/tui/dashboard"
	"github.com/Depaula010/meusecretariofront/internal/tui/icons"
	"github.com/Depaula010/meusecretariofront/internal/tui/ledger"
	"github.com/Depaula010/meusecretariofront/internal/tui/menu"
	"github.com/Depaula010/meusecretariofront/internal/tui/settings"
	"github.com/Depaula010/meusecretariofront/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenDashboard
	ScreenTransactions
	ScreenAccounts
	ScreenSettings
	ScreenSubscription
	ScreenNotFound
)

var screensByPath = map[string]Screen{
	router.PathLogin:        ScreenLogin,
	router.PathRegister:     ScreenRegister,
	router.PathDashboard:    ScreenDashboard,
	router.PathTransactions: ScreenTransactions,
	router.PathAccounts:     ScreenAccounts,
	router.PathSettings:     ScreenSettings,
	router.PathSubscription: ScreenSubscription,
	router.PathNotFound:     ScreenNotFound,
}

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
	pageSize         = 20
)

// MsgSessionExpired is shown on the login screen after a 401
const MsgSessionExpired = "Your session expired. Log in again to continue."

// API is the part of the client the screens use
type API interface {
	LoadDashboard(ctx context.Context) *client.Dashboard
	ListTransactions(ctx context.Context, f client.TransactionFilters) (*client.TransactionPage, error)
	DeleteTransaction(ctx context.Context, id int64) error
	ListAccounts(ctx context.Context) ([]client.BankAccount, error)
	DeleteAccount(ctx context.Context, id int64) error
	LoadSettings(ctx context.Context, userID string) (*client.UserSettings, error)
	UpdateNotifications(ctx context.Context, userID string, cfg client.NotificationConfig) error
}

// Authenticator runs the login, register, and logout flows
type Authenticator interface {
	Login(ctx context.Context, req client.LoginRequest, returnURL string) (*session.Profile, error)
	Register(ctx context.Context, req client.RegisterRequest) (*session.Profile, error)
	Logout()
}

// Sessions reports the stored profile and session transitions
type Sessions interface {
	Profile() (*session.Profile, bool)
	Subscribe() (<-chan session.State, func())
}

// Navigator is the router as seen by the TUI
type Navigator interface {
	Go(target string) router.Decision
	Current() router.Location
	Subscribe() (<-chan router.Location, func())
}

// Options wires the TUI to the rest of the application
type Options struct {
	API      API
	Auth     Authenticator
	Sessions Sessions
	Nav      Navigator
}

// locationMsg is sent when the router commits a location
type locationMsg struct {
	loc router.Location
}

// sessionMsg is sent on a session transition
type sessionMsg struct {
	state session.State
}

// authDoneMsg is sent when a login or register call returns
type authDoneMsg struct {
	err error
}

type dashboardLoadedMsg struct {
	data *client.Dashboard
}

type transactionsLoadedMsg struct {
	page *client.TransactionPage
	err  error
}

type accountsLoadedMsg struct {
	accounts []client.BankAccount
	err      error
}

type settingsLoadedMsg struct {
	settings *client.UserSettings
	err      error
}

type settingsSavedMsg struct {
	err error
}

type deletedMsg struct {
	kind ledger.Kind
	err  error
}

// App is the root model for the TUI
type App struct {
	ctx        context.Context
	api        API
	auth       Authenticator
	sessions   Sessions
	nav        Navigator
	screen     Screen
	loc        router.Location
	width      int
	height     int
	err        error
	lastUpdate time.Time
	profile    *session.Profile
	notice     string
	loggingOut bool
	offset     int
	loading    bool
	spinner    spinner.Model

	locations   <-chan router.Location
	states      <-chan session.State
	unsubscribe []func()

	// Child models
	menu      *menu.Menu
	login     *authform.Login
	register  *authform.Register
	dashboard *dashboard.Dashboard
	data      *client.Dashboard
	compView  *comparison.Comparison
	ledger    *ledger.Ledger
	settings  *settings.View
}

// New creates the TUI application and subscribes to navigation and
// session events. Close releases the subscriptions.
func New(ctx context.Context, opts Options) *App {
	a := &App{
		ctx:      ctx,
		api:      opts.API,
		auth:     opts.Auth,
		sessions: opts.Sessions,
		nav:      opts.Nav,
		screen:   ScreenLogin,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Subtitle)),
	}
	if a.nav != nil {
		ch, cancel := a.nav.Subscribe()
		a.locations = ch
		a.unsubscribe = append(a.unsubscribe, cancel)
	}
	if a.sessions != nil {
		ch, cancel := a.sessions.Subscribe()
		a.states = ch
		a.unsubscribe = append(a.unsubscribe, cancel)
		a.profile, _ = a.sessions.Profile()
	}
	return a
}

// Close releases the event subscriptions
func (a *App) Close() {
	for _, cancel := range a.unsubscribe {
		cancel()
	}
}

// Init implements tea.Model. The first navigation goes through the guards,
// so a stored session opens the dashboard and no session opens login.
func (a *App) Init() tea.Cmd {
	if a.nav != nil {
		a.nav.Go(a.nav.Current().String())
	}
	return tea.Batch(waitForLocation(a.locations), waitForSession(a.states))
}

func waitForLocation(ch <-chan router.Location) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		loc, ok := <-ch
		if !ok {
			return nil
		}
		return locationMsg{loc: loc}
	}
}

func waitForSession(ch <-chan session.State) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return sessionMsg{state: st}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		var cmds []tea.Cmd
		if a.login != nil {
			_, cmd := a.login.Update(msg)
			cmds = append(cmds, cmd)
		}
		if a.register != nil {
			_, cmd := a.register.Update(msg)
			cmds = append(cmds, cmd)
		}
		if a.menu != nil {
			_, cmd := a.menu.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.menu != nil {
			return a.updateChild(msg)
		}
		return a.updateKey(msg)

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case locationMsg:
		cmd := a.enter(msg.loc)
		return a, tea.Batch(cmd, waitForLocation(a.locations))

	case sessionMsg:
		a.handleSession(msg.state)
		return a, waitForSession(a.states)

	case menu.SelectedMsg:
		a.menu = nil
		a.nav.Go(msg.Path)
		return a, nil

	case menu.LogoutMsg:
		a.menu = nil
		a.loggingOut = true
		a.auth.Logout()
		return a, nil

	case menu.QuitMsg:
		return a, tea.Quit

	case menu.CancelledMsg:
		a.menu = nil
		return a, nil

	case authform.LoginSubmittedMsg:
		return a, a.submitLogin(msg.Request)

	case authform.RegisterSubmittedMsg:
		return a, a.submitRegister(msg.Request)

	case authform.SwitchToRegisterMsg:
		a.nav.Go(router.PathRegister)
		return a, nil

	case authform.CancelledMsg:
		a.nav.Go(router.PathLogin)
		return a, nil

	case authDoneMsg:
		// Success navigates through the router; only failures land here
		if msg.err == nil {
			return a, nil
		}
		if a.login != nil && a.screen == ScreenLogin {
			return a, a.login.Fail(msg.err)
		}
		if a.register != nil && a.screen == ScreenRegister {
			return a, a.register.Fail(msg.err)
		}
		return a, nil

	case dashboardLoadedMsg:
		a.loading = false
		if a.screen != ScreenDashboard {
			return a, nil
		}
		a.data = msg.data
		a.err = nil
		a.lastUpdate = time.Now()
		a.dashboard = dashboard.New(msg.data, a.dashboardWidth(), a.contentHeight())
		if msg.data.Charts != nil {
			a.compView = comparison.New(&msg.data.Charts.ReceitasDespesas, a.comparisonWidth())
		} else {
			a.compView = nil
		}
		return a, nil

	case transactionsLoadedMsg:
		a.loading = false
		if a.screen != ScreenTransactions {
			return a, nil
		}
		return a, a.showLedger(ledger.NewTransactions(msg.page), msg.err)

	case accountsLoadedMsg:
		a.loading = false
		if a.screen != ScreenAccounts {
			return a, nil
		}
		return a, a.showLedger(ledger.NewAccounts(msg.accounts), msg.err)

	case settingsLoadedMsg:
		a.loading = false
		if a.screen != ScreenSettings {
			return a, nil
		}
		a.err = msg.err
		if msg.err == nil {
			a.lastUpdate = time.Now()
			a.settings = settings.New(msg.settings, a.fullWidth())
		}
		return a, nil

	case settingsSavedMsg:
		if a.settings != nil {
			a.settings.Saved(nil, msg.err)
		}
		return a, nil

	case settings.NotificationsChangedMsg:
		return a, a.saveNotifications(msg.Config)

	case ledger.DeleteRequestedMsg:
		return a, a.deleteEntry(msg.Kind, msg.ID)

	case ledger.RefreshRequestedMsg:
		return a, a.load()

	case ledger.PageRequestedMsg:
		a.offset = msg.Offset
		return a, a.loadTransactions()

	case deletedMsg:
		if msg.err != nil {
			if a.ledger != nil {
				a.ledger.SetError(msg.err.Error())
			}
			return a, nil
		}
		return a, a.load()

	default:
		// Forward unknown messages to the active child (needed for huh and textinput internals)
		return a.updateChild(msg)
	}
}

// updateKey handles keys outside the menu
func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenLogin, ScreenRegister:
		return a.updateChild(msg)
	case ScreenTransactions, ScreenAccounts:
		if a.ledger != nil && a.ledger.CapturesKeys() {
			return a.updateChild(msg)
		}
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "m":
		a.menu = menu.New(a.loc.Path)
		return a, a.menu.Init()
	case "r":
		if a.screen == ScreenDashboard || a.screen == ScreenSettings {
			return a, a.load()
		}
	case "b", "esc":
		if a.screen == ScreenNotFound || a.screen == ScreenSubscription {
			a.nav.Go(router.PathDashboard)
			return a, nil
		}
	}
	return a.updateChild(msg)
}

// updateChild forwards msg to the model that owns the current screen
func (a *App) updateChild(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case a.menu != nil:
		_, cmd = a.menu.Update(msg)
	case a.screen == ScreenLogin && a.login != nil:
		_, cmd = a.login.Update(msg)
	case a.screen == ScreenRegister && a.register != nil:
		_, cmd = a.register.Update(msg)
	case (a.screen == ScreenTransactions || a.screen == ScreenAccounts) && a.ledger != nil:
		_, cmd = a.ledger.Update(msg)
	case a.screen == ScreenSettings && a.settings != nil:
		_, cmd = a.settings.Update(msg)
	}
	return a, cmd
}

// enter switches to the screen bound to loc and starts its data load
func (a *App) enter(loc router.Location) tea.Cmd {
	screen, ok := screensByPath[loc.Path]
	if !ok {
		screen = ScreenNotFound
	}

	a.loc = loc
	a.screen = screen
	a.err = nil
	a.menu = nil
	if a.sessions != nil {
		a.profile, _ = a.sessions.Profile()
	}

	switch screen {
	case ScreenDashboard:
		a.data = nil
		a.dashboard = nil
		a.compView = nil
	case ScreenLogin:
		a.clearPrivate()
		a.register = nil
		a.login = authform.NewLogin(a.notice)
		a.notice = ""
		return a.login.Init()
	case ScreenRegister:
		a.clearPrivate()
		a.login = nil
		a.register = authform.NewRegister()
		a.register.SetWidth(a.fullWidth())
		return a.register.Init()
	case ScreenTransactions:
		a.offset = 0
		a.ledger = nil
	case ScreenAccounts:
		a.ledger = nil
	}
	a.login = nil
	a.register = nil
	return a.load()
}

// clearPrivate drops data belonging to the previous user
func (a *App) clearPrivate() {
	a.data = nil
	a.dashboard = nil
	a.compView = nil
	a.ledger = nil
	a.settings = nil
	a.lastUpdate = time.Time{}
}

func (a *App) handleSession(state session.State) {
	if state == session.Authenticated {
		if a.sessions != nil {
			a.profile, _ = a.sessions.Profile()
		}
		return
	}

	a.profile = nil
	if a.loggingOut {
		a.loggingOut = false
		return
	}
	// Cleared by the request authorizer after a 401
	if a.screen == ScreenLogin && a.login != nil {
		a.login.SetNotice(MsgSessionExpired)
	} else {
		a.notice = MsgSessionExpired
	}
}

func (a *App) showLedger(l *ledger.Ledger, err error) tea.Cmd {
	a.err = err
	if err != nil {
		return nil
	}
	a.lastUpdate = time.Now()
	a.ledger = l
	a.ledger.SetSize(a.fullWidth(), a.contentHeight())
	return nil
}

// load fetches the data for the current screen
func (a *App) load() tea.Cmd {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenDashboard:
		cmd = a.loadDashboard()
	case ScreenTransactions:
		cmd = a.loadTransactions()
	case ScreenAccounts:
		cmd = a.loadAccounts()
	case ScreenSettings:
		cmd = a.loadSettings()
	default:
		return nil
	}
	a.loading = true
	return tea.Batch(cmd, a.spinner.Tick)
}

// loadingView is shown until the first result for a screen arrives
func (a *App) loadingView() string {
	return a.spinner.View() + " Loading..."
}

func (a *App) loadDashboard() tea.Cmd {
	return func() tea.Msg {
		return dashboardLoadedMsg{data: a.api.LoadDashboard(a.ctx)}
	}
}

func (a *App) loadTransactions() tea.Cmd {
	filters := client.TransactionFilters{Limit: pageSize, Offset: a.offset}
	return func() tea.Msg {
		page, err := a.api.ListTransactions(a.ctx, filters)
		return transactionsLoadedMsg{page: page, err: err}
	}
}

func (a *App) loadAccounts() tea.Cmd {
	return func() tea.Msg {
		accounts, err := a.api.ListAccounts(a.ctx)
		return accountsLoadedMsg{accounts: accounts, err: err}
	}
}

func (a *App) loadSettings() tea.Cmd {
	userID, err := a.userID()
	return func() tea.Msg {
		if err != nil {
			return settingsLoadedMsg{err: err}
		}
		s, err := a.api.LoadSettings(a.ctx, userID)
		return settingsLoadedMsg{settings: s, err: err}
	}
}

func (a *App) saveNotifications(cfg client.NotificationConfig) tea.Cmd {
	userID, err := a.userID()
	return func() tea.Msg {
		if err != nil {
			return settingsSavedMsg{err: err}
		}
		return settingsSavedMsg{err: a.api.UpdateNotifications(a.ctx, userID, cfg)}
	}
}

func (a *App) deleteEntry(kind ledger.Kind, id int64) tea.Cmd {
	return func() tea.Msg {
		var err error
		if kind == ledger.KindAccounts {
			err = a.api.DeleteAccount(a.ctx, id)
		} else {
			err = a.api.DeleteTransaction(a.ctx, id)
		}
		return deletedMsg{kind: kind, err: err}
	}
}

func (a *App) submitLogin(req client.LoginRequest) tea.Cmd {
	returnURL := a.loc.ReturnURL()
	return func() tea.Msg {
		_, err := a.auth.Login(a.ctx, req, returnURL)
		return authDoneMsg{err: err}
	}
}

func (a *App) submitRegister(req client.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		_, err := a.auth.Register(a.ctx, req)
		return authDoneMsg{err: err}
	}
}

func (a *App) userID() (string, error) {
	if a.profile == nil || a.profile.ID == 0 {
		return "", errors.New("stored profile has no user id, log in again")
	}
	return strconv.Itoa(a.profile.ID), nil
}

func (a *App) resize() {
	if a.dashboard != nil {
		a.dashboard.SetSize(a.dashboardWidth(), a.contentHeight())
	}
	if a.data != nil && a.data.Charts != nil {
		a.compView = comparison.New(&a.data.Charts.ReceitasDespesas, a.comparisonWidth())
	}
	if a.ledger != nil {
		a.ledger.SetSize(a.fullWidth(), a.contentHeight())
	}
	if a.settings != nil {
		a.settings.SetWidth(a.fullWidth())
	}
	if a.register != nil {
		a.register.SetWidth(a.fullWidth())
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch {
	case a.menu != nil:
		content = styles.ActivePanel.Render(a.menu.View())
	case a.screen == ScreenLogin && a.login != nil:
		content = a.login.View()
	case a.screen == ScreenRegister && a.register != nil:
		content = a.register.View()
	case a.err != nil:
		content = styles.StatusCritical.Render("Error: " + a.err.Error())
	case a.screen == ScreenDashboard:
		content = a.viewDashboard()
	case a.screen == ScreenTransactions, a.screen == ScreenAccounts:
		content = a.viewLedger()
	case a.screen == ScreenSettings:
		content = a.viewSettings()
	case a.screen == ScreenSubscription:
		content = styles.Title.Render("Subscription") + "\n" +
			styles.Subtitle.Render("Plans and quotas are coming soon.")
	default:
		content = styles.Title.Render("Page not found") + "\n" +
			styles.Subtitle.Render(fmt.Sprintf("Nothing lives at %s.", a.loc.String()))
	}

	return a.wrapWithFrame(content)
}

// viewDashboard renders the dashboard with the income vs expenses pane
func (a *App) viewDashboard() string {
	if a.dashboard == nil {
		return styles.Panel.Width(a.dashboardWidth()).Render(a.loadingView())
	}

	leftPane := styles.ActivePanel.Width(a.dashboardWidth()).Render(a.dashboard.View())
	if a.width < minTerminalWidth {
		return leftPane
	}

	rightContent := "No comparison data"
	if a.compView != nil {
		rightContent = a.compView.View()
	}
	rightPane := styles.Panel.Width(a.comparisonWidth()).Render(rightContent)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

func (a *App) viewLedger() string {
	if a.ledger == nil {
		return a.loadingView()
	}
	return a.ledger.View()
}

func (a *App) viewSettings() string {
	if a.settings == nil {
		return a.loadingView()
	}
	return a.settings.View()
}

// dashboardWidth calculates the width for the dashboard pane
func (a *App) dashboardWidth() int {
	if a.width < minTerminalWidth {
		return max(0, a.width-panelPadding)
	}
	return (a.width - panelPadding) * 3 / 5
}

// comparisonWidth calculates the width for the income vs expenses pane
func (a *App) comparisonWidth() int {
	return max(0, a.width-a.dashboardWidth()-panelPadding*2)
}

func (a *App) fullWidth() int {
	return max(0, a.width-2)
}

// contentHeight calculates the height available for screen content
func (a *App) contentHeight() int {
	// Header, blank line, panel border and padding (4), blank line, footer
	return max(0, a.height-8)
}

// frameWidth is one less than the terminal so the corners never wrap
func (a *App) frameWidth() int {
	return max(minTerminalWidth, a.width-1)
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("Meu Secretário"))

	rightText := ""
	if route := router.Resolve(a.loc.Path); a.loc.Path != "" {
		rightText = " " + route.Title + " "
	}
	if a.profile != nil && a.profile.Nome != "" {
		rightText += contextStyle.Render(icons.User.String()+" "+a.profile.Nome) + " "
	}

	fill := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText)) // -4 for ╭─ and ─╮
	return borderStyle.Render("╭─") + leftText + borderStyle.Render(strings.Repeat("─", fill)) +
		rightText + borderStyle.Render("─╮")
}

// shortcuts lists key bindings for the current screen
func (a *App) shortcuts() []string {
	if a.menu != nil {
		return []string{"↑↓ Navigate", "Enter Select", "Esc Close"}
	}
	switch a.screen {
	case ScreenLogin:
		return []string{"Tab Next", "Enter Submit", "Ctrl+N Register", "Ctrl+C Quit"}
	case ScreenRegister:
		return []string{"Tab Next", "Enter Continue", "Esc Back", "Ctrl+C Quit"}
	case ScreenDashboard:
		return []string{"r Refresh", "m Menu", "q Quit"}
	case ScreenTransactions:
		return []string{"/ Filter", "n/p Page", "d Delete", "r Refresh", "m Menu", "q Quit"}
	case ScreenAccounts:
		return []string{"/ Filter", "d Delete", "r Refresh", "m Menu", "q Quit"}
	case ScreenSettings:
		return []string{"1-3 Toggle", "r Refresh", "m Menu", "q Quit"}
	default:
		return []string{"b Dashboard", "m Menu", "q Quit"}
	}
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var styled []string
	for _, s := range a.shortcuts() {
		key, label, _ := strings.Cut(s, " ")
		styled = append(styled, keyStyle.Render(key)+" "+labelStyle.Render(label))
	}
	leftText := " " + strings.Join(styled, "  ")

	rightText := ""
	if !a.lastUpdate.IsZero() && a.menu == nil {
		rightText = statusStyle.Render("Updated "+formatTimeSince(a.lastUpdate)) + " "
	}

	fill := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText)) // -4 for ╰─ and ─╯
	return borderStyle.Render("╰─") + leftText + borderStyle.Render(strings.Repeat("─", fill)) +
		rightText + borderStyle.Render("─╯")
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI and blocks until the user quits or ctx is done
func Run(ctx context.Context, opts Options) error {
	app := New(ctx, opts)
	defer app.Close()

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
