// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nickigann03/phishguard/internal/client"
	"github.com/nickigann03/phishguard/internal/session"
	"github.com/nickigann03/phishguard/internal/token"
	"github.com/nickigann03/phishguard/internal/tui/dashboard"
	"github.com/nickigann03/phishguard/internal/tui/debuglog"
	"github.com/nickigann03/phishguard/internal/tui/icons"
	"github.com/nickigann03/phishguard/internal/tui/loginform"
	"github.com/nickigann03/phishguard/internal/tui/styles"
	"github.com/nickigann03/phishguard/internal/tui/widgets"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenResolving Screen = iota
	ScreenLogin
	ScreenDashboard
	ScreenCampaigns
	ScreenTemplates
	ScreenGenerator
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// sessionResolvedMsg is sent when the stored session has been checked
type sessionResolvedMsg struct {
	authenticated bool
}

// loginResultMsg is sent when a sign-in attempt completes
type loginResultMsg struct {
	err error
}

// dashboardLoadedMsg is sent when analytics data is loaded
type dashboardLoadedMsg struct {
	data *client.DashboardData
	err  error
}

// campaignsLoadedMsg is sent when the campaign list is loaded
type campaignsLoadedMsg struct {
	campaigns []client.Campaign
	err       error
}

// templatesLoadedMsg is sent when the template list is loaded
type templatesLoadedMsg struct {
	templates []client.Template
	err       error
}

// launchResultMsg is sent when a campaign launch completes
type launchResultMsg struct {
	message string
	err     error
}

// generatedMsg is sent when AI template generation completes
type generatedMsg struct {
	template *client.GeneratedTemplate
	err      error
}

// App is the root model for the TUI
type App struct {
	client     *client.Client
	sess       *session.Manager
	screen     Screen
	width      int
	height     int
	err        error
	lastUpdate time.Time

	// Dashboard screen
	data      *client.DashboardData
	dashboard *dashboard.Dashboard

	// Campaigns screen
	campaigns    []client.Campaign
	campaignIdx  int
	launchNotice string

	// Templates screen
	templates   []client.Template
	templateIdx int

	// Generator screen
	promptInput textinput.Model
	generated   *client.GeneratedTemplate
	generating  bool

	// Child models
	loginScreen *loginform.Form
	loading     spinner.Model
}

// New creates a new TUI application
func New(apiClient *client.Client, sess *session.Manager) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	prompt := textinput.New()
	prompt.Placeholder = "Describe the phishing scenario to generate"
	prompt.CharLimit = 500
	prompt.Width = 60

	return &App{
		client:      apiClient,
		sess:        sess,
		screen:      ScreenResolving,
		loading:     sp,
		promptInput: prompt,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loading.Tick, a.resolveSession())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dashboard != nil {
			a.dashboard.SetSize(a.dashboardWidth(), a.contentHeight())
		}
		if a.loginScreen != nil {
			return a.updateLogin(msg)
		}
		return a, nil

	case spinner.TickMsg:
		if a.screen == ScreenResolving || a.generating {
			var cmd tea.Cmd
			a.loading, cmd = a.loading.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Route to current screen
		switch a.screen {
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenDashboard:
			return a.updateDashboard(msg)
		case ScreenCampaigns:
			return a.updateCampaigns(msg)
		case ScreenTemplates:
			return a.updateTemplates(msg)
		case ScreenGenerator:
			return a.updateGenerator(msg)
		}
		return a, nil

	case sessionResolvedMsg:
		if msg.authenticated {
			a.screen = ScreenDashboard
			return a, a.loadDashboard()
		}
		return a.showLogin("")

	case loginform.SubmitMsg:
		return a, a.signIn(msg.Email, msg.Password)

	case loginform.CancelledMsg:
		return a, tea.Quit

	case loginResultMsg:
		if msg.err != nil {
			return a.showLogin(msg.err.Error())
		}
		a.loginScreen = nil
		a.screen = ScreenDashboard
		return a, a.loadDashboard()

	case dashboardLoadedMsg:
		if msg.err != nil {
			debuglog.Error("load dashboard", msg.err)
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.data = msg.data
		a.lastUpdate = time.Now()
		if a.dashboard == nil {
			a.dashboard = dashboard.New(a.data, a.dashboardWidth(), a.contentHeight())
		} else {
			a.dashboard.Update(a.data)
		}
		return a, nil

	case campaignsLoadedMsg:
		if msg.err != nil {
			debuglog.Error("load campaigns", msg.err)
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.campaigns = msg.campaigns
		a.lastUpdate = time.Now()
		if a.campaignIdx >= len(a.campaigns) {
			a.campaignIdx = 0
		}
		return a, nil

	case templatesLoadedMsg:
		if msg.err != nil {
			debuglog.Error("load templates", msg.err)
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.templates = msg.templates
		a.lastUpdate = time.Now()
		if a.templateIdx >= len(a.templates) {
			a.templateIdx = 0
		}
		return a, nil

	case launchResultMsg:
		if msg.err != nil {
			a.launchNotice = "Launch failed: " + msg.err.Error()
			return a, nil
		}
		a.launchNotice = msg.message
		return a, a.loadCampaigns()

	case generatedMsg:
		a.generating = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.generated = msg.template
		return a, nil

	default:
		// Forward unknown messages to the login form when active (needed for huh form internals)
		if a.screen == ScreenLogin && a.loginScreen != nil {
			return a.updateLogin(msg)
		}
	}

	return a, nil
}

// showLogin transitions to the sign-in screen, optionally with an error message
func (a *App) showLogin(errText string) (tea.Model, tea.Cmd) {
	if a.loginScreen == nil {
		a.loginScreen = loginform.New()
	}
	if errText != "" {
		a.loginScreen.SetError(errText)
	}
	a.loginScreen.SetWidth(a.width)
	a.screen = ScreenLogin
	return a, a.loginScreen.Init()
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.loginScreen == nil {
		return a, nil
	}
	model, cmd := a.loginScreen.Update(msg)
	a.loginScreen = model.(*loginform.Form)
	return a, cmd
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		return a, a.loadDashboard()
	case "c":
		a.screen = ScreenCampaigns
		a.launchNotice = ""
		return a, a.loadCampaigns()
	case "t":
		a.screen = ScreenTemplates
		return a, a.loadTemplates()
	case "g":
		a.screen = ScreenGenerator
		a.generated = nil
		a.promptInput.Focus()
		return a, textinput.Blink
	case "o":
		a.sess.Logout()
		a.data = nil
		a.dashboard = nil
		a.err = nil
		return a.showLogin("")
	}
	return a, nil
}

func (a *App) updateCampaigns(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b", "esc":
		a.screen = ScreenDashboard
		return a, nil
	case "r":
		return a, a.loadCampaigns()
	case "up", "k":
		if a.campaignIdx > 0 {
			a.campaignIdx--
		}
		return a, nil
	case "down", "j":
		if a.campaignIdx < len(a.campaigns)-1 {
			a.campaignIdx++
		}
		return a, nil
	case "l", "enter":
		if a.campaignIdx < len(a.campaigns) {
			c := a.campaigns[a.campaignIdx]
			if c.Status == "draft" || c.Status == "scheduled" {
				return a, a.launchCampaign(c.ID)
			}
			a.launchNotice = "Only draft and scheduled campaigns can be launched"
		}
		return a, nil
	}
	return a, nil
}

func (a *App) updateTemplates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b", "esc":
		a.screen = ScreenDashboard
		return a, nil
	case "r":
		return a, a.loadTemplates()
	case "up", "k":
		if a.templateIdx > 0 {
			a.templateIdx--
		}
		return a, nil
	case "down", "j":
		if a.templateIdx < len(a.templates)-1 {
			a.templateIdx++
		}
		return a, nil
	}
	return a, nil
}

func (a *App) updateGenerator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.screen = ScreenDashboard
		a.promptInput.Blur()
		a.err = nil
		return a, nil
	case "enter":
		prompt := strings.TrimSpace(a.promptInput.Value())
		if prompt == "" || a.generating {
			return a, nil
		}
		a.generating = true
		a.generated = nil
		a.err = nil
		return a, tea.Batch(a.loading.Tick, a.generate(prompt))
	}

	var cmd tea.Cmd
	a.promptInput, cmd = a.promptInput.Update(msg)
	return a, cmd
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenResolving:
		content = a.viewResolving()
	case ScreenLogin:
		content = a.viewLogin()
	case ScreenDashboard:
		content = a.viewDashboard()
	case ScreenCampaigns:
		content = a.viewCampaigns()
	case ScreenTemplates:
		content = a.viewTemplates()
	case ScreenGenerator:
		content = a.viewGenerator()
	default:
		content = a.viewResolving()
	}

	return a.wrapWithFrame(content)
}

// viewResolving renders the session check screen
func (a *App) viewResolving() string {
	return styles.Panel.Render(a.loading.View() + " Checking stored session...")
}

// viewLogin renders the sign-in screen
func (a *App) viewLogin() string {
	if a.loginScreen != nil {
		return a.loginScreen.View()
	}
	return ""
}

// viewDashboard renders the analytics overview with actions pane
func (a *App) viewDashboard() string {
	if a.err != nil {
		return styles.StatusCritical.Render("Error: " + a.err.Error())
	}

	leftPane := ""
	if a.dashboard != nil {
		leftPane = styles.ActivePanel.Width(a.dashboardWidth()).Render(a.dashboard.View())
	} else {
		leftPane = styles.Panel.Width(a.dashboardWidth()).Render("Loading...")
	}

	// Actions pane on the right
	rightContent := styles.Title.Render(icons.Chart.String()+" Actions") + "\n\n"
	rightContent += icons.Refresh.String() + " Refresh data\n"
	rightContent += icons.Campaign.String() + " Campaigns\n"
	rightContent += icons.Template.String() + " Templates\n"
	rightContent += icons.Sparkles.String() + " AI generator\n"
	rightContent += icons.Logout.String() + " Sign out\n"
	rightContent += icons.Quit.String() + " Quit\n"
	rightPane := styles.Panel.Width(a.actionsWidth()).Render(rightContent)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// viewCampaigns renders the campaign list
func (a *App) viewCampaigns() string {
	if a.err != nil {
		return styles.StatusCritical.Render("Error: " + a.err.Error())
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Campaign.String() + " Campaigns"))
	sb.WriteString("\n\n")

	if len(a.campaigns) == 0 {
		sb.WriteString(styles.Subtitle.Render("No campaigns yet."))
	}

	for i, c := range a.campaigns {
		cursor := "  "
		nameStyle := lipgloss.NewStyle().Foreground(styles.Text)
		if i == a.campaignIdx {
			cursor = styles.KeyStyle.Render("> ")
			nameStyle = nameStyle.Bold(true)
		}

		rate := 0.0
		if c.TargetsCount > 0 {
			rate = float64(c.ClicksCount) / float64(c.TargetsCount) * 100
		}
		line := fmt.Sprintf("%s%s %s  %d targets, %d clicks (%.1f%%)",
			cursor,
			widgets.CampaignStatusBadge(c.Status),
			nameStyle.Render(c.Name),
			c.TargetsCount, c.ClicksCount, rate)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if a.launchNotice != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render(a.launchNotice))
	}

	return styles.ActivePanel.Width(a.fullWidth()).Render(sb.String())
}

// viewTemplates renders the template library
func (a *App) viewTemplates() string {
	if a.err != nil {
		return styles.StatusCritical.Render("Error: " + a.err.Error())
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Template.String() + " Templates"))
	sb.WriteString("\n\n")

	if len(a.templates) == 0 {
		sb.WriteString(styles.Subtitle.Render("No templates available."))
	}

	for i, t := range a.templates {
		cursor := "  "
		nameStyle := lipgloss.NewStyle().Foreground(styles.Text)
		if i == a.templateIdx {
			cursor = styles.KeyStyle.Render("> ")
			nameStyle = nameStyle.Bold(true)
		}
		sb.WriteString(fmt.Sprintf("%s%s %s  %s/%s\n",
			cursor,
			widgets.DifficultyBadge(t.Difficulty),
			nameStyle.Render(t.Name),
			t.CountryCode, t.Category))
	}

	// Detail pane for the selected template
	if a.templateIdx < len(a.templates) {
		t := a.templates[a.templateIdx]
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Subject: " + t.Subject))
		if t.BrandImpersonated != "" {
			sb.WriteString("\n")
			sb.WriteString(styles.Subtitle.Render("Brand: " + t.BrandImpersonated))
		}
	}

	return styles.ActivePanel.Width(a.fullWidth()).Render(sb.String())
}

// viewGenerator renders the AI template generator
func (a *App) viewGenerator() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Sparkles.String() + " AI Template Generator"))
	sb.WriteString("\n\n")
	sb.WriteString(a.promptInput.View())
	sb.WriteString("\n")

	if a.generating {
		sb.WriteString("\n")
		sb.WriteString(a.loading.View() + " Generating template...")
		sb.WriteString("\n")
	}

	if a.err != nil {
		sb.WriteString("\n")
		sb.WriteString(styles.ErrorStyle.Render("Error: " + a.err.Error()))
		sb.WriteString("\n")
	}

	if a.generated != nil {
		g := a.generated
		sb.WriteString("\n")
		sb.WriteString(styles.ValueStyle.Render("Subject: ") + g.Subject)
		sb.WriteString("\n")
		sb.WriteString(styles.ValueStyle.Render("Difficulty: ") + widgets.DifficultyBadge(g.Difficulty))
		if g.EstimatedSuccessRate != "" {
			sb.WriteString("\n")
			sb.WriteString(styles.ValueStyle.Render("Est. success rate: ") + g.EstimatedSuccessRate)
		}
		sb.WriteString("\n\n")
		sb.WriteString(g.BodyText)
		sb.WriteString("\n")
	}

	return styles.ActivePanel.Width(a.fullWidth()).Render(sb.String())
}

// dashboardWidth calculates the width for the dashboard pane
func (a *App) dashboardWidth() int {
	if a.width < minTerminalWidth {
		return a.width - panelPadding
	}
	return (a.width - panelPadding) / 2
}

// actionsWidth calculates the width for the actions pane
func (a *App) actionsWidth() int {
	return a.width - a.dashboardWidth() - 4
}

// fullWidth calculates the width for single-pane screens
func (a *App) fullWidth() int {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}
	return width - panelPadding
}

// contentHeight calculates the height available for dashboard content
func (a *App) contentHeight() int {
	// Header, footer, panel borders and padding take 8 lines total
	return a.height - 8
}

// renderHeader creates the header bar with app branding and the signed-in user
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("PhishGuard"))

	rightText := ""
	if user := a.sess.User(); user != nil {
		rightText = contextStyle.Render(user.Email) + " "
	}

	leftRendered := lipgloss.NewStyle().Render(leftText)
	rightRendered := lipgloss.NewStyle().Align(lipgloss.Right).Render(rightText)

	leftWidth := lipgloss.Width(leftRendered)
	rightWidth := lipgloss.Width(rightRendered)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)

	return borderStyle.Render("╭─" + leftRendered + fill + rightRendered + "─╮")
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenResolving:
		shortcuts = []string{"ctrl+c Quit"}
	case ScreenLogin:
		shortcuts = []string{"Tab Next", "Enter Submit", "Esc Quit"}
	case ScreenDashboard:
		shortcuts = []string{"r Refresh", "c Campaigns", "t Templates", "g Generator", "o Sign-out", "q Quit"}
	case ScreenCampaigns:
		shortcuts = []string{"↑↓ Navigate", "l Launch", "r Refresh", "b Back", "q Quit"}
	case ScreenTemplates:
		shortcuts = []string{"↑↓ Navigate", "r Refresh", "b Back", "q Quit"}
	case ScreenGenerator:
		shortcuts = []string{"Enter Generate", "Esc Back"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.screen != ScreenLogin && a.screen != ScreenResolving {
		elapsed := a.formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)

	return borderStyle.Render("╰─" + leftText + fill + rightText + "─╯")
}

// formatTimeSince formats a duration since the given time in human-readable form
func (a *App) formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
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

// resolveSession creates a command that checks the stored credential
func (a *App) resolveSession() tea.Cmd {
	return func() tea.Msg {
		a.sess.Resume(context.Background())
		debuglog.Log("session resolved: %s", a.sess.State())
		return sessionResolvedMsg{authenticated: a.sess.IsAuthenticated()}
	}
}

// signIn creates a command that attempts a sign-in with the given credentials
func (a *App) signIn(email, password string) tea.Cmd {
	return func() tea.Msg {
		return loginResultMsg{err: a.sess.Login(context.Background(), email, password)}
	}
}

// loadDashboard creates a command to fetch analytics data
func (a *App) loadDashboard() tea.Cmd {
	return func() tea.Msg {
		data, err := a.client.Dashboard(context.Background())
		return dashboardLoadedMsg{data: data, err: err}
	}
}

// loadCampaigns creates a command to fetch the campaign list
func (a *App) loadCampaigns() tea.Cmd {
	return func() tea.Msg {
		campaigns, err := a.client.Campaigns(context.Background())
		return campaignsLoadedMsg{campaigns: campaigns, err: err}
	}
}

// loadTemplates creates a command to fetch the template library
func (a *App) loadTemplates() tea.Cmd {
	return func() tea.Msg {
		templates, err := a.client.Templates(context.Background(), client.TemplateFilters{})
		return templatesLoadedMsg{templates: templates, err: err}
	}
}

// launchCampaign creates a command to launch the given campaign
func (a *App) launchCampaign(id string) tea.Cmd {
	return func() tea.Msg {
		result, err := a.client.LaunchCampaign(context.Background(), id)
		if err != nil {
			return launchResultMsg{err: err}
		}
		return launchResultMsg{message: result.Message}
	}
}

// generate creates a command to run AI template generation
func (a *App) generate(prompt string) tea.Cmd {
	return func() tea.Msg {
		result, err := a.client.GenerateTemplate(context.Background(), &client.GenerateTemplateRequest{Prompt: prompt})
		return generatedMsg{template: result, err: err}
	}
}

// Run starts the TUI
func Run(apiClient *client.Client, sess *session.Manager) error {
	if os.Getenv("PHISHGUARD_DEBUG") != "" {
		if err := debuglog.Init(token.DefaultConfigDir()); err == nil {
			defer debuglog.Close()
		}
	}

	app := New(apiClient, sess)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
