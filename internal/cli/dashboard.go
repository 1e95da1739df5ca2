package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/clogboy/dagplan/pkg/models"
	"github.com/spf13/cobra"
)

// Dashboard panel indices.
const (
	panelPlan = iota
	panelActivities
	panelMetrics
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	blocks         []blockSnapshot
	pendingByTier  map[string]int
	completedCount int
	metricsData    *metricsSnapshot

	// State.
	loading bool
	err     error
}

type blockSnapshot struct {
	kind  string
	title string
	start string
	end   string
	tier  string
}

type metricsSnapshot struct {
	plansGenerated      int
	blocksPlaced        int
	breaksInserted      int
	activitiesDeferred  int
	conflictsReported   int
	activitiesCompleted int
	eventCount          int
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	blocks         []blockSnapshot
	pendingByTier  map[string]int
	completedCount int
	metrics        *metricsSnapshot
	err            error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	tierUrgent = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	tierHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	tierNormal = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	tierLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	breakText  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel:   panelPlan,
		loading:       true,
		pendingByTier: make(map[string]int),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.blocks = msg.blocks
		m.pendingByTier = msg.pendingByTier
		m.completedCount = msg.completedCount
		m.metricsData = msg.metrics
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" Dagplan Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	planPanel := m.renderPlanPanel()
	activitiesPanel := m.renderActivitiesPanel()
	metricsPanel := m.renderMetricsPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns.
		colWidth := availableWidth / 3
		planPanel = m.applyPanelStyle(panelPlan, planPanel, colWidth-4)
		activitiesPanel = m.applyPanelStyle(panelActivities, activitiesPanel, colWidth-4)
		metricsPanel = m.applyPanelStyle(panelMetrics, metricsPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, planPanel, activitiesPanel, metricsPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		planPanel = m.applyPanelStyle(panelPlan, planPanel, panelWidth)
		activitiesPanel = m.applyPanelStyle(panelActivities, activitiesPanel, panelWidth)
		metricsPanel = m.applyPanelStyle(panelMetrics, metricsPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, planPanel, activitiesPanel, metricsPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderPlanPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Today's Plan"))
	b.WriteString("\n")

	if len(m.blocks) == 0 {
		b.WriteString("  No plan for today. Run `dagplan plan` first.")
		return b.String()
	}

	tasks := 0
	for _, blk := range m.blocks {
		line := fmt.Sprintf("  %s-%s  %s", blk.start, blk.end, truncateTitle(blk.title, 26))
		if blk.kind == string(models.BlockBreak) {
			b.WriteString(breakText.Render(line))
		} else {
			tasks++
			b.WriteString(styleForTier(blk.tier).Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n  %d task block(s)", tasks))

	return b.String()
}

func (m dashboardModel) renderActivitiesPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Activities"))
	b.WriteString("\n")

	total := 0
	for _, c := range m.pendingByTier {
		total += c
	}
	if total == 0 && m.completedCount == 0 {
		b.WriteString("  No activities found.")
		return b.String()
	}

	// Display in priority order.
	order := []string{"urgent", "high", "normal", "low"}
	for _, tier := range order {
		count, ok := m.pendingByTier[tier]
		if !ok || count == 0 {
			continue
		}
		label := fmt.Sprintf("  %-10s %d", tier, count)
		b.WriteString(styleForTier(tier).Render(label))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n  Pending: %d  Completed: %d", total, m.completedCount))

	return b.String()
}

func (m dashboardModel) renderMetricsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Metrics (7d)"))
	b.WriteString("\n")

	if m.metricsData == nil {
		b.WriteString("  No metrics available.")
		return b.String()
	}

	md := m.metricsData
	lines := []struct {
		label string
		value int
	}{
		{"Events", md.eventCount},
		{"Plans", md.plansGenerated},
		{"Blocks", md.blocksPlaced},
		{"Breaks", md.breaksInserted},
		{"Deferred", md.activitiesDeferred},
		{"Conflicts", md.conflictsReported},
		{"Completed", md.activitiesCompleted},
	}

	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %-14s %d\n", l.label, l.value))
	}

	return b.String()
}

func styleForTier(tier string) lipgloss.Style {
	switch tier {
	case string(models.TierUrgent):
		return tierUrgent
	case string(models.TierHigh):
		return tierHigh
	case string(models.TierNormal):
		return tierNormal
	case string(models.TierLow):
		return tierLow
	default:
		return lipgloss.NewStyle()
	}
}

func loadData() tea.Msg {
	result := dataLoadedMsg{
		pendingByTier: make(map[string]int),
	}

	// Load today's blocks from the schedule store.
	if Schedules != nil {
		sched, err := Schedules.LoadDay(time.Now())
		if err != nil {
			result.err = fmt.Errorf("loading today's schedule: %w", err)
			return result
		}
		result.blocks = make([]blockSnapshot, 0, len(sched.Blocks))
		for _, blk := range sched.Blocks {
			result.blocks = append(result.blocks, blockSnapshot{
				kind:  string(blk.Kind),
				title: blk.Title,
				start: blk.Start.Format("15:04"),
				end:   blk.End.Format("15:04"),
				tier:  string(blk.Tier),
			})
		}
	}

	// Load activity counts.
	if Activities != nil {
		all, err := Activities.GetAll()
		if err != nil {
			result.err = fmt.Errorf("loading activities: %w", err)
			return result
		}
		for _, a := range all {
			if a.Status == models.StatusCompleted {
				result.completedCount++
				continue
			}
			result.pendingByTier[string(a.Tier)]++
		}
	}

	// Load metrics from MetricsCalc.
	if MetricsCalc != nil {
		since := time.Now().UTC().AddDate(0, 0, -7)
		metrics, err := MetricsCalc.Calculate(since)
		if err != nil {
			result.err = fmt.Errorf("loading metrics: %w", err)
			return result
		}
		result.metrics = &metricsSnapshot{
			plansGenerated:      metrics.PlansGenerated,
			blocksPlaced:        metrics.BlocksPlaced,
			breaksInserted:      metrics.BreaksInserted,
			activitiesDeferred:  metrics.ActivitiesDeferred,
			conflictsReported:   metrics.ConflictsReported,
			activitiesCompleted: metrics.ActivitiesCompleted,
			eventCount:          metrics.EventCount,
		}
	}

	return result
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard for today's plan and metrics",
	Long: `Launch an interactive terminal dashboard showing today's time blocks,
activity counts by tier, and scheduling metrics in a live-updating view.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Schedules == nil || Activities == nil {
			return fmt.Errorf("stores not initialized")
		}
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
