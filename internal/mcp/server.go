// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the dagplan scheduler and flow advisor as MCP tools for AI assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/clogboy/dagplan/internal/flow"
	"github.com/clogboy/dagplan/internal/scheduler"
	"github.com/clogboy/dagplan/internal/storage"
	"github.com/clogboy/dagplan/pkg/models"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps dagplan services and exposes them as MCP tools.
type Server struct {
	server     *gomcp.Server
	planner    scheduler.Planner
	activities storage.ActivityStore
	schedules  storage.ScheduleStore
	options    models.ScheduleOptions
}

// NewServer creates an MCP server over the given dagplan dependencies.
func NewServer(planner scheduler.Planner, activities storage.ActivityStore, schedules storage.ScheduleStore, options models.ScheduleOptions, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		planner:    planner,
		activities: activities,
		schedules:  schedules,
		options:    options,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "dagplan", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type planDayInput struct {
	Date string `json:"date,omitempty" jsonschema:"the calendar day to plan in YYYY-MM-DD form. Defaults to today."`
}

type blockOutput struct {
	Kind       string `json:"kind"`
	ActivityID string `json:"activity_id,omitempty"`
	Title      string `json:"title"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Minutes    int    `json:"minutes"`
	Tier       string `json:"tier"`
	Color      string `json:"color"`
}

type planDayOutput struct {
	Day         string        `json:"day"`
	Blocks      []blockOutput `json:"blocks"`
	Unscheduled []string      `json:"unscheduled"`
	Conflicts   []string      `json:"conflicts,omitempty"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

type scoreActivitiesInput struct{}

type scoredActivityOutput struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Total         float64 `json:"total"`
	Urgency       float64 `json:"urgency"`
	Importance    float64 `json:"importance"`
	Effort        float64 `json:"effort"`
	Context       float64 `json:"context"`
	Collaboration float64 `json:"collaboration"`
	Reasoning     string  `json:"reasoning"`
	SuggestedSlot string  `json:"suggested_slot"`
}

type scoreActivitiesOutput struct {
	Activities []scoredActivityOutput `json:"activities"`
	Count      int                    `json:"count"`
}

type listFreeSlotsInput struct {
	Date string `json:"date,omitempty" jsonschema:"the calendar day in YYYY-MM-DD form. Defaults to today."`
}

type freeSlotOutput struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Minutes int    `json:"minutes"`
}

type listFreeSlotsOutput struct {
	Slots []freeSlotOutput `json:"slots"`
	Count int              `json:"count"`
}

type flowRecommendationInput struct {
	Preset      string `json:"preset,omitempty" jsonschema:"name of a built-in flow preset (e.g. early-bird, steady-pacer). Defaults to steady-pacer."`
	LowStimulus bool   `json:"low_stimulus,omitempty" jsonschema:"apply the low-stimulus overrides before advising"`
}

type flowRecommendationOutput struct {
	ShouldFocus        bool     `json:"should_focus"`
	SuggestedTaskTypes []string `json:"suggested_task_types"`
	AllowInterruptions bool     `json:"allow_interruptions"`
	EnergyLevel        float64  `json:"energy_level"`
	TimeSlotType       string   `json:"time_slot_type"`
	Recommendation     string   `json:"recommendation"`
}

type listPresetsInput struct{}

type presetOutput struct {
	Name              string   `json:"name"`
	Personality       string   `json:"personality"`
	WorkingHours      string   `json:"working_hours"`
	PeakHours         string   `json:"peak_hours"`
	FocusBlockMinutes int      `json:"focus_block_minutes"`
	PreferredTypes    []string `json:"preferred_task_types"`
}

type listPresetsOutput struct {
	Presets []presetOutput `json:"presets"`
	Count   int            `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "plan_day",
		Description: "Run the time-blocking scheduler for one day: rank pending activities, compute free windows around committed blocks, and greedily place task blocks with recovery breaks. The plan is persisted.",
	}, s.handlePlanDay)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "score_activities",
		Description: "Score all pending activities with the multi-factor priority model and return them ranked, including the factor breakdown and reasoning.",
	}, s.handleScoreActivities)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_free_slots",
		Description: "Compute the free windows for a day around its committed blocks, without scheduling anything.",
	}, s.handleListFreeSlots)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "flow_recommendation",
		Description: "Get the current flow protection advice for a personality preset: focus mode, suggested task types, and whether interruptions are acceptable right now.",
	}, s.handleFlowRecommendation)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_presets",
		Description: "List the built-in flow personality presets.",
	}, s.handleListPresets)
}

// --- Tool handlers ---

func (s *Server) handlePlanDay(_ context.Context, _ *gomcp.CallToolRequest, input planDayInput) (*gomcp.CallToolResult, planDayOutput, error) {
	day, err := parseDay(input.Date)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing date: %s", err)), planDayOutput{}, nil
	}

	pending, err := s.activities.Pending()
	if err != nil {
		return errorResult(fmt.Sprintf("loading activities: %s", err)), planDayOutput{}, nil
	}
	committed, err := s.schedules.CommittedFor(day)
	if err != nil {
		return errorResult(fmt.Sprintf("loading committed blocks: %s", err)), planDayOutput{}, nil
	}

	result, err := s.planner.PlanDay(day, pending, committed, s.options, time.Now())
	if err != nil {
		return errorResult(fmt.Sprintf("planning day: %s", err)), planDayOutput{}, nil
	}

	if err := s.schedules.SaveBlocks(day, result.Blocks); err != nil {
		return errorResult(fmt.Sprintf("persisting plan: %s", err)), planDayOutput{}, nil
	}

	out := planDayOutput{
		Day:         day.Format("2006-01-02"),
		Blocks:      make([]blockOutput, len(result.Blocks)),
		Unscheduled: make([]string, len(result.Unscheduled)),
		Conflicts:   result.Conflicts,
		Suggestions: result.Suggestions,
	}
	for i, b := range result.Blocks {
		out.Blocks[i] = blockToOutput(b)
	}
	for i, a := range result.Unscheduled {
		out.Unscheduled[i] = a.ID
	}
	return nil, out, nil
}

func (s *Server) handleScoreActivities(_ context.Context, _ *gomcp.CallToolRequest, _ scoreActivitiesInput) (*gomcp.CallToolResult, scoreActivitiesOutput, error) {
	pending, err := s.activities.Pending()
	if err != nil {
		return errorResult(fmt.Sprintf("loading activities: %s", err)), scoreActivitiesOutput{}, nil
	}

	ranked := scheduler.Rank(pending, time.Now())
	out := scoreActivitiesOutput{
		Activities: make([]scoredActivityOutput, len(ranked)),
		Count:      len(ranked),
	}
	for i, sa := range ranked {
		out.Activities[i] = scoredActivityOutput{
			ID:            sa.Activity.ID,
			Title:         sa.Activity.Title,
			Total:         sa.Score.Total,
			Urgency:       sa.Score.Factors.Urgency,
			Importance:    sa.Score.Factors.Importance,
			Effort:        sa.Score.Factors.Effort,
			Context:       sa.Score.Factors.Context,
			Collaboration: sa.Score.Factors.Collaboration,
			Reasoning:     sa.Score.Reasoning,
			SuggestedSlot: string(sa.Score.SuggestedSlot),
		}
	}
	return nil, out, nil
}

func (s *Server) handleListFreeSlots(_ context.Context, _ *gomcp.CallToolRequest, input listFreeSlotsInput) (*gomcp.CallToolResult, listFreeSlotsOutput, error) {
	day, err := parseDay(input.Date)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing date: %s", err)), listFreeSlotsOutput{}, nil
	}

	committed, err := s.schedules.CommittedFor(day)
	if err != nil {
		return errorResult(fmt.Sprintf("loading committed blocks: %s", err)), listFreeSlotsOutput{}, nil
	}

	windows, err := scheduler.FreeWindows(day, committed, s.options)
	if err != nil {
		return errorResult(fmt.Sprintf("computing free windows: %s", err)), listFreeSlotsOutput{}, nil
	}

	out := listFreeSlotsOutput{
		Slots: make([]freeSlotOutput, len(windows)),
		Count: len(windows),
	}
	for i, w := range windows {
		out.Slots[i] = freeSlotOutput{
			Start:   w.Start.Format("15:04"),
			End:     w.End.Format("15:04"),
			Minutes: w.Minutes,
		}
	}
	return nil, out, nil
}

func (s *Server) handleFlowRecommendation(_ context.Context, _ *gomcp.CallToolRequest, input flowRecommendationInput) (*gomcp.CallToolResult, flowRecommendationOutput, error) {
	name := input.Preset
	if name == "" {
		name = "steady-pacer"
	}
	strategy, err := flow.PresetByName(name)
	if err != nil {
		return errorResult(err.Error()), flowRecommendationOutput{}, nil
	}
	if input.LowStimulus {
		strategy = flow.LowStimulusPreset(strategy)
	}

	rec := flow.Recommend(strategy, time.Now())
	out := flowRecommendationOutput{
		ShouldFocus:        rec.ShouldFocus,
		SuggestedTaskTypes: rec.SuggestedTaskTypes,
		AllowInterruptions: rec.AllowInterruptions,
		EnergyLevel:        rec.EnergyLevel,
		TimeSlotType:       string(rec.SlotType),
		Recommendation:     rec.Recommendation,
	}
	return nil, out, nil
}

func (s *Server) handleListPresets(_ context.Context, _ *gomcp.CallToolRequest, _ listPresetsInput) (*gomcp.CallToolResult, listPresetsOutput, error) {
	presets := flow.Presets()
	out := listPresetsOutput{
		Presets: make([]presetOutput, len(presets)),
		Count:   len(presets),
	}
	for i, p := range presets {
		out.Presets[i] = presetOutput{
			Name:              p.Name,
			Personality:       p.Personality,
			WorkingHours:      p.WorkingHours.Start + "-" + p.WorkingHours.End,
			PeakHours:         p.PeakHours.Start + "-" + p.PeakHours.End,
			FocusBlockMinutes: p.FocusBlockMinutes,
			PreferredTypes:    p.PreferredTaskTypes,
		}
	}
	return nil, out, nil
}

// --- Helpers ---

func blockToOutput(b models.ProducedBlock) blockOutput {
	return blockOutput{
		Kind:       string(b.Kind),
		ActivityID: b.ActivityID,
		Title:      b.Title,
		Start:      b.Start.Format(time.RFC3339),
		End:        b.End.Format(time.RFC3339),
		Minutes:    b.Minutes,
		Tier:       string(b.Tier),
		Color:      b.Color,
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// parseDay parses a YYYY-MM-DD date, defaulting to today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	day, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not in YYYY-MM-DD form", s)
	}
	return day, nil
}
