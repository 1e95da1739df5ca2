package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	dagmcp "github.com/clogboy/dagplan/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the dagplan MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dagplan MCP server on stdio",
	Long: `Start the dagplan MCP server on stdio transport.

The server exposes dagplan functionality as MCP tools that AI assistants
can call: plan_day, score_activities, list_free_slots, flow_recommendation,
list_presets.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Planner == nil || Activities == nil || Schedules == nil {
			return fmt.Errorf("planner services not initialized")
		}

		srv := dagmcp.NewServer(Planner, Activities, Schedules, Config.Options, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
