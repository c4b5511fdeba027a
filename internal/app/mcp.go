package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/painwatch/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the analyses as MCP tools over stdio",
	Long: `Start a Model Context Protocol stdio server so an assistant can query
painwatch. The server exposes these tools:

  analyze_sleep_pain_correlation   Sleep duration vs pain
  analyze_stress_pain_correlation  Stress level vs pain
  detect_recurrent_triggers        Recurring triggers, activities and times
  get_comprehensive_analysis       All of the above with a summary
  predict_pain_episode             Pain risk for the next 2-4 hours
  analyze_pain_patterns            Intensity, trigger and relief patterns
  get_recent_predictions           Recorded predictions
  get_recent_patterns              Pattern log entries

Example MCP client configuration:
  {"mcpServers":{"painwatch":{"command":"painwatch","args":["mcp"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	srv := mcp.NewServer(env.engine, env.db, env.log)
	return srv.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}
