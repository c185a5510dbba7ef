package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/imhonza/cranky-language-tutor/internal/mcptools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the tutor as MCP tools over stdio",
	Long: "Serve next_phrase, record_answer, add_phrase and phrase_stats over the Model Context\n" +
		"Protocol on stdin/stdout, so an assistant can run drills. Logs go to a file next to the database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(cmd, true)
		if err != nil {
			return err
		}
		defer e.close()

		// The default learner is optional here; tools may name one.
		defaultLearner, _ := e.learnerName(ctx, cmd)

		pool := e.pool(ctx)
		s := mcptools.NewServer(buildVersion(), mcptools.PoolResolver(pool), defaultLearner)
		e.logger.Info("serving MCP on stdio", "default_learner", defaultLearner)
		err = server.ServeStdio(s)
		e.logger.Info("MCP server stopped", "learners", pool.Loaded(), "err", err)
		return err
	},
}
