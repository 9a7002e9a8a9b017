package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ironsheep/shape-annotator/internal/config"
	"github.com/ironsheep/shape-annotator/internal/server"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as an MCP server over stdin/stdout",
		Long: "Run as an MCP server over stdin/stdout.\n\n" +
			"Configure it in your MCP client (e.g., Claude Desktop).\n" +
			"Set SHAPES_LOG_LEVEL=debug to enable debug logging on stderr.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := openPipeline(cfg)
			if err != nil {
				return err
			}

			if cfg.Debug() {
				log.Printf("Shape annotator MCP server v%s (built %s, commit %s, backend %s)",
					Version, BuildTime, GitCommit, cfg.Backend)
			}

			server.Version = Version
			srv := server.New(pipeline, cfg.OutputSuffix)
			return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
