package main

import (
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/sourcestack/internal/mcp"
	"github.com/honeycarbs/sourcestack/pkg/shutdown"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(g *globalFlags) *cobra.Command {
	var host, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve search_jobs and search_jobs_advanced as MCP tools over streamable HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			res, cfg, cleanup, err := g.resources(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if host != "" {
				cfg.Host = host
			}
			if port != "" {
				cfg.Port = port
			}

			srv := mcp.NewServer(res.Logger, cfg, res)

			go shutdown.Graceful(
				ctx,
				[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
				srv,
				shutdownTimeout,
				res.Logger,
			)

			res.Logger.Info("MCP server initialized and starting", "addr", srv.Addr())

			if err := srv.Run(); err != nil {
				res.Logger.Error("MCP server exited with error", "err", err)
				return err
			}
			res.Logger.Info("MCP server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (overrides MCP_HOST env var)")
	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT env var)")

	return cmd
}
