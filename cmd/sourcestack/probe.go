package main

import (
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newProbeCmd() *cobra.Command {
	var (
		endpoint string
		product  string
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Connect to a running MCP server, list its tools and optionally run search_jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			client := sdkmcp.NewClient(&sdkmcp.Implementation{
				Name:    "sourcestack-probe",
				Version: "0.1.0",
			}, nil)

			session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: endpoint}, nil)
			if err != nil {
				return fmt.Errorf("failed to connect to %s: %w", endpoint, err)
			}
			defer func() { _ = session.Close() }()

			fmt.Fprintf(out, "Connected (session %s)\n", session.ID())

			tools, err := session.ListTools(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to list tools: %w", err)
			}
			for _, tool := range tools.Tools {
				fmt.Fprintf(out, "- %s: %s\n", tool.Name, tool.Description)
			}

			if product == "" {
				return nil
			}

			result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
				Name:      "search_jobs",
				Arguments: map[string]any{"uses_product": product},
			})
			if err != nil {
				return fmt.Errorf("search_jobs failed: %w", err)
			}
			for _, content := range result.Content {
				if text, ok := content.(*sdkmcp.TextContent); ok {
					fmt.Fprintln(out, text.Text)
				}
			}
			if result.IsError {
				return fmt.Errorf("search_jobs returned an error")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	cmd.Flags().StringVar(&product, "uses-product", "", "Run search_jobs for this product after listing tools")

	return cmd
}
