package tools

import (
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/sourcestack/internal/search"
)

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

// summarize renders the statistics block as plain text for the model
func summarize(result search.Result) string {
	if result.Status != search.StatusSuccess || result.Statistics == nil {
		msg := result.Message
		if msg == "" {
			msg = "No results found"
		}
		return fmt.Sprintf("%s (%s)", msg, result.Timestamp)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d job(s) at %s\n", result.Count, result.Timestamp)
	writeStats(&b, "Top companies", result.Statistics.Companies)
	writeStats(&b, "Top technologies", result.Statistics.Technologies)
	writeStats(&b, "Top categories", result.Statistics.Categories)
	if result.Pagination != nil {
		fmt.Fprintf(&b, "Limit %d, received %d\n", result.Pagination.Limit, result.Pagination.Total)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeStats(b *strings.Builder, title string, stats []search.Stat) {
	if len(stats) == 0 {
		fmt.Fprintf(b, "%s: none\n", title)
		return
	}

	parts := make([]string, 0, len(stats))
	for _, s := range stats {
		parts = append(parts, fmt.Sprintf("%s (%d)", s.Name, s.Count))
	}
	fmt.Fprintf(b, "%s: %s\n", title, strings.Join(parts, ", "))
}
