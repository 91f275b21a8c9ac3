package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/sourcestack/internal/search"
)

func newAdvancedCmd(g *globalFlags) *cobra.Command {
	var (
		rawFilters  []string
		filtersFile string
		sinks       sinkFlags
	)

	cmd := &cobra.Command{
		Use:   "advanced",
		Short: "Search jobs with filter conditions",
		Long: "Search jobs with filter conditions given as --filter field:OPERATOR:value or a JSON file of " +
			"{\"field\", \"operator\", \"value\"} objects. Values that parse as JSON (numbers, booleans, arrays) " +
			"are sent as such; anything else is sent as a string.\n\nOperators: " + search.OperatorList(),
		Example: `  sourcestack advanced --filter tags_matched:CONTAINS_ANY:'["Snowflake","dbt"]' --filter remote:EQUALS:true
  sourcestack advanced --filters-file filters.json --limit 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := collectFilters(filtersFile, rawFilters)
			if err != nil {
				return err
			}
			filters, err := search.ParseFilters(raw)
			if err != nil {
				return err
			}

			var limit *int
			if cmd.Flags().Changed("limit") {
				n, err := cmd.Flags().GetInt("limit")
				if err != nil {
					return err
				}
				limit = &n
			}

			ctx := cmd.Context()
			res, _, cleanup, err := g.resources(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := res.Search.SearchJobsAdvanced(ctx, filters, limit)
			if err != nil {
				return err
			}
			if err := res.Publish(ctx, search.DescribeFilters(filters), result, sinks.options()); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringArrayVar(&rawFilters, "filter", nil, "Filter as field:OPERATOR:value (repeatable)")
	cmd.Flags().StringVar(&filtersFile, "filters-file", "", "Path to a JSON array of filter objects")
	cmd.Flags().Int("limit", 0, "Maximum number of results to return")
	sinks.register(cmd)

	return cmd
}

// collectFilters returns the file's filters followed by the flag filters
func collectFilters(path string, flags []string) ([]any, error) {
	var raw []any

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read filters file: %w", err)
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("filters file must contain a JSON array: %w", err)
		}
	}

	for _, f := range flags {
		parsed, err := parseFilterFlag(f)
		if err != nil {
			return nil, err
		}
		raw = append(raw, parsed)
	}

	return raw, nil
}

// parseFilterFlag splits field:OPERATOR:value. The value keeps any further colons.
func parseFilterFlag(s string) (map[string]any, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid --filter %q, expected field:OPERATOR:value", s)
	}

	return map[string]any{
		"field":    parts[0],
		"operator": strings.ToUpper(parts[1]),
		"value":    filterValue(parts[2]),
	}, nil
}

func filterValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil && v != nil {
		return v
	}
	return s
}
