package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/sourcestack/internal/search"
)

// primaryFlags maps CLI flag names onto search modes
var primaryFlags = []struct {
	flag string
	mode search.Mode
	help string
}{
	{"name", search.ModeName, "Search by job name"},
	{"url", search.ModeURL, "Search by company URL"},
	{"parent", search.ModeParent, "Search by parent company"},
	{"uses-product", search.ModeUsesProduct, "Search by product usage"},
	{"uses-category", search.ModeUsesCategory, "Search by product category"},
}

func newSearchCmd(g *globalFlags) *cobra.Command {
	var sinks sinkFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search jobs by exactly one of name, url, parent, uses-product or uses-category",
		Example: `  sourcestack search --uses-product Snowflake --limit 20
  sourcestack search --url https://www.canva.com
  sourcestack search --name "data engineer" --exact --param country=US`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := paramsFromFlags(cmd)
			if err != nil {
				return err
			}
			req, err := params.Request()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			res, _, cleanup, err := g.resources(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := res.Search.Search(ctx, req)
			if err != nil {
				return err
			}
			if err := res.Publish(ctx, search.BuildSimple(req).Encode(), result, sinks.options()); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	for _, p := range primaryFlags {
		cmd.Flags().String(p.flag, "", p.help)
	}
	cmd.Flags().Bool("exact", false, "Exact matching for name, uses-product and uses-category (default false for name, true otherwise)")
	cmd.Flags().Int("limit", 0, "Maximum number of results to return")
	cmd.Flags().StringArray("param", nil, "Additional raw query parameter as key=value (repeatable)")
	sinks.register(cmd)

	return cmd
}

// paramsFromFlags reads search flags. A flag counts as given when it was set on
// the command line, even to an empty string.
func paramsFromFlags(cmd *cobra.Command) (search.Params, error) {
	var params search.Params
	flags := cmd.Flags()

	for _, p := range primaryFlags {
		if !flags.Changed(p.flag) {
			continue
		}
		v, err := flags.GetString(p.flag)
		if err != nil {
			return params, err
		}
		switch p.mode {
		case search.ModeName:
			params.Name = &v
		case search.ModeURL:
			params.URL = &v
		case search.ModeParent:
			params.Parent = &v
		case search.ModeUsesProduct:
			params.UsesProduct = &v
		case search.ModeUsesCategory:
			params.UsesCategory = &v
		}
	}

	if flags.Changed("exact") {
		exact, err := flags.GetBool("exact")
		if err != nil {
			return params, err
		}
		params.Exact = &exact
	}

	if flags.Changed("limit") {
		limit, err := flags.GetInt("limit")
		if err != nil {
			return params, err
		}
		params.Limit = &limit
	}

	raw, err := flags.GetStringArray("param")
	if err != nil {
		return params, err
	}
	for _, kv := range raw {
		k, v, err := parseKeyValue(kv)
		if err != nil {
			return params, err
		}
		if params.Extra == nil {
			params.Extra = make(map[string]string)
		}
		params.Extra[k] = v
	}

	return params, nil
}

func parseKeyValue(s string) (string, string, error) {
	k, v, ok := strings.Cut(s, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return "", "", fmt.Errorf("invalid --param %q, expected key=value", s)
	}
	return k, v, nil
}
