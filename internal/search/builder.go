package search

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/honeycarbs/sourcestack/pkg/sourcestack"
)

// NormalizeURL strips one leading "https://" or "http://" and then a leading "www.".
// Nothing else is touched.
func NormalizeURL(raw string) string {
	s := raw
	if rest, ok := strings.CutPrefix(s, "https://"); ok {
		s = rest
	} else if rest, ok := strings.CutPrefix(s, "http://"); ok {
		s = rest
	}
	return strings.TrimPrefix(s, "www.")
}

// BuildSimple maps a Request onto GET /jobs query parameters.
// exact is sent as "true"/"false"; extra params are applied last.
func BuildSimple(r Request) url.Values {
	values := url.Values{}
	c := r.Criterion()
	if c == nil {
		return values
	}

	v := c.value()
	if c.Mode() == ModeURL {
		v = NormalizeURL(v)
	}
	values.Set(string(c.Mode()), v)

	if exact, ok := c.exact(); ok {
		values.Set("exact", strconv.FormatBool(exact))
	}
	if limit, ok := r.Limit(); ok {
		values.Set("limit", strconv.Itoa(limit))
	}
	for k, v := range r.extra {
		values.Set(k, v)
	}
	return values
}

// BuildAdvanced maps filters onto the POST /jobs body. limit travels as a query
// parameter, never in the body.
func BuildAdvanced(filters []Filter, limit *int) (sourcestack.AdvancedQuery, url.Values) {
	body := sourcestack.AdvancedQuery{
		Filters: make([]sourcestack.Filter, 0, len(filters)),
	}
	for _, f := range filters {
		body.Filters = append(body.Filters, sourcestack.Filter{
			Field:    f.Field,
			Operator: string(f.Operator),
			Value:    f.Value,
		})
	}

	params := url.Values{}
	if limit != nil {
		params.Set("limit", strconv.Itoa(*limit))
	}
	return body, params
}
