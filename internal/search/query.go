package search

import (
	"maps"
	"slices"
	"strings"
)

// Mode names a simple search dimension. Its value is also the query parameter key.
type Mode string

const (
	ModeName         Mode = "name"
	ModeURL          Mode = "url"
	ModeParent       Mode = "parent"
	ModeUsesProduct  Mode = "uses_product"
	ModeUsesCategory Mode = "uses_category"
)

// PrimaryKeys lists every simple search mode
var PrimaryKeys = []Mode{ModeName, ModeURL, ModeParent, ModeUsesProduct, ModeUsesCategory}

// Criterion is the closed set of simple search variants:
// ByName, ByURL, ByParent, ByUsesProduct and ByUsesCategory.
type Criterion interface {
	Mode() Mode
	value() string
	// exact reports the match flag and whether the mode takes one at all
	exact() (bool, bool)
}

// ByName matches job titles. Partial matching unless Exact is set.
type ByName struct {
	Name  string
	Exact bool
}

// ByURL matches the company domain. The value is normalized before sending.
type ByURL struct {
	URL string
}

// ByParent matches the parent company
type ByParent struct {
	Parent string
}

// ByUsesProduct matches jobs mentioning a product
type ByUsesProduct struct {
	Product string
	Exact   bool
}

// ByUsesCategory matches jobs mentioning any product of a category
type ByUsesCategory struct {
	Category string
	Exact    bool
}

func (ByName) Mode() Mode            { return ModeName }
func (c ByName) value() string       { return c.Name }
func (c ByName) exact() (bool, bool) { return c.Exact, true }

func (ByURL) Mode() Mode          { return ModeURL }
func (c ByURL) value() string     { return c.URL }
func (ByURL) exact() (bool, bool) { return false, false }

func (ByParent) Mode() Mode          { return ModeParent }
func (c ByParent) value() string     { return c.Parent }
func (ByParent) exact() (bool, bool) { return false, false }

func (ByUsesProduct) Mode() Mode            { return ModeUsesProduct }
func (c ByUsesProduct) value() string       { return c.Product }
func (c ByUsesProduct) exact() (bool, bool) { return c.Exact, true }

func (ByUsesCategory) Mode() Mode            { return ModeUsesCategory }
func (c ByUsesCategory) value() string       { return c.Category }
func (c ByUsesCategory) exact() (bool, bool) { return c.Exact, true }

// Request is an immutable simple search built once per call
type Request struct {
	criterion Criterion
	limit     int
	hasLimit  bool
	extra     map[string]string
}

// RequestOption configures a Request at construction time
type RequestOption func(*Request)

// WithLimit asks the API for at most n entries
func WithLimit(n int) RequestOption {
	return func(r *Request) {
		r.limit = n
		r.hasLimit = true
	}
}

// WithParam adds a raw query parameter. Params are applied last and win on collision.
func WithParam(key, value string) RequestOption {
	return func(r *Request) {
		if r.extra == nil {
			r.extra = make(map[string]string)
		}
		r.extra[key] = value
	}
}

// NewRequest builds a Request for c
func NewRequest(c Criterion, opts ...RequestOption) Request {
	r := Request{criterion: c}
	for _, opt := range opts {
		if opt != nil {
			opt(&r)
		}
	}
	return r
}

// Criterion returns the search variant
func (r Request) Criterion() Criterion { return r.criterion }

// Limit returns the requested cap, if any
func (r Request) Limit() (int, bool) { return r.limit, r.hasLimit }

// Params returns a copy of the extra query parameters
func (r Request) Params() map[string]string { return maps.Clone(r.extra) }

// Params is the loosely shaped simple search input used by the CLI and MCP tools.
// A nil pointer means the key is absent.
type Params struct {
	Name         *string           `json:"name,omitempty" jsonschema:"Search by job name"`
	URL          *string           `json:"url,omitempty" jsonschema:"Search by company URL"`
	Parent       *string           `json:"parent,omitempty" jsonschema:"Search by parent company"`
	UsesProduct  *string           `json:"uses_product,omitempty" jsonschema:"Search by product usage"`
	UsesCategory *string           `json:"uses_category,omitempty" jsonschema:"Search by product category"`
	Exact        *bool             `json:"exact,omitempty" jsonschema:"Exact matching for name, uses_product and uses_category"`
	Limit        *int              `json:"limit,omitempty" jsonschema:"Maximum number of results to return"`
	Extra        map[string]string `json:"extra,omitempty" jsonschema:"Additional raw query parameters"`
}

// Keys returns every key present in p, extra parameters included
func (p Params) Keys() []string {
	keys := make([]string, 0, 8+len(p.Extra))
	for _, m := range PrimaryKeys {
		if p.field(m) != nil {
			keys = append(keys, string(m))
		}
	}
	if p.Exact != nil {
		keys = append(keys, "exact")
	}
	if p.Limit != nil {
		keys = append(keys, "limit")
	}
	for k := range p.Extra {
		keys = append(keys, k)
	}
	return keys
}

func (p Params) field(m Mode) *string {
	switch m {
	case ModeName:
		return p.Name
	case ModeURL:
		return p.URL
	case ModeParent:
		return p.Parent
	case ModeUsesProduct:
		return p.UsesProduct
	case ModeUsesCategory:
		return p.UsesCategory
	}
	return nil
}

// Request validates p and converts it into the matching Request.
// Mode defaults for exact: name is partial, uses_product and uses_category are exact.
// exact is not sent for url and parent.
func (p Params) Request() (Request, error) {
	mode, err := ValidateSearchKeys(p.Keys())
	if err != nil {
		return Request{}, err
	}

	var value string
	fromExtra := false
	if v := p.field(mode); v != nil {
		value = *v
	} else {
		value = p.Extra[string(mode)]
		fromExtra = true
	}

	exactOr := func(def bool) bool {
		if p.Exact != nil {
			return *p.Exact
		}
		return def
	}

	var c Criterion
	switch mode {
	case ModeName:
		c = ByName{Name: value, Exact: exactOr(false)}
	case ModeURL:
		c = ByURL{URL: value}
	case ModeParent:
		c = ByParent{Parent: value}
	case ModeUsesProduct:
		c = ByUsesProduct{Product: value, Exact: exactOr(true)}
	case ModeUsesCategory:
		c = ByUsesCategory{Category: value, Exact: exactOr(true)}
	}

	opts := make([]RequestOption, 0, 1+len(p.Extra))
	if p.Limit != nil {
		opts = append(opts, WithLimit(*p.Limit))
	}
	for k, v := range p.Extra {
		if fromExtra && k == string(mode) {
			continue
		}
		opts = append(opts, WithParam(k, v))
	}

	return NewRequest(c, opts...), nil
}

// ValidateSearchKeys succeeds iff exactly one primary search key is among keys
func ValidateSearchKeys(keys []string) (Mode, error) {
	seen := make(map[Mode]struct{}, len(PrimaryKeys))
	for _, k := range keys {
		m := Mode(k)
		if isPrimaryKey(m) {
			seen[m] = struct{}{}
		}
	}

	if len(seen) != 1 {
		return "", invalidQuery("exactly one search parameter required from: %s", primaryKeyList())
	}
	for m := range seen {
		return m, nil
	}
	return "", nil
}

func isPrimaryKey(m Mode) bool {
	return slices.Contains(PrimaryKeys, m)
}

func primaryKeyList() string {
	names := make([]string, 0, len(PrimaryKeys))
	for _, k := range PrimaryKeys {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
