package search

import (
	"fmt"
	"slices"
	"time"

	"github.com/honeycarbs/sourcestack/pkg/sourcestack"
)

// Status tags a Result
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

const (
	topN           = 5
	unknownCompany = "Unknown"
	noResults      = "No results found"

	// TimestampLayout is fixed width and always UTC, so timestamps sort as strings
	TimestampLayout = "2006-01-02T15:04:05.000000Z"
)

// Stat is one ranked name/count pair
type Stat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Statistics holds the top entries per dimension
type Statistics struct {
	Companies    []Stat `json:"companies"`
	Technologies []Stat `json:"technologies"`
	Categories   []Stat `json:"categories"`
}

// Pagination echoes the requested limit next to the entries received
type Pagination struct {
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Result is the summarized response of one search call
type Result struct {
	Status     Status            `json:"status"`
	Message    string            `json:"message,omitempty"`
	Timestamp  string            `json:"timestamp"`
	Count      int               `json:"count"`
	Statistics *Statistics       `json:"statistics,omitempty"`
	Entries    []sourcestack.Job `json:"entries,omitempty"`
	Pagination *Pagination       `json:"pagination,omitempty"`
}

// Aggregate summarizes entries. An empty input yields an error-status result
// with no statistics and no entries. entries is kept as-is, in order.
func Aggregate(entries []sourcestack.Job, now time.Time) Result {
	ts := now.UTC().Format(TimestampLayout)

	if len(entries) == 0 {
		return Result{
			Status:    StatusError,
			Message:   noResults,
			Timestamp: ts,
			Count:     0,
		}
	}

	companies := newCounter()
	technologies := newCounter()
	categories := newCounter()

	for _, job := range entries {
		companies.add(CompanyName(job))
	}
	for _, job := range entries {
		for _, tag := range TagsMatched(job) {
			technologies.add(tag)
		}
	}
	for _, job := range entries {
		for _, category := range TagCategories(job) {
			categories.add(category)
		}
	}

	return Result{
		Status:    StatusSuccess,
		Timestamp: ts,
		Count:     len(entries),
		Statistics: &Statistics{
			Companies:    companies.top(topN),
			Technologies: technologies.top(topN),
			Categories:   categories.top(topN),
		},
		Entries: entries,
	}
}

// counter remembers first-seen order so ties rank by encounter
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(name string) {
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

func (c *counter) top(n int) []Stat {
	stats := make([]Stat, 0, len(c.order))
	for _, name := range c.order {
		stats = append(stats, Stat{Name: name, Count: c.counts[name]})
	}

	slices.SortStableFunc(stats, func(a, b Stat) int {
		return b.Count - a.Count
	})

	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// CompanyName reads company_name, "Unknown" when absent or null
func CompanyName(job sourcestack.Job) string {
	v, ok := job["company_name"]
	if !ok || v == nil {
		return unknownCompany
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// TagsMatched reads tags_matched
func TagsMatched(job sourcestack.Job) []string {
	return stringList(job["tags_matched"])
}

// TagCategories reads tag_categories
func TagCategories(job sourcestack.Job) []string {
	return stringList(job["tag_categories"])
}

// stringList reads a JSON array field; anything else counts as empty
func stringList(v any) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if item == nil {
				continue
			}
			if s, ok := item.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}
