package neo4j

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/honeycarbs/sourcestack/internal/search"

	pkgneo4j "github.com/honeycarbs/sourcestack/pkg/neo4j"
)

// writer is the part of the Neo4j client used to persist results
type writer interface {
	ExecuteWrite(ctx context.Context, query string, params map[string]any) error
}

var _ writer = (*pkgneo4j.Client)(nil)

const recordQuery = `
	MERGE (s:Search {id: $search.id})
	SET s.timestamp = $search.timestamp,
	    s.count = $search.count,
	    s.label = $search.label
	WITH s
	UNWIND $companies AS company
	MERGE (c:Company {name: company.name})
	MERGE (s)-[f:FOUND]->(c)
	SET f.count = company.count
	WITH c, company
	FOREACH (tech IN company.technologies |
		MERGE (t:Technology {name: tech.name})
		MERGE (c)-[u:USES]->(t)
		SET u.count = coalesce(u.count, 0) + tech.count
	)
	WITH company
	UNWIND company.links AS link
	MERGE (t:Technology {name: link.technology})
	MERGE (cat:Category {name: link.category})
	MERGE (t)-[:IN_CATEGORY]->(cat)
`

// ResultRepository records search results as a company/technology graph
type ResultRepository struct {
	client writer
	newID  func() string
}

// NewResultRepository creates a ResultRepository with a Neo4j client
func NewResultRepository(client *pkgneo4j.Client) *ResultRepository {
	return newResultRepository(client)
}

func newResultRepository(client writer) *ResultRepository {
	return &ResultRepository{
		client: client,
		newID:  uuid.NewString,
	}
}

// Record stores one successful result. Results without entries are skipped.
// label is free text stored on the Search node, usually the query that produced it.
func (r *ResultRepository) Record(ctx context.Context, label string, result search.Result) error {
	if result.Status != search.StatusSuccess || len(result.Entries) == 0 {
		return nil
	}

	params := recordParams(r.newID(), label, result)
	if err := r.client.ExecuteWrite(ctx, recordQuery, params); err != nil {
		return fmt.Errorf("failed to record search result: %w", err)
	}
	return nil
}

// recordParams folds entries per company. A job's technologies are linked to
// each of its categories, since the payload does not pair them one to one.
func recordParams(id, label string, result search.Result) map[string]any {
	type companyAcc struct {
		count int
		techs map[string]int
		order []string
		links map[[2]string]struct{}
		pairs [][2]string
	}

	var names []string
	byName := make(map[string]*companyAcc)

	for _, job := range result.Entries {
		name := search.CompanyName(job)
		acc, ok := byName[name]
		if !ok {
			acc = &companyAcc{techs: make(map[string]int), links: make(map[[2]string]struct{})}
			byName[name] = acc
			names = append(names, name)
		}
		acc.count++

		tags := search.TagsMatched(job)
		for _, tag := range tags {
			if _, seen := acc.techs[tag]; !seen {
				acc.order = append(acc.order, tag)
			}
			acc.techs[tag]++
		}
		for _, pair := range techCategoryPairs(tags, search.TagCategories(job)) {
			if _, seen := acc.links[pair]; seen {
				continue
			}
			acc.links[pair] = struct{}{}
			acc.pairs = append(acc.pairs, pair)
		}
	}

	companies := make([]map[string]any, 0, len(names))
	for _, name := range names {
		acc := byName[name]

		techs := make([]map[string]any, 0, len(acc.order))
		for _, tech := range acc.order {
			techs = append(techs, map[string]any{"name": tech, "count": acc.techs[tech]})
		}

		links := make([]map[string]any, 0, len(acc.pairs))
		for _, pair := range acc.pairs {
			links = append(links, map[string]any{"technology": pair[0], "category": pair[1]})
		}

		companies = append(companies, map[string]any{
			"name":         name,
			"count":        acc.count,
			"technologies": techs,
			"links":        links,
		})
	}

	return map[string]any{
		"search": map[string]any{
			"id":        id,
			"timestamp": result.Timestamp,
			"count":     result.Count,
			"label":     label,
		},
		"companies": companies,
	}
}

func techCategoryPairs(tags, categories []string) [][2]string {
	pairs := make([][2]string, 0, len(tags)*len(categories))
	for _, tag := range tags {
		for _, category := range categories {
			pairs = append(pairs, [2]string{tag, category})
		}
	}
	return pairs
}
