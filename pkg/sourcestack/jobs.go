package sourcestack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

const jobsResource = "jobs"

// Jobs exposes the /jobs endpoint.
// See https://sourcestack.co/docs/example-queries/#jobs
type Jobs struct {
	client *Client
}

// All fetches jobs without any filter
func (j *Jobs) All(ctx context.Context) ([]Job, error) {
	return j.List(ctx, nil)
}

// ByName fetches jobs whose title matches name
func (j *Jobs) ByName(ctx context.Context, name string, exact bool) ([]Job, error) {
	return j.List(ctx, url.Values{
		"name":  {name},
		"exact": {strconv.FormatBool(exact)},
	})
}

// ByParent fetches jobs posted by companies under a parent company
func (j *Jobs) ByParent(ctx context.Context, parent string) ([]Job, error) {
	return j.List(ctx, url.Values{"parent": {parent}})
}

// ByURL fetches jobs for a company domain
func (j *Jobs) ByURL(ctx context.Context, companyURL string) ([]Job, error) {
	return j.List(ctx, url.Values{"url": {companyURL}})
}

// ByUsesProduct fetches jobs mentioning a product
func (j *Jobs) ByUsesProduct(ctx context.Context, product string, exact bool) ([]Job, error) {
	return j.List(ctx, url.Values{
		"uses_product": {product},
		"exact":        {strconv.FormatBool(exact)},
	})
}

// ByUsesCategory fetches jobs mentioning any product in a category
func (j *Jobs) ByUsesCategory(ctx context.Context, category string, exact bool) ([]Job, error) {
	return j.List(ctx, url.Values{
		"uses_category": {category},
		"exact":         {strconv.FormatBool(exact)},
	})
}

// List issues GET /jobs with arbitrary query parameters
func (j *Jobs) List(ctx context.Context, params url.Values) ([]Job, error) {
	var raw json.RawMessage
	if err := j.client.Get(ctx, jobsResource, params, &raw); err != nil {
		return nil, err
	}
	return decodeJobs(raw)
}

// SearchAdvanced issues POST /jobs with a filter body
func (j *Jobs) SearchAdvanced(ctx context.Context, query AdvancedQuery, params url.Values) ([]Job, error) {
	var raw json.RawMessage
	if err := j.client.Post(ctx, jobsResource, query, params, &raw); err != nil {
		return nil, err
	}
	return decodeJobs(raw)
}

// decodeJobs accepts both a bare array and the {"data": [...]} envelope
func decodeJobs(raw json.RawMessage) ([]Job, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Job{}, nil
	}

	if trimmed[0] == '[' {
		var jobs []Job
		if err := json.Unmarshal(trimmed, &jobs); err != nil {
			return nil, fmt.Errorf("sourcestack: decode jobs: %w", err)
		}
		return jobs, nil
	}

	var envelope jobsEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("sourcestack: decode jobs envelope: %w", err)
	}
	if envelope.Data == nil {
		return []Job{}, nil
	}
	return envelope.Data, nil
}
