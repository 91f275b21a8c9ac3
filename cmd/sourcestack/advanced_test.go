package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/sourcestack/internal/search"
)

func TestParseFilterFlag(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected map[string]any
		wantErr  bool
	}{
		{
			name:     "boolean value",
			in:       "remote:EQUALS:true",
			expected: map[string]any{"field": "remote", "operator": "EQUALS", "value": true},
		},
		{
			name:     "list value",
			in:       `tags_matched:contains_any:["Snowflake","dbt"]`,
			expected: map[string]any{"field": "tags_matched", "operator": "CONTAINS_ANY", "value": []any{"Snowflake", "dbt"}},
		},
		{
			name:     "string keeps colons",
			in:       "url:EQUALS:https://canva.com",
			expected: map[string]any{"field": "url", "operator": "EQUALS", "value": "https://canva.com"},
		},
		{
			name:     "number",
			in:       "salary:GREATER_THAN:100000",
			expected: map[string]any{"field": "salary", "operator": "GREATER_THAN", "value": float64(100000)},
		},
		{
			name:     "null stays a string",
			in:       "country:EQUALS:null",
			expected: map[string]any{"field": "country", "operator": "EQUALS", "value": "null"},
		},
		{
			name:    "missing value",
			in:      "remote:EQUALS",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFilterFlag(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCollectFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"field":"country","operator":"IN","value":["US","CA"]}]`), 0o600))

	raw, err := collectFilters(path, []string{"remote:EQUALS:true"})
	require.NoError(t, err)
	require.Len(t, raw, 2)

	filters, err := search.ParseFilters(raw)
	require.NoError(t, err)
	assert.Equal(t, "country", filters[0].Field)
	assert.Equal(t, search.OpIn, filters[0].Operator)
	assert.Equal(t, "remote", filters[1].Field)
}

func TestCollectFilters_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"field":"x"}`), 0o600))

	_, err := collectFilters(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON array")

	_, err = collectFilters(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func TestAdvancedCommand_EndToEnd(t *testing.T) {
	isolateEnv(t)

	var body map[string]any
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotQuery = r.URL.RawQuery
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		_, _ = w.Write([]byte(`{"data":[{"company_name":"Canva"},{"company_name":"Atlassian"}]}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{
		"--api-key", "k", "--base-url", srv.URL,
		"advanced", "--filter", "remote:EQUALS:true", "--limit", "10",
	})

	require.NoError(t, root.Execute())
	assert.Equal(t, "limit=10", gotQuery)
	assert.Equal(t, []any{map[string]any{"field": "remote", "operator": "EQUALS", "value": true}}, body["filters"])

	var result search.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 2, result.Count)
	assert.Nil(t, result.Pagination)
}

func TestAdvancedCommand_NoFilters(t *testing.T) {
	isolateEnv(t)

	root := newRootCmd()
	root.SetArgs([]string{"advanced"})

	err := root.Execute()
	assert.ErrorIs(t, err, search.ErrInvalidQuery)
}
