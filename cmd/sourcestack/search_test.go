package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/sourcestack/internal/search"
)

// isolateEnv clears every variable config.Load reads so sinks stay disabled
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LOG_LEVEL", "LOG_FORMAT", "MCP_HOST", "PORT",
		"SOURCESTACK_API_KEY", "SOURCESTACK_BASE_URL", "SOURCESTACK_TIMEOUT",
		"NEO4J_URI", "NEO4J_USERNAME", "NEO4J_PASSWORD",
		"GOOGLE_SHEETS_CREDENTIALS_PATH",
	} {
		t.Setenv(k, "")
	}
}

func parseSearchFlags(t *testing.T, args ...string) (search.Params, error) {
	t.Helper()
	cmd := newSearchCmd(&globalFlags{})
	require.NoError(t, cmd.ParseFlags(args))
	return paramsFromFlags(cmd)
}

func TestParamsFromFlags(t *testing.T) {
	t.Run("empty string counts as given", func(t *testing.T) {
		params, err := parseSearchFlags(t, "--name", "")
		require.NoError(t, err)
		require.NotNil(t, params.Name)
		assert.Equal(t, "", *params.Name)
		assert.Equal(t, []string{"name"}, params.Keys())
	})

	t.Run("unset flags stay absent", func(t *testing.T) {
		params, err := parseSearchFlags(t)
		require.NoError(t, err)
		assert.Empty(t, params.Keys())
	})

	t.Run("exact limit and extra", func(t *testing.T) {
		params, err := parseSearchFlags(t,
			"--uses-category", "Data Warehousing",
			"--exact=false",
			"--limit", "25",
			"--param", "country=US",
			"--param", "q=a=b",
		)
		require.NoError(t, err)
		require.NotNil(t, params.UsesCategory)
		assert.Equal(t, "Data Warehousing", *params.UsesCategory)
		require.NotNil(t, params.Exact)
		assert.False(t, *params.Exact)
		require.NotNil(t, params.Limit)
		assert.Equal(t, 25, *params.Limit)
		assert.Equal(t, map[string]string{"country": "US", "q": "a=b"}, params.Extra)
	})

	t.Run("two primary flags fail validation", func(t *testing.T) {
		params, err := parseSearchFlags(t, "--url", "canva.com", "--parent", "Canva")
		require.NoError(t, err)
		_, err = params.Request()
		assert.ErrorIs(t, err, search.ErrInvalidQuery)
	})

	t.Run("bad param", func(t *testing.T) {
		_, err := parseSearchFlags(t, "--name", "x", "--param", "novalue")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected key=value")
	})
}

func TestParseKeyValue(t *testing.T) {
	tests := []struct {
		in      string
		key     string
		value   string
		wantErr bool
	}{
		{in: "country=US", key: "country", value: "US"},
		{in: "empty=", key: "empty", value: ""},
		{in: " spaced =v", key: "spaced", value: "v"},
		{in: "=v", wantErr: true},
		{in: "none", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, v, err := parseKeyValue(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, k)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestSearchCommand_EndToEnd(t *testing.T) {
	isolateEnv(t)

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"company_name":"Canva","tags_matched":["AWS"],"tag_categories":["Cloud"]}]`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{
		"--api-key", "test-key",
		"--base-url", srv.URL,
		"--log-level", "error",
		"search", "--url", "https://www.canva.com", "--limit", "5",
	})

	require.NoError(t, root.Execute())
	assert.Equal(t, "limit=5&url=canva.com", gotQuery)

	var result search.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, search.StatusSuccess, result.Status)
	assert.Equal(t, 1, result.Count)
	require.NotNil(t, result.Pagination)
	assert.Equal(t, 5, result.Pagination.Limit)
}

func TestSearchCommand_PersistWithoutNeo4j(t *testing.T) {
	isolateEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"company_name":"Canva"}]`))
	}))
	defer srv.Close()

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--api-key", "k", "--base-url", srv.URL, "search", "--parent", "Canva", "--persist"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEO4J_URI")
}

func TestSearchCommand_InvalidBeforeNetwork(t *testing.T) {
	isolateEnv(t)

	root := newRootCmd()
	root.SetArgs([]string{"search", "--name", "a", "--uses-product", "b"})

	err := root.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, search.ErrInvalidQuery)
}
