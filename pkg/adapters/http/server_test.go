package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/waymark"
	waymarkhttp "github.com/aretw0/waymark/pkg/adapters/http"
	"github.com/aretw0/waymark/pkg/adapters/memory"
	"github.com/aretw0/waymark/pkg/domain"
	"github.com/aretw0/waymark/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, opts ...waymarkhttp.Option) (http.Handler, *memory.Store) {
	t.Helper()

	explode := func(r domain.Resource) (bool, error) {
		if r.(*domain.Record).Attributes["state"] == "broken" {
			return false, errors.New("guard exploded")
		}
		return false, nil
	}
	reg := dsl.New("article").
		Add("publish").If(`state == "draft"`).Href("/articles/{id}/publish").Method("POST").
		Add("explode").WhenFunc(explode).Href("/articles/{id}/explode").
		MustBuild()
	cat, err := domain.NewCatalog(reg)
	require.NoError(t, err)

	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.NewRecord("article", "1", map[string]any{"state": "draft", "title": "Hello"})))
	require.NoError(t, store.Save(ctx, domain.NewRecord("article", "2", map[string]any{"state": "published"})))
	require.NoError(t, store.Save(ctx, domain.NewRecord("article", "3", map[string]any{"state": "broken"})))
	require.NoError(t, store.Save(ctx, domain.NewRecord("invoice", "9", nil)))

	return waymarkhttp.NewHandler(waymark.New(cat), store, opts...), store
}

func get(h http.Handler, target, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetResource_Linked(t *testing.T) {
	h, _ := setup(t)

	w := get(h, "/article/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"id": "1", "state": "draft", "title": "Hello",
		"link": [{"rel": "publish", "href": "http://example.com/articles/1/publish", "method": "POST"}],
		"following_states": ["publish"]
	}`, w.Body.String())
}

func TestGetResource_NoTransitions(t *testing.T) {
	h, _ := setup(t)

	w := get(h, "/article/2", "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"2","state":"published"}`, w.Body.String())
}

func TestGetResource_LinksDisabled(t *testing.T) {
	h, _ := setup(t)

	w := get(h, "/article/1?links=false", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"1","state":"draft","title":"Hello"}`, w.Body.String())
}

func TestGetResource_Negotiation(t *testing.T) {
	h, _ := setup(t)

	w := get(h, "/article/1", "application/xml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `<link rel="publish" href="http://example.com/articles/1/publish" method="POST"></link>`)

	w = get(h, "/article/1?format=yaml", "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "state: draft")

	w = get(h, "/article/1", "image/png")
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
}

func TestGetResource_BaseURL(t *testing.T) {
	h, _ := setup(t, waymarkhttp.WithBaseURL("https://api.example.org/v1/"))

	w := get(h, "/article/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"href":"https://api.example.org/articles/1/publish"`)
}

func TestGetResource_Errors(t *testing.T) {
	h, _ := setup(t)

	tests := []struct {
		name   string
		target string
		code   int
	}{
		{"unknown id", "/article/404", http.StatusNotFound},
		{"unknown kind", "/invoice/9", http.StatusNotFound},
		{"guard failure", "/article/3", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(h, tt.target, "")
			assert.Equal(t, tt.code, w.Code)
			assert.NotContains(t, w.Body.String(), `"id"`, "no partial document")
		})
	}
}

func TestListResources(t *testing.T) {
	h, _ := setup(t)

	w := get(h, "/article", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Kind  string        `json:"kind"`
		Count int           `json:"count"`
		Link  []domain.Link `json:"link"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, "http://example.com/article/1", resp.Link[0].Href)

	w = get(h, "/invoice", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListResources_EscapesIDs(t *testing.T) {
	h, store := setup(t)
	require.NoError(t, store.Save(context.Background(), domain.NewRecord("article", "a b?c#d/e", nil)))

	w := get(h, "/article", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Link []domain.Link `json:"link"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Link, 4)
	assert.Equal(t, "http://example.com/article/a%20b%3Fc%23d%2Fe", resp.Link[3].Href)
}

// brokenWriter fails every body write.
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestHealthAndInfo_LogEncodeFailures(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	h, _ := setup(t, waymarkhttp.WithLogger(logger))

	for _, target := range []string{"/health", "/info"} {
		h.ServeHTTP(brokenWriter{httptest.NewRecorder()}, httptest.NewRequest("GET", target, nil))
	}
	assert.Contains(t, logs.String(), "GetHealth response encode failed")
	assert.Contains(t, logs.String(), "GetInfo response encode failed")
}

func TestHealthAndInfo(t *testing.T) {
	h, _ := setup(t)

	w := get(h, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = get(h, "/info", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), waymark.Version)
}

func TestMetricsMount(t *testing.T) {
	h, _ := setup(t)
	w := get(h, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "/metrics is only mounted on request")

	h, _ = setup(t, waymarkhttp.WithMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	})))
	w = get(h, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "metrics", w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	h, _ := setup(t)
	req := httptest.NewRequest("OPTIONS", "/article/1", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
