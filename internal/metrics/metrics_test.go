package metrics_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/waymark/internal/metrics"
	"github.com/aretw0/waymark/pkg/codec"
	"github.com/aretw0/waymark/pkg/hypermedia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Observe(t *testing.T) {
	rec := metrics.New()
	hooks := rec.Hooks()

	hooks.OnRender(&hypermedia.RenderEvent{Kind: "article", Format: codec.JSON, Outcome: hypermedia.OutcomeLinked, Links: 2})
	hooks.OnRender(&hypermedia.RenderEvent{Kind: "article", Format: codec.JSON, Outcome: hypermedia.OutcomeLinked, Links: 1})
	hooks.OnRender(&hypermedia.RenderEvent{Kind: "article", Format: codec.XML, Outcome: hypermedia.OutcomeNoController})
	hooks.OnRender(&hypermedia.RenderEvent{Format: codec.JSON, Outcome: hypermedia.OutcomeFailed, Err: errors.New("boom")})

	families, err := rec.Registry().Gather()
	require.NoError(t, err)

	series := make(map[string]int)
	for _, mf := range families {
		series[mf.GetName()] = len(mf.GetMetric())
	}
	assert.Equal(t, 3, series["waymark_renders_total"], "one series per label set")
	assert.Equal(t, 1, series["waymark_links_total"])

	for _, mf := range families {
		if mf.GetName() != "waymark_links_total" {
			continue
		}
		assert.Equal(t, float64(3), mf.GetMetric()[0].GetCounter().GetValue())
	}
}

func TestRecorder_Handler(t *testing.T) {
	rec := metrics.New()
	rec.Observe(&hypermedia.RenderEvent{Kind: "order", Format: codec.YAML, Outcome: hypermedia.OutcomeNoTransitions})

	srv := httptest.NewServer(rec.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `waymark_renders_total{format="yaml",kind="order",outcome="no_transitions"} 1`)
	assert.Contains(t, string(body), "waymark_process_start_time_seconds")
}
