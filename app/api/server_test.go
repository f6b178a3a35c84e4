package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lysyi3m/bc-mrss/app/media"
	"github.com/lysyi3m/bc-mrss/app/pipeline"
)

type fakePipeline struct {
	result *pipeline.Result
	err    error
	runs   int
}

func (f *fakePipeline) Run(ctx context.Context) (*pipeline.Result, error) {
	f.runs++
	return f.result, f.err
}

func serve(t *testing.T, p PipelineInterface, path string) *httptest.ResponseRecorder {
	t.Helper()
	server := NewServer(NewHandler(p, "test"))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetFeed_Success(t *testing.T) {
	p := &fakePipeline{result: &pipeline.Result{Document: "<rss></rss>\n", Items: 3}}

	rec := serve(t, p, "/feed.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "3", rec.Header().Get("X-Feed-Items"))
	assert.Equal(t, "<rss></rss>\n", rec.Body.String())
	assert.Equal(t, 1, p.runs)
}

func TestGetFeed_Failures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"upstream unavailable", &pipeline.StageError{Stage: pipeline.StateFetching, Err: &media.Error{Kind: media.KindUpstreamUnavailable}}, http.StatusBadGateway},
		{"bad response", &media.Error{Kind: media.KindUpstreamBadResponse}, http.StatusBadGateway},
		{"no source", &pipeline.StageError{Stage: pipeline.StateEnriching, Err: &media.Error{Kind: media.KindNoSuitableSource, MediaID: "x"}}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakePipeline{err: tt.err}, "/feed.xml")
			assert.Equal(t, tt.status, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
	}
}

func TestGetHealth(t *testing.T) {
	rec := serve(t, &fakePipeline{}, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestMetricsEndpoint(t *testing.T) {
	p := &fakePipeline{result: &pipeline.Result{Document: "<rss/>", Items: 1}}
	serve(t, p, "/feed.xml")

	rec := serve(t, p, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "bcmrss_feed_items"))
}
