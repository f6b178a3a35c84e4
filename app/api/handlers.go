package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/bc-mrss/app/media"
	"github.com/lysyi3m/bc-mrss/app/metrics"
	"github.com/lysyi3m/bc-mrss/app/pipeline"
)

func NewHandler(p PipelineInterface, version string) *Handler {
	return &Handler{
		pipeline: p,
		version:  version,
	}
}

// GetFeed runs one pipeline cycle per request. Nothing is cached between requests.
func (h *Handler) GetFeed(c *gin.Context) {
	result, err := h.pipeline.Run(c.Request.Context())
	if err != nil {
		slog.Error("Feed generation failed", "error", err, "kind", media.KindOf(err), "stage", failedStage(err))
		c.Status(statusFor(err))
		return
	}
	metrics.ObserveResult(result)

	c.Header("X-Feed-Items", strconv.Itoa(result.Items))
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(result.Document))
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	})
}

// statusFor maps upstream failures to 502 and everything else to 500.
func statusFor(err error) int {
	switch media.KindOf(err) {
	case media.KindUpstreamUnavailable, media.KindUpstreamBadResponse:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func failedStage(err error) string {
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage.String()
	}
	return ""
}
