package api

import (
	"context"

	"github.com/lysyi3m/bc-mrss/app/pipeline"
)

type PipelineInterface interface {
	Run(ctx context.Context) (*pipeline.Result, error)
}

var _ PipelineInterface = (*pipeline.Pipeline)(nil)

type Handler struct {
	pipeline PipelineInterface
	version  string
}
