// internal/workers/generation/rebuild-catalog/handler.go
package rebuildcatalog

import (
	"context"
	"encoding/json"
	"fmt"

	"project-tracker/internal/catalog"
	"project-tracker/internal/common/errors"
	"project-tracker/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "rebuild-catalog"
)

type Rebuilder interface {
	Rebuild(ctx context.Context, seed int64) (*catalog.BuildResult, error)
	Store() *catalog.Store
}

type Handler struct {
	config     *Config
	catalog    Rebuilder
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, catalog Rebuilder, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		catalog:    catalog,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if job.Variables != "" {
		if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
			h.errHandler.HandleJobError(ctx, client, job, errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
			return
		}
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	seed := input.Seed
	if seed == 0 {
		seed = h.config.Seed
	}

	res, err := h.catalog.Rebuild(ctx, seed)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewTimeoutError(TaskType, ctx.Err())
		}
		return nil, err
	}

	byCategory := make(map[string]int)
	for _, p := range h.catalog.Store().All() {
		byCategory[string(p.Type)]++
	}

	return &Output{
		Seed:       res.Seed,
		Projects:   res.Projects,
		Violations: res.Violations,
		DurationMs: res.Duration.Milliseconds(),
		ByCategory: byCategory,
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
