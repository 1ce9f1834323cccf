// internal/workers/generation/generate-stakeholder/handler.go
package generatestakeholder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"project-tracker/internal/common/errors"
	"project-tracker/internal/common/logger"
	"project-tracker/internal/generator"
	"project-tracker/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-stakeholder"
)

type ProjectSource interface {
	Get(projectID string) (models.Project, error)
}

type Handler struct {
	config     *Config
	projects   ProjectSource
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, projects ProjectSource, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		projects:   projects,
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
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errHandler.HandleJobError(ctx, client, job, errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewTimeoutError(TaskType, err)
	}

	prefix, index, international, location := input.IDPrefix, input.Index, input.International, input.Location
	if input.ProjectID != "" {
		if h.projects == nil {
			return nil, errors.NewInvalidInputError("projectId given but no catalog is attached")
		}
		p, err := h.projects.Get(input.ProjectID)
		if err != nil {
			return nil, err
		}
		prefix = p.ID
		index = len(p.Stakeholders)
		international = p.Type.IsInternational()
		location = p.Location
	}
	if prefix == "" {
		return nil, errors.NewInvalidInputError("projectId or idPrefix is required")
	}
	if location == "" {
		return nil, errors.NewInvalidInputError("location is required")
	}

	seed := pickSeed(input.Seed, h.config.Seed)
	g := generator.New(generator.NewSource(seed))
	s := g.Stakeholder(prefix, index, international, location)

	h.logger.Info("Stakeholder generated", map[string]interface{}{
		"stakeholderId": s.ID,
		"international": international,
		"seed":          seed,
	})

	return &Output{Stakeholder: s, Seed: seed}, nil
}

func pickSeed(job, configured int64) int64 {
	switch {
	case job != 0:
		return job
	case configured != 0:
		return configured
	}
	return time.Now().UnixNano()
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
