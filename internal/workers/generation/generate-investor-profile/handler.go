// internal/workers/generation/generate-investor-profile/handler.go
package generateinvestorprofile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"project-tracker/internal/common/errors"
	"project-tracker/internal/common/logger"
	"project-tracker/internal/generator"
	"project-tracker/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-investor-profile"
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

	international, location := input.International, input.Location
	if input.ProjectID != "" && h.projects != nil {
		p, err := h.projects.Get(input.ProjectID)
		if err != nil {
			return nil, err
		}
		international = p.Type.IsInternational()
		location = p.Location
	}
	if location == "" {
		return nil, errors.NewInvalidInputError("projectId or location is required")
	}

	seed := input.Seed
	if seed == 0 {
		seed = h.config.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	profile := generator.New(generator.NewSource(seed)).InvestorProfile(international, location)
	if problems := profile.Validate(); len(problems) > 0 {
		return nil, errors.NewInternalError(fmt.Errorf("generated profile inconsistent: %s", strings.Join(problems, "; ")))
	}

	controlling := 0
	for _, sh := range profile.Shareholders {
		if sh.Type == models.ShareholderControlling {
			controlling, _ = sh.Percent()
		}
	}

	h.logger.Info("Investor profile generated", map[string]interface{}{
		"investor":     profile.Name,
		"shareholders": len(profile.Shareholders),
		"controlling":  controlling,
	})

	return &Output{Investor: profile, ControllingPercent: controlling, Seed: seed}, nil
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
