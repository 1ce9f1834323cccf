// internal/workers/approval/review-change-request/handler.go
package reviewchangerequest

import (
	"context"
	"encoding/json"
	"fmt"

	"project-tracker/internal/common/errors"
	"project-tracker/internal/common/logger"
	"project-tracker/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "review-change-request"
)

type Reviewer interface {
	Approve(ctx context.Context, requestID, approver string) (models.ChangeRequest, error)
	Reject(ctx context.Context, requestID, approver, reason string) (models.ChangeRequest, error)
}

type Handler struct {
	config     *Config
	approvals  Reviewer
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, approvals Reviewer, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		approvals:  approvals,
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
	if input.RequestID == "" || input.Approver == "" {
		return nil, errors.NewInvalidInputError("requestId and approver are required")
	}

	var (
		req models.ChangeRequest
		err error
	)
	switch input.Action {
	case ActionApprove:
		req, err = h.approvals.Approve(ctx, input.RequestID, input.Approver)
	case ActionReject:
		req, err = h.approvals.Reject(ctx, input.RequestID, input.Approver, input.Reason)
	default:
		return nil, errors.NewInvalidInputError(fmt.Sprintf("unknown action %q", input.Action))
	}
	if err != nil {
		return nil, err
	}

	return &Output{
		RequestID: req.ID,
		Status:    req.Status,
		Approved:  req.Status == models.ApprovalApproved,
		Final:     req.Status.Terminal(),
		Approver:  input.Approver,
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
