// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"project-tracker/internal/common/metrics"
)

// ErrorHandler fails a job with retries or throws a BPMN error, depending
// on the code carried by the error.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Decision is what HandleJobError did with a job.
type Decision struct {
	Throw   bool
	Retries int
	BPMN    *BPMNError
}

// Decide picks retry or throw without touching the broker. jobRetries is
// the job's remaining retry count.
func Decide(err error, jobRetries int32) Decision {
	bpmnErr := ConvertToBPMNError(Normalize(err))
	if bpmnErr.Retries > 0 && jobRetries > 0 {
		retries := bpmnErr.Retries
		if int(jobRetries) < retries {
			retries = int(jobRetries)
		}
		return Decision{Retries: retries, BPMN: bpmnErr}
	}
	return Decision{Throw: true, BPMN: bpmnErr}
}

// Normalize returns the StandardError in err's chain, or wraps err as an
// internal error.
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return NewInternalError(err)
}

// HandleJobError reports a failed job to the broker.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := Normalize(err)
	decision := Decide(stdErr, job.Retries)
	h.logError(job, stdErr, decision)
	metrics.WorkerJobsFailed.WithLabelValues(job.Type, string(stdErr.Code)).Inc()

	vars, _ := json.Marshal(decision.BPMN.ToErrorVariables())

	if decision.Throw {
		cmd := client.NewThrowErrorCommand().
			JobKey(job.Key).
			ErrorCode(decision.BPMN.Code).
			ErrorMessage(decision.BPMN.Message)
		if withVars, verr := cmd.VariablesFromString(string(vars)); verr == nil {
			_, _ = withVars.Send(ctx)
			return
		}
		_, _ = cmd.Send(ctx)
		return
	}

	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(decision.Retries)).
		ErrorMessage(decision.BPMN.Message)
	if withVars, verr := cmd.VariablesFromString(string(vars)); verr == nil {
		_, _ = withVars.Send(ctx)
		return
	}
	_, _ = cmd.Send(ctx)
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, d Decision) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    d.BPMN.Code,
		"message":          d.BPMN.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"throw":            d.Throw,
		"retries":          d.Retries,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
