// internal/workers/approval/notify-approver/handler.go
package notifyapprover

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"project-tracker/internal/common/errors"
	"project-tracker/internal/common/logger"
	"project-tracker/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "notify-approver"

	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type RequestSource interface {
	Get(requestID string) (models.ChangeRequest, error)
}

type SignerDirectory interface {
	Signers(status models.ApprovalStatus) []models.UserProfile
	Lookup(nameOrID string) (models.UserProfile, bool)
}

// EmailSender is satisfied by the SES client.
type EmailSender interface {
	SendText(ctx context.Context, from, to, subject, body string) (string, error)
}

// SMSSender is satisfied by the SNS client.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, senderID, message string) (string, error)
}

type Handler struct {
	config     *Config
	requests   RequestSource
	directory  SignerDirectory
	email      EmailSender
	sms        SMSSender
	now        func() time.Time
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, requests RequestSource, directory SignerDirectory, email EmailSender, sms SMSSender, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		requests:   requests,
		directory:  directory,
		email:      email,
		sms:        sms,
		now:        time.Now,
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
	if input.RequestID == "" {
		return nil, errors.NewInvalidInputError("requestId is required")
	}

	req, err := h.requests.Get(input.RequestID)
	if err != nil {
		return nil, err
	}

	output := &Output{RequestID: req.ID, Status: req.Status, Notifications: []models.Notification{}}
	if req.Status.Terminal() {
		return h.notifyApplicant(ctx, req, output)
	}

	signers := h.directory.Signers(req.Status)
	if len(signers) == 0 {
		h.logger.Info("No approver to notify", map[string]interface{}{
			"requestId": req.ID,
			"status":    string(req.Status),
		})
		return output, nil
	}

	subject, body := composeMessage(req)
	var lastErr error

	for _, u := range signers {
		if err := h.sendEmail(ctx, req.ID, u.Email, subject, body, output); err != nil {
			lastErr = err
		}
		if h.config.SMSEnabled && h.sms != nil && u.Phone != "" {
			id, err := h.sms.SendSMS(ctx, u.Phone, h.config.SenderID, body)
			output.add(h.record(req.ID, ChannelSMS, u.Phone, id, err))
			if err != nil {
				lastErr = errors.NewNotificationSendFailedError(ChannelSMS, err)
			}
		}
	}

	// Partial delivery completes the job; a retry would resend the
	// messages that already went out.
	if output.Sent == 0 && output.Failed > 0 {
		return nil, lastErr
	}

	h.logger.Info("Approvers notified", map[string]interface{}{
		"requestId": req.ID,
		"sent":      output.Sent,
		"failed":    output.Failed,
	})
	return output, nil
}

// notifyApplicant e-mails the outcome of a finished request to whoever
// filed it. Applicants missing from the directory are skipped.
func (h *Handler) notifyApplicant(ctx context.Context, req models.ChangeRequest, output *Output) (*Output, error) {
	applicant, ok := h.directory.Lookup(req.ApplicantID)
	if !ok {
		applicant, ok = h.directory.Lookup(req.Applicant)
	}
	if !ok || applicant.Email == "" {
		h.logger.Info("No applicant address to notify", map[string]interface{}{
			"requestId": req.ID,
			"applicant": req.Applicant,
		})
		return output, nil
	}

	subject, body := composeOutcome(req)
	if err := h.sendEmail(ctx, req.ID, applicant.Email, subject, body, output); err != nil {
		return nil, err
	}
	h.logger.Info("Applicant notified", map[string]interface{}{
		"requestId": req.ID,
		"status":    string(req.Status),
	})
	return output, nil
}

func (h *Handler) sendEmail(ctx context.Context, requestID, to, subject, body string, output *Output) error {
	if !h.config.EmailEnabled || h.email == nil || to == "" {
		return nil
	}
	id, err := h.email.SendText(ctx, h.config.FromEmail, to, subject, body)
	output.add(h.record(requestID, ChannelEmail, to, id, err))
	if err != nil {
		return errors.NewNotificationSendFailedError(ChannelEmail, err)
	}
	return nil
}

func (o *Output) add(n models.Notification) {
	o.Notifications = append(o.Notifications, n)
	if n.Status == "sent" {
		o.Sent++
	} else {
		o.Failed++
	}
}

func (h *Handler) record(requestID, channel, recipient, messageID string, err error) models.Notification {
	n := models.Notification{
		ID:              uuid.NewString(),
		ChangeRequestID: requestID,
		Channel:         channel,
		Recipient:       recipient,
		Status:          "sent",
		MessageID:       messageID,
		SentAt:          h.now().Format(time.RFC3339),
	}
	if err != nil {
		n.Status = "failed"
		h.logger.Warn("Notification failed", map[string]interface{}{
			"requestId": requestID,
			"channel":   channel,
			"error":     err.Error(),
		})
	}
	return n
}

func composeMessage(req models.ChangeRequest) (subject, body string) {
	oldValue, newValue := req.Change.Describe()
	subject = fmt.Sprintf("[项目变更审批] %s", req.ProjectName)
	body = fmt.Sprintf("%s 申请变更「%s」的%s：%s → %s。当前状态：%s，请登录系统处理。",
		req.Applicant, req.ProjectName, req.Change.Label(), oldValue, newValue, req.Status)
	return subject, body
}

func composeOutcome(req models.ChangeRequest) (subject, body string) {
	oldValue, newValue := req.Change.Describe()
	subject = fmt.Sprintf("[项目变更%s] %s", req.Status, req.ProjectName)
	body = fmt.Sprintf("您提交的「%s」%s变更（%s → %s）%s。",
		req.ProjectName, req.Change.Label(), oldValue, newValue, req.Status)
	if req.Status == models.ApprovalRejected && req.RejectReason != "" {
		body += fmt.Sprintf("驳回原因：%s。", req.RejectReason)
	}
	return subject, body
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
