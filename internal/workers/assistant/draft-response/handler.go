// internal/workers/assistant/draft-response/handler.go
package draftresponse

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"project-tracker/internal/common/errors"
	httpclient "project-tracker/internal/common/http"
	"project-tracker/internal/common/logger"
	"project-tracker/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "draft-response"
)

// Fixed replies shown to the user in place of a draft.
const (
	NotConfiguredMessage = "API Key not found. Please configure the environment variable."
	UnavailableMessage   = "AI 服务暂时不可用，请稍后重试。"
	EmptyDraftMessage    = "无法生成回复。"
)

// defaultRole stands in when the stakeholder is not on the project.
const defaultRole = "客户"

// Catalog resolves a feedback item and the project it belongs to.
type Catalog interface {
	Feedback(id string) (models.Feedback, error)
	Get(projectID string) (models.Project, error)
}

type Handler struct {
	config     *Config
	catalog    Catalog
	client     *httpclient.Client
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, catalog Catalog, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		catalog: catalog,
		// The job context carries the deadline.
		client:     httpclient.NewClient(0),
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

	// Job completion must not inherit an expired generation deadline.
	h.completeJob(context.Background(), client, job, output)
}

// execute never fails on the generation call itself: the user always gets
// a reply text, and ErrorCode says why it is a fallback.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.FeedbackID == "" {
		return nil, errors.NewInvalidInputError("feedbackId is required")
	}

	dc, projectID, err := h.resolve(input)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dc.Feedback) == "" {
		return nil, errors.NewInvalidInputError("feedback content is empty")
	}

	out := &Output{FeedbackID: input.FeedbackID, ProjectID: projectID}
	if h.config.APIKey == "" {
		out.Draft = NotConfiguredMessage
		return out, nil
	}
	out.Configured = true

	req := generateRequest{
		Prompt:      BuildPrompt(dc),
		MaxTokens:   h.config.MaxTokens,
		Temperature: h.config.Temperature,
	}
	headers := map[string]string{"Authorization": "Bearer " + h.config.APIKey}

	var resp generateResponse
	err = h.client.PostJSON(ctx, strings.TrimRight(h.config.GenAIBaseURL, "/")+"/api/ai/generate", headers, req, &resp)
	if err != nil {
		stdErr := errors.NewDraftFailedError(err)
		if stderrors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			stdErr = errors.NewDraftTimeoutError()
		}
		h.logger.Error("Draft generation failed", map[string]interface{}{
			"feedbackId": input.FeedbackID,
			"errorCode":  string(stdErr.Code),
			"error":      err.Error(),
		})
		out.Draft = UnavailableMessage
		out.ErrorCode = string(stdErr.Code)
		return out, nil
	}

	out.Draft = strings.TrimSpace(resp.Text)
	if out.Draft == "" {
		out.Draft = EmptyDraftMessage
	}

	h.logger.Info("Draft generated", map[string]interface{}{
		"feedbackId": input.FeedbackID,
		"length":     len([]rune(out.Draft)),
	})
	return out, nil
}

// resolve looks up the feedback item, its project and the stakeholder who
// raised it. A project or stakeholder that has since left the catalog
// leaves the matching fields blank.
func (h *Handler) resolve(input *Input) (DraftContext, string, error) {
	f, err := h.catalog.Feedback(input.FeedbackID)
	if err != nil {
		return DraftContext{}, "", err
	}

	dc := DraftContext{Feedback: f.Content, Role: defaultRole}
	if strings.TrimSpace(input.CustomerFeedback) != "" {
		dc.Feedback = input.CustomerFeedback
	}

	p, err := h.catalog.Get(f.ProjectID)
	if err != nil {
		h.logger.Warn("Feedback project not in catalog", map[string]interface{}{
			"feedbackId": f.ID,
			"projectId":  f.ProjectID,
		})
		return dc, f.ProjectID, nil
	}
	dc.ProjectName = p.Name
	dc.Category = string(p.Type)
	dc.Status = string(p.Status)
	for _, sh := range p.Stakeholders {
		if sh.ID == f.StakeholderID {
			dc.Stakeholder = sh.Name
			dc.Role = fmt.Sprintf("%s (%s)", sh.Name, sh.Role)
			break
		}
	}
	return dc, p.ID, nil
}

// BuildPrompt renders the project-manager reply prompt.
func BuildPrompt(dc DraftContext) string {
	var b strings.Builder
	b.WriteString("我是一个电力设计院的项目经理。\n")
	fmt.Fprintf(&b, "项目背景: 项目名称：%s，类型：%s，当前阶段：%s\n", dc.ProjectName, dc.Category, dc.Status)
	fmt.Fprintf(&b, "客户角色: %s\n", dc.Role)
	fmt.Fprintf(&b, "客户反馈/要求: \"%s\"\n\n", dc.Feedback)
	b.WriteString("请帮我草拟一份简短、专业、得体的回复建议。\n")
	b.WriteString("回复应当：\n")
	b.WriteString("1. 感谢客户的反馈。\n")
	b.WriteString("2. 确认我们已经收到并正在处理。\n")
	b.WriteString("3. 说明我们接下来的行动计划。\n")
	b.WriteString("4. 语气要诚恳、专业（工程行业标准）。\n\n")
	b.WriteString("请直接输出回复内容，不要包含其他解释。")
	return b.String()
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
