// internal/workers/approval/submit-change-request/models.go
package submitchangerequest

import "project-tracker/internal/models"

type Input struct {
	ProjectID string               `json:"projectId"`
	Applicant string               `json:"applicant"`
	Change    models.ProjectChange `json:"change"`
}

type Output struct {
	RequestID   string                `json:"requestId"`
	Status      models.ApprovalStatus `json:"status"`
	ProjectName string                `json:"projectName"`
	Field       string                `json:"field"`
	OldValue    string                `json:"oldValue"`
	NewValue    string                `json:"newValue"`
	SubmitDate  string                `json:"submitDate"`
}
