// internal/workers/approval/notify-approver/models.go
package notifyapprover

import "project-tracker/internal/models"

type Input struct {
	RequestID string `json:"requestId"`
}

type Output struct {
	RequestID     string                `json:"requestId"`
	Status        models.ApprovalStatus `json:"status"`
	Notifications []models.Notification `json:"notifications"`
	Sent          int                   `json:"sent"`
	Failed        int                   `json:"failed"`
}
