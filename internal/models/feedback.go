// internal/models/feedback.go
package models

type FeedbackStatus string

const (
	FeedbackPending    FeedbackStatus = "待处理"
	FeedbackAssigned   FeedbackStatus = "已指派"
	FeedbackInProgress FeedbackStatus = "处理中"
	FeedbackResolved   FeedbackStatus = "已响应"
)

func (s FeedbackStatus) Valid() bool {
	switch s {
	case FeedbackPending, FeedbackAssigned, FeedbackInProgress, FeedbackResolved:
		return true
	}
	return false
}

type Feedback struct {
	ID            string         `json:"id"`
	ProjectID     string         `json:"projectId"`
	StakeholderID string         `json:"stakeholderId"`
	Content       string         `json:"content"`
	ReceivedDate  string         `json:"receivedDate"`
	Status        FeedbackStatus `json:"status"`
	AssignedTo    string         `json:"assignedTo"`
	Response      string         `json:"response,omitempty"`
	IsUrgent      bool           `json:"isUrgent,omitempty"`
}
