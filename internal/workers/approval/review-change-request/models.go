// internal/workers/approval/review-change-request/models.go
package reviewchangerequest

import "project-tracker/internal/models"

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type Input struct {
	RequestID string `json:"requestId"`
	Approver  string `json:"approver"`
	Action    string `json:"action"`
	Reason    string `json:"reason,omitempty"`
}

// Output feeds the process gateways: Final ends the review loop.
type Output struct {
	RequestID string                `json:"requestId"`
	Status    models.ApprovalStatus `json:"status"`
	Approved  bool                  `json:"approved"`
	Final     bool                  `json:"final"`
	Approver  string                `json:"approver"`
}
