// internal/models/change_request.go
package models

import (
	"fmt"
	"time"
)

// ApprovalStatus is the state of a change request.
type ApprovalStatus string

const (
	ApprovalPendingLevel2 ApprovalStatus = "待部门主任审核"
	ApprovalPendingLevel3 ApprovalStatus = "待总经理审批"
	ApprovalApproved      ApprovalStatus = "已生效"
	ApprovalRejected      ApprovalStatus = "已驳回"
)

// Terminal reports whether no further transition is possible.
func (s ApprovalStatus) Terminal() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// ChangeKind selects which scalar field a change targets.
type ChangeKind string

const (
	ChangeProgress ChangeKind = "progress"
	ChangeStatus   ChangeKind = "status"
	ChangePayment  ChangeKind = "payment"
)

type ProgressChange struct {
	Old int `json:"old"`
	New int `json:"new"`
}

type StatusChange struct {
	Old ProjectStatus `json:"old"`
	New ProjectStatus `json:"new"`
}

type PaymentChange struct {
	Old int64 `json:"old"`
	New int64 `json:"new"`
}

// ProjectChange is a tagged union: exactly one payload matches Kind.
type ProjectChange struct {
	Kind     ChangeKind      `json:"kind"`
	Progress *ProgressChange `json:"progress,omitempty"`
	Status   *StatusChange   `json:"status,omitempty"`
	Payment  *PaymentChange  `json:"payment,omitempty"`
}

func NewProgressChange(from, to int) ProjectChange {
	return ProjectChange{Kind: ChangeProgress, Progress: &ProgressChange{Old: from, New: to}}
}

func NewStatusChange(from, to ProjectStatus) ProjectChange {
	return ProjectChange{Kind: ChangeStatus, Status: &StatusChange{Old: from, New: to}}
}

func NewPaymentChange(from, to int64) ProjectChange {
	return ProjectChange{Kind: ChangePayment, Payment: &PaymentChange{Old: from, New: to}}
}

// Validate checks the tag/payload pairing and the value domain of the new value.
func (c ProjectChange) Validate() error {
	set := 0
	for _, present := range []bool{c.Progress != nil, c.Status != nil, c.Payment != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("change must carry exactly one payload, got %d", set)
	}

	switch c.Kind {
	case ChangeProgress:
		if c.Progress == nil {
			return fmt.Errorf("progress change without progress payload")
		}
		if c.Progress.New < 0 || c.Progress.New > 100 {
			return fmt.Errorf("progress %d out of range 0-100", c.Progress.New)
		}
	case ChangeStatus:
		if c.Status == nil {
			return fmt.Errorf("status change without status payload")
		}
		if !c.Status.New.Valid() {
			return fmt.Errorf("unknown status %q", c.Status.New)
		}
	case ChangePayment:
		if c.Payment == nil {
			return fmt.Errorf("payment change without payment payload")
		}
		if c.Payment.New < 0 {
			return fmt.Errorf("payment %d is negative", c.Payment.New)
		}
	default:
		return fmt.Errorf("unknown change kind %q", c.Kind)
	}
	return nil
}

// Label is the display name of the targeted field.
func (c ProjectChange) Label() string {
	switch c.Kind {
	case ChangeProgress:
		return "项目进度"
	case ChangeStatus:
		return "项目阶段"
	case ChangePayment:
		return "累计回款"
	}
	return string(c.Kind)
}

// Describe renders old and new values the way the approval list shows them.
func (c ProjectChange) Describe() (oldValue, newValue string) {
	switch {
	case c.Progress != nil:
		return fmt.Sprintf("%d%%", c.Progress.Old), fmt.Sprintf("%d%%", c.Progress.New)
	case c.Status != nil:
		return string(c.Status.Old), string(c.Status.New)
	case c.Payment != nil:
		return fmt.Sprintf("¥%d万", c.Payment.Old), fmt.Sprintf("¥%d万", c.Payment.New)
	}
	return "", ""
}

// ChangeRequest tracks one submitted change through the approval levels.
type ChangeRequest struct {
	ID          string         `json:"id"`
	ProjectID   string         `json:"projectId"`
	ProjectName string         `json:"projectName"`
	Applicant   string         `json:"applicant"`
	ApplicantID string         `json:"applicantId"`
	SubmitDate  string         `json:"submitDate"`
	Status      ApprovalStatus `json:"status"`
	Change      ProjectChange  `json:"change"`

	Level2Approver string `json:"level2Approver,omitempty"`
	Level2Date     string `json:"level2Date,omitempty"`
	Level3Approver string `json:"level3Approver,omitempty"`
	Level3Date     string `json:"level3Date,omitempty"`
	RejectReason   string `json:"rejectReason,omitempty"`
}

// DateString formats a timestamp the way request dates are stored.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}
