// internal/models/notification.go
package models

type Notification struct {
	ID              string `json:"id"`
	ChangeRequestID string `json:"changeRequestId"`
	Channel         string `json:"channel"` // "email", "sms"
	Recipient       string `json:"recipient"`
	Status          string `json:"status"` // "sent", "failed", "disabled"
	MessageID       string `json:"messageId,omitempty"`
	SentAt          string `json:"sentAt"`
}
