package dto

// NotificationRequest contains a message to push through the configured
// notification channels
type NotificationRequest struct {
	Message string `json:"message" validate:"required"`
}
