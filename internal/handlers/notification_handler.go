package handlers

import (
	"log/slog"
	"net/http"

	"finledger/internal/dto"
	apperrors "finledger/internal/errors"
	"finledger/internal/notify"
	"finledger/internal/services"

	"github.com/labstack/echo/v4"
)

// NotificationHandler handles the notification test endpoint
type NotificationHandler struct {
	notifier notify.Notifier
	metrics  services.MetricsRecorderInterface
	logger   *slog.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifier notify.Notifier, metrics services.MetricsRecorderInterface, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

// notificationResult is the response body for the notification test endpoint
type notificationResult struct {
	Success bool    `json:"success"`
	Error   *string `json:"error"`
}

// TestNotification handles POST /test/notification. It pushes the given
// message through the configured channels and reports the outcome.
func (h *NotificationHandler) TestNotification(c echo.Context) error {
	var req dto.NotificationRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.notifier.Send(c.Request().Context(), req.Message); err != nil {
		h.logger.Error("notification send failed", "error", err)
		h.metrics.IncrementCounter("notifications", "failure")
		msg := err.Error()
		return c.JSON(http.StatusInternalServerError, notificationResult{
			Success: false,
			Error:   &msg,
		})
	}

	h.metrics.IncrementCounter("notifications", "success")
	return c.JSON(http.StatusOK, notificationResult{Success: true, Error: nil})
}
