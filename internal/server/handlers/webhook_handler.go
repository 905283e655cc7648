package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/uzagro/omborbot/internal/domain/models"
	"github.com/uzagro/omborbot/internal/service/bot"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookHandler adapts Telegram webhook HTTP traffic to the bot service.
type WebhookHandler struct {
	svc         bot.Service
	secretToken string
	logger      *zap.Logger
}

// NewWebhookHandler constructs the HTTP handler adapter.
func NewWebhookHandler(svc bot.Service, secretToken string, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{svc: svc, secretToken: secretToken, logger: logger}
}

// Receive ingests webhook POST callbacks from the Telegram Bot API.
func (h *WebhookHandler) Receive(c *gin.Context) {
	if c.GetHeader(secretTokenHeader) != h.secretToken {
		h.logger.Warn("webhook secret token mismatch", zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var update models.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.Warn("invalid update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.svc.HandleUpdate(c.Request.Context(), update); err != nil {
		// Telegram retries non-200 responses, so processing failures are
		// logged and acknowledged rather than surfaced.
		h.logger.Error("failed processing update", zap.Int64("update_id", update.UpdateID), zap.Error(err))
	}

	c.Status(http.StatusOK)
}
