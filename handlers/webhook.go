package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"meetsync/cron"
	"meetsync/utils"
)

// TaskEnqueuer is the slice of asynq.Client the webhook needs.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// WebhookHandler receives Gmail push notifications via Pub/Sub.
type WebhookHandler struct {
	Queue TaskEnqueuer
}

func NewWebhookHandler(queue TaskEnqueuer) *WebhookHandler {
	return &WebhookHandler{Queue: queue}
}

// pubSubEnvelope is the Pub/Sub push wrapper; Message.Data is base64 JSON.
type pubSubEnvelope struct {
	Message struct {
		Data      string `json:"data"`
		MessageID string `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// gmailNotification is the decoded Gmail payload inside a push.
type gmailNotification struct {
	EmailAddress string `json:"emailAddress"`
	HistoryID    uint64 `json:"historyId"`
}

// InboundWebhookHandler acknowledges the push immediately and hands the
// history cursor to the background worker. Only an enqueue failure returns a
// non-2xx status, so Pub/Sub redelivers exactly the notifications we failed
// to queue; the correlator absorbs the resulting duplicates.
func (h *WebhookHandler) InboundWebhookHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var envelope pubSubEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil || envelope.Message.Data == "" {
		// Nothing processable; ack so the broker stops redelivering it.
		logger.Warn("Discarding malformed push envelope", zap.Error(err))
		c.Status(http.StatusNoContent)
		return
	}

	raw, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		logger.Warn("Discarding push with undecodable data", zap.Error(err))
		c.Status(http.StatusNoContent)
		return
	}

	var notif gmailNotification
	if err := json.Unmarshal(raw, &notif); err != nil || notif.HistoryID == 0 {
		logger.Warn("Discarding push with invalid notification payload",
			zap.ByteString("data", raw), zap.Error(err))
		c.Status(http.StatusNoContent)
		return
	}

	task, err := cron.NewInboundHistoryTask(notif.HistoryID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to build task", err.Error())
		return
	}
	if _, err := h.Queue.Enqueue(task); err != nil {
		// Refuse the ack; the broker will redeliver.
		utils.JSONError(c, http.StatusInternalServerError, "failed to enqueue notification", err.Error())
		return
	}

	logger.Info("Queued inbound notification",
		zap.Uint64("historyId", notif.HistoryID),
		zap.String("emailAddress", notif.EmailAddress))
	c.Status(http.StatusOK)
}
