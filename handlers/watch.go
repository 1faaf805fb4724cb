package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetsync/config"
	"meetsync/services/mail"
	"meetsync/services/proposal"
	"meetsync/utils"
)

// WatchHandler manages the Gmail mailbox watch that feeds the inbound
// webhook.
type WatchHandler struct {
	Mail   mail.MailTransport
	Labels *proposal.LabelCache
}

func NewWatchHandler(transport mail.MailTransport, labels *proposal.LabelCache) *WatchHandler {
	return &WatchHandler{Mail: transport, Labels: labels}
}

// RegisterWatchHandler ensures the meeting label exists and points the
// mailbox watch at the configured Pub/Sub topic, scoped to that label.
func (h *WatchHandler) RegisterWatchHandler(c *gin.Context) {
	topic := config.AppConfig.PubSubTopic
	if topic == "" {
		utils.JSONError(c, http.StatusPreconditionFailed, "watch not configured", "PUBSUB_TOPIC is empty")
		return
	}

	label, err := h.Labels.Ensure(c.Request.Context(), config.AppConfig.MeetingLabel)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "label init error", err.Error())
		return
	}

	handle, err := h.Mail.Watch(c.Request.Context(), topic, label.ID)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "watch setup error", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gmail watch configured", "watch": handle})
}

// StopWatchHandler tears the mailbox watch down.
func (h *WatchHandler) StopWatchHandler(c *gin.Context) {
	if err := h.Mail.StopWatch(c.Request.Context()); err != nil {
		utils.JSONError(c, http.StatusBadGateway, "watch teardown error", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gmail watch stopped"})
}
