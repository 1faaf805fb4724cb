package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meetsync/models"
	"meetsync/services/proposal"
	"meetsync/utils"
)

// ProposalHandler serves outbound proposal runs.
type ProposalHandler struct {
	Service proposal.ProposalService
}

func NewProposalHandler(svc proposal.ProposalService) *ProposalHandler {
	return &ProposalHandler{Service: svc}
}

// SendProposalHandler runs the proposal saga for the given attendee and
// slots. The response always makes clear whether mail was delivered, so a
// caller never retries a run that already sent.
func (h *ProposalHandler) SendProposalHandler(c *gin.Context) {
	var req models.ProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Service.SendProposal(c.Request.Context(), req)
	if err != nil {
		var persistErr *proposal.PersistError
		if errors.As(err, &persistErr) {
			// Mail already left; surface the identities so the record can
			// be re-created out of band instead of retrying the send.
			c.JSON(http.StatusBadGateway, gin.H{
				"error":     "proposal sent but not recorded; do not retry",
				"details":   persistErr.Error(),
				"threadId":  persistErr.ThreadID,
				"messageId": persistErr.MessageID,
			})
			return
		}

		var labelErr *proposal.LabelInitError
		var draftErr *proposal.DraftError
		var sendErr *proposal.SendError
		switch {
		case errors.As(err, &labelErr):
			utils.JSONError(c, http.StatusBadGateway, "label init error", labelErr.Error())
		case errors.As(err, &draftErr):
			utils.JSONError(c, http.StatusBadGateway, "draft error", draftErr.Error())
		case errors.As(err, &sendErr):
			utils.JSONError(c, http.StatusBadGateway, "send error", sendErr.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "proposal failed", err.Error())
		}
		return
	}

	resp := gin.H{
		"message":      "Proposal sent, labeled & recorded!",
		"threadId":     result.ThreadID,
		"messageId":    result.MessageID,
		"draft":        result.Draft,
		"labelApplied": result.LabelApplied,
	}
	if result.Warning != "" {
		resp["message"] = "Proposal sent & recorded (labeling failed)"
		resp["warning"] = result.Warning
	}
	c.JSON(http.StatusOK, resp)
}
