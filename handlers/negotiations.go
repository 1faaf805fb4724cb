package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	negotiationRepo "meetsync/database/repository/negotiation"
	"meetsync/models"
	"meetsync/utils"
)

// NegotiationHandler exposes the negotiation records for operators: listing
// outstanding proposals, inspecting one, and abandoning a thread that is
// never going to resolve.
type NegotiationHandler struct {
	Repo negotiationRepo.NegotiationRepository
}

func NewNegotiationHandler(repo negotiationRepo.NegotiationRepository) *NegotiationHandler {
	return &NegotiationHandler{Repo: repo}
}

// ListNegotiationsHandler lists negotiations by status (default: proposed).
func (h *NegotiationHandler) ListNegotiationsHandler(c *gin.Context) {
	status := c.DefaultQuery("status", models.NegotiationProposed)
	switch status {
	case models.NegotiationProposed, models.NegotiationResolved, models.NegotiationAbandoned:
	default:
		utils.JSONError(c, http.StatusBadRequest, "invalid status", status)
		return
	}

	items, err := h.Repo.ListByStatus(c.Request.Context(), status)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list negotiations", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"negotiations": items})
}

// GetNegotiationHandler fetches one negotiation by thread identity.
func (h *NegotiationHandler) GetNegotiationHandler(c *gin.Context) {
	threadID := c.Param("threadId")
	n, err := h.Repo.FindByThreadID(c.Request.Context(), threadID)
	if err != nil {
		if errors.Is(err, negotiationRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "negotiation not found", threadID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch negotiation", err.Error())
		return
	}
	c.JSON(http.StatusOK, n)
}

// AbandonNegotiationHandler moves a proposed negotiation to abandoned. This
// is the operator-driven give-up path for threads whose replies never parse.
func (h *NegotiationHandler) AbandonNegotiationHandler(c *gin.Context) {
	threadID := c.Param("threadId")
	n, err := h.Repo.MarkAbandoned(c.Request.Context(), threadID)
	if err != nil {
		switch {
		case errors.Is(err, negotiationRepo.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "negotiation not found", threadID)
		case errors.Is(err, negotiationRepo.ErrAlreadyResolved):
			utils.JSONError(c, http.StatusConflict, "negotiation already settled", threadID)
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to abandon negotiation", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, n)
}
