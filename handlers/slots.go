package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetsync/config"
	"meetsync/services/scheduler"
	"meetsync/utils"
)

// SlotsHandler serves open-slot searches.
type SlotsHandler struct {
	Availability scheduler.AvailabilityService
}

func NewSlotsHandler(availability scheduler.AvailabilityService) *SlotsHandler {
	return &SlotsHandler{Availability: availability}
}

// FindSlotsHandler computes candidate meeting slots on the host's primary
// calendar for the configured search window.
func (h *SlotsHandler) FindSlotsHandler(c *gin.Context) {
	var input struct {
		DurationMinutes int    `json:"durationMinutes"`
		MaxSlots        int    `json:"maxSlots"`
		CalendarID      string `json:"calendarId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if input.DurationMinutes <= 0 {
		input.DurationMinutes = config.AppConfig.DefaultDurationMin
	}
	if input.MaxSlots <= 0 {
		input.MaxSlots = config.AppConfig.MaxProposedSlots
	}
	if input.CalendarID == "" {
		input.CalendarID = "primary"
	}

	slots, err := h.Availability.OpenSlots(c.Request.Context(), input.CalendarID, input.DurationMinutes, input.MaxSlots)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "slot search failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
