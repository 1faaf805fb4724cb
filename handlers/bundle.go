package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups the route handlers wired in main.
type HandlerBundle struct {
	// Slot search endpoints.
	FindSlotsHandler gin.HandlerFunc

	// Proposal endpoints.
	SendProposalHandler gin.HandlerFunc

	// Inbound push endpoints.
	InboundWebhookHandler gin.HandlerFunc

	// Negotiation record endpoints.
	ListNegotiationsHandler   gin.HandlerFunc
	GetNegotiationHandler     gin.HandlerFunc
	AbandonNegotiationHandler gin.HandlerFunc

	// Mailbox watch endpoints.
	RegisterWatchHandler gin.HandlerFunc
	StopWatchHandler     gin.HandlerFunc
}
