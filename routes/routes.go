package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"meetsync/handlers"
	"meetsync/utils"
)

// RegisterSlotRoutes registers slot-search endpoints.
func RegisterSlotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/slots")
	{
		api.POST("/find", hb.FindSlotsHandler)
	}
}

// RegisterProposalRoutes registers outbound proposal endpoints.
func RegisterProposalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/proposals")
	{
		api.POST("", hb.SendProposalHandler)
	}
}

// RegisterWebhookRoutes registers the inbound push receiver.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/webhook")
	{
		api.POST("/inbound", hb.InboundWebhookHandler)
	}
}

// RegisterNegotiationRoutes registers the negotiation record endpoints.
func RegisterNegotiationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/negotiations")
	{
		api.GET("", hb.ListNegotiationsHandler)
		api.GET("/:threadId", hb.GetNegotiationHandler)
		api.POST("/:threadId/abandon", hb.AbandonNegotiationHandler)
	}
}

// RegisterWatchRoutes registers mailbox watch management endpoints.
func RegisterWatchRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/watch")
	{
		api.POST("", hb.RegisterWatchHandler)
		api.DELETE("", hb.StopWatchHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes wires every endpoint group onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterSlotRoutes(r, hb)
	RegisterProposalRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterNegotiationRoutes(r, hb)
	RegisterWatchRoutes(r, hb)
}
