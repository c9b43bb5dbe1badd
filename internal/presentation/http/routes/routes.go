package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthplus/medipos-api/internal/config"
	"github.com/healthplus/medipos-api/internal/presentation/http/handler"
	"github.com/healthplus/medipos-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Invoice  *handler.InvoiceHandler
	Draft    *handler.DraftHandler
	Receipt  *handler.ReceiptHandler
	Advisory *handler.AdvisoryHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
			BurstSize:         cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerDraftRoutes(v1, h)
		registerInvoiceRoutes(v1, h)
		registerAdvisoryRoutes(v1, h)
		registerPrinterRoutes(v1, h)
	}

	return router
}

func registerDraftRoutes(v1 *gin.RouterGroup, h *Handlers) {
	draft := v1.Group("/draft")
	{
		draft.GET("", h.Draft.Get)
		draft.GET("/totals", h.Draft.Totals)
		draft.POST("/items", h.Draft.AddItem)
		draft.PATCH("/items/:id", h.Draft.UpdateItem)
		draft.DELETE("/items/:id", h.Draft.RemoveItem)
		draft.PUT("/customer", h.Draft.SetCustomer)
		draft.PUT("/discount", h.Draft.SetGlobalDiscount)
		draft.POST("/reset", h.Draft.Reset)
		draft.POST("/save", h.Draft.Save)
	}
}

func registerInvoiceRoutes(v1 *gin.RouterGroup, h *Handlers) {
	invoices := v1.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/print", h.Receipt.Print)
		invoices.GET("/:id/receipt.pdf", h.Receipt.ExportPDF)
	}
}

func registerAdvisoryRoutes(v1 *gin.RouterGroup, h *Handlers) {
	interactions := v1.Group("/interactions")
	{
		interactions.GET("/draft", h.Advisory.CheckDraft)
		interactions.POST("/check", h.Advisory.Check)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printer := v1.Group("/printer")
	{
		printer.GET("/status", h.Receipt.Status)
		printer.POST("/test", h.Receipt.TestPrint)
	}
}
