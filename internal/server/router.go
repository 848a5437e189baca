package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/seabloom/tidewed-backend/internal/handlers"
	"github.com/seabloom/tidewed-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string

	AuthMiddleware *middleware.AuthMiddleware

	HealthcheckHandler  *handlers.HealthcheckHandler
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	WeddingHandler      *handlers.WeddingHandler
	TaskHandler         *handlers.TaskHandler
	GuestHandler        *handlers.GuestHandler
	BudgetHandler       *handlers.BudgetHandler
	VendorHandler       *handlers.VendorHandler
	InspirationHandler  *handlers.InspirationHandler
	MessageHandler      *handlers.MessageHandler
	NoteHandler         *handlers.NoteHandler
	NotificationHandler *handlers.NotificationHandler
	DashboardHandler    *handlers.DashboardHandler
	RSVPHandler         *handlers.RSVPHandler
	SSEHandler          *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "tidewed"
	}
	router.Use(otelgin.Middleware(serviceName))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	if cfg.HealthcheckHandler != nil {
		router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	}

	api := router.Group("/api")
	if cfg.AuthHandler != nil {
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// The invite surface is deliberately unauthenticated: the wedding id in
	// the URL is a shared capability.
	if cfg.RSVPHandler != nil {
		router.GET("/invite/:weddingId", cfg.RSVPHandler.GetInvite)
		router.POST("/invite/:weddingId/rsvp", cfg.RSVPHandler.SubmitRSVP)
	}

	// Protected
	protected := api.Group("/")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}

	if cfg.AuthHandler != nil {
		protected.POST("/refresh", cfg.AuthHandler.Refresh)
		protected.POST("/logout", cfg.AuthHandler.Logout)
	}
	if cfg.UserHandler != nil {
		protected.GET("/me", cfg.UserHandler.GetMe)
		protected.PATCH("/me", cfg.UserHandler.UpdateMe)
		protected.POST("/me/avatar", cfg.UserHandler.UploadAvatar)
	}
	if cfg.WeddingHandler != nil {
		protected.GET("/wedding", cfg.WeddingHandler.GetMine)
		protected.PATCH("/wedding", cfg.WeddingHandler.UpdateDetails)
		protected.POST("/wedding/join", cfg.WeddingHandler.Join)
		protected.POST("/wedding/invite", cfg.WeddingHandler.InvitePartner)
	}
	if cfg.TaskHandler != nil {
		protected.GET("/tasks", cfg.TaskHandler.List)
		protected.POST("/tasks", cfg.TaskHandler.Create)
		protected.PATCH("/tasks/:taskId", cfg.TaskHandler.Update)
		protected.DELETE("/tasks/:taskId", cfg.TaskHandler.Delete)
	}
	if cfg.GuestHandler != nil {
		protected.GET("/guests", cfg.GuestHandler.List)
		protected.POST("/guests", cfg.GuestHandler.Create)
		protected.PATCH("/guests/:guestId", cfg.GuestHandler.Update)
		protected.DELETE("/guests/:guestId", cfg.GuestHandler.Delete)
	}
	if cfg.BudgetHandler != nil {
		protected.GET("/budget-items", cfg.BudgetHandler.List)
		protected.POST("/budget-items", cfg.BudgetHandler.Create)
		protected.PATCH("/budget-items/:itemId", cfg.BudgetHandler.Update)
		protected.DELETE("/budget-items/:itemId", cfg.BudgetHandler.Delete)
	}
	if cfg.VendorHandler != nil {
		protected.GET("/vendors", cfg.VendorHandler.List)
		protected.POST("/vendors", cfg.VendorHandler.Create)
		protected.PATCH("/vendors/:vendorId", cfg.VendorHandler.Update)
		protected.DELETE("/vendors/:vendorId", cfg.VendorHandler.Delete)
	}
	if cfg.InspirationHandler != nil {
		protected.GET("/inspirations", cfg.InspirationHandler.List)
		protected.POST("/inspirations", cfg.InspirationHandler.Create)
		protected.POST("/inspirations/upload", cfg.InspirationHandler.Upload)
		protected.PATCH("/inspirations/:inspirationId", cfg.InspirationHandler.Update)
		protected.DELETE("/inspirations/:inspirationId", cfg.InspirationHandler.Delete)
	}
	if cfg.MessageHandler != nil {
		protected.GET("/messages", cfg.MessageHandler.List)
		protected.POST("/messages", cfg.MessageHandler.Send)
	}
	if cfg.NoteHandler != nil {
		protected.GET("/notes", cfg.NoteHandler.List)
		protected.POST("/notes", cfg.NoteHandler.Create)
		protected.PATCH("/notes/:noteId", cfg.NoteHandler.Update)
		protected.DELETE("/notes/:noteId", cfg.NoteHandler.Delete)
	}
	if cfg.NotificationHandler != nil {
		protected.GET("/notifications", cfg.NotificationHandler.List)
		protected.POST("/notifications/read-all", cfg.NotificationHandler.MarkAllRead)
	}
	if cfg.DashboardHandler != nil {
		protected.GET("/dashboard/summary", cfg.DashboardHandler.Summary)
	}
	if cfg.SSEHandler != nil {
		protected.GET("/sse/stream", cfg.SSEHandler.Stream)
	}

	return router
}
