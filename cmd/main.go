package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/seabloom/tidewed-backend/internal/db"
	"github.com/seabloom/tidewed-backend/internal/handlers"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/middleware"
	"github.com/seabloom/tidewed-backend/internal/observability"
	"github.com/seabloom/tidewed-backend/internal/platform/sendgrid"
	"github.com/seabloom/tidewed-backend/internal/realtime/bus"
	"github.com/seabloom/tidewed-backend/internal/repos"
	"github.com/seabloom/tidewed-backend/internal/server"
	"github.com/seabloom/tidewed-backend/internal/services"
	"github.com/seabloom/tidewed-backend/internal/sse"
	"github.com/seabloom/tidewed-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	appBaseURL := utils.GetEnv("APP_BASE_URL", "http://localhost:5173", log)
	listenAddr := utils.GetEnv("LISTEN_ADDR", ":8080", log)

	// Tracing
	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "tidewed-backend",
		Environment: os.Getenv("APP_ENV"),
		Version:     os.Getenv("APP_VERSION"),
	})
	if otelShutdown != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(ctx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	weddingRepo := repos.NewWeddingRepo(thePG, log)
	taskRepo := repos.NewTaskRepo(thePG, log)
	guestRepo := repos.NewGuestRepo(thePG, log)
	budgetItemRepo := repos.NewBudgetItemRepo(thePG, log)
	vendorRepo := repos.NewVendorRepo(thePG, log)
	inspirationRepo := repos.NewInspirationRepo(thePG, log)
	messageRepo := repos.NewMessageRepo(thePG, log)
	noteRepo := repos.NewNoteRepo(thePG, log)
	notificationRepo := repos.NewNotificationRepo(thePG, log)

	// SSE hub + bus
	log.Info("Setting up SSE hub now...")
	sseHub := sse.NewSSEHub(log)
	var eventBus bus.Bus
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		redisBus, rErr := bus.NewRedisBus(log)
		if rErr != nil {
			log.Warn("Redis bus init failed, falling back to local bus", "error", rErr)
			eventBus = bus.NewLocalBus(log)
		} else {
			eventBus = redisBus
		}
	} else {
		eventBus = bus.NewLocalBus(log)
	}
	if err := eventBus.StartForwarder(context.Background(), sseHub.Broadcast); err != nil {
		log.Warn("Event bus forwarder failed to start", "error", err)
	}
	defer eventBus.Close()

	// Services
	log.Info("Setting up Services from main...")
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Warn("Could not init BucketService", "error", err)
	}
	var avatarService services.AvatarService
	if bucketService != nil {
		avatarService, err = services.NewAvatarService(log, bucketService)
		if err != nil {
			log.Warn("Could not init AvatarService", "error", err)
		}
	}
	var emailClient sendgrid.Client
	if strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")) != "" {
		emailClient, err = sendgrid.NewFromEnv(log)
		if err != nil {
			log.Warn("Could not init SendGrid client", "error", err)
		}
	}

	notifierService := services.NewNotifierService(log, eventBus, notificationRepo)
	authService := services.NewAuthService(
		thePG, log, userRepo, userTokenRepo, avatarService,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	userService := services.NewUserService(thePG, log, userRepo, avatarService)
	weddingService := services.NewWeddingService(thePG, log, weddingRepo, userRepo, notifierService)
	invitationService := services.NewInvitationService(log, emailClient, userRepo, weddingService, appBaseURL)
	taskService := services.NewTaskService(thePG, log, taskRepo, weddingService, notifierService)
	guestService := services.NewGuestService(thePG, log, guestRepo, weddingService, notifierService)
	budgetService := services.NewBudgetService(thePG, log, budgetItemRepo, weddingService, notifierService)
	vendorService := services.NewVendorService(thePG, log, vendorRepo, weddingService, notifierService)
	inspirationService := services.NewInspirationService(thePG, log, inspirationRepo, weddingService, bucketService, notifierService)
	messageService := services.NewMessageService(thePG, log, messageRepo, weddingService, notifierService)
	noteService := services.NewNoteService(thePG, log, noteRepo, weddingService, notifierService)
	notificationService := services.NewNotificationService(thePG, log, notificationRepo)
	rsvpService := services.NewRSVPService(thePG, log, guestRepo, weddingRepo, notifierService)
	dashboardService := services.NewDashboardService(thePG, log, taskRepo, guestRepo, budgetItemRepo, vendorRepo, weddingService)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)
	routerCfg := server.RouterConfig{
		ServiceName:         "tidewed-backend",
		AllowedOrigins:      splitOrigins(os.Getenv("CORS_ALLOWED_ORIGINS")),
		AuthMiddleware:      authMiddleware,
		HealthcheckHandler:  handlers.NewHealthcheckHandler(),
		AuthHandler:         handlers.NewAuthHandler(authService),
		UserHandler:         handlers.NewUserHandler(userService),
		WeddingHandler:      handlers.NewWeddingHandler(weddingService, invitationService),
		TaskHandler:         handlers.NewTaskHandler(taskService),
		GuestHandler:        handlers.NewGuestHandler(guestService),
		BudgetHandler:       handlers.NewBudgetHandler(budgetService),
		VendorHandler:       handlers.NewVendorHandler(vendorService),
		InspirationHandler:  handlers.NewInspirationHandler(inspirationService),
		MessageHandler:      handlers.NewMessageHandler(messageService),
		NoteHandler:         handlers.NewNoteHandler(noteService),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
		DashboardHandler:    handlers.NewDashboardHandler(dashboardService),
		RSVPHandler:         handlers.NewRSVPHandler(weddingService, rsvpService),
		SSEHandler:          handlers.NewSSEHandler(sseHub, weddingService),
	}

	srv := server.NewServer(routerCfg)
	log.Info("Starting server", "addr", listenAddr)
	if err := srv.Run(listenAddr); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func splitOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
