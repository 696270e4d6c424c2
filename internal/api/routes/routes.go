package routes

import (
	"github.com/campus-connect/campus-backend/internal/api/handlers"
	"github.com/campus-connect/campus-backend/internal/api/middleware"
	"github.com/campus-connect/campus-backend/internal/config"
	"github.com/campus-connect/campus-backend/internal/services"
	"github.com/campus-connect/campus-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(cfg))

	// Initialize services
	emailService := services.NewEmailService(cfg)
	var s3Service *services.S3Service
	if cfg.S3BucketName != "" {
		s3Service = services.NewS3Service(cfg.S3Region, cfg.S3BucketName, cfg.S3AccessKey, cfg.S3SecretKey)
	}

	notificationService := services.NewNotificationService(db)
	authService := services.NewAuthService(db, cfg.JWTSecret, emailService, cfg.BaseURL)
	listingService := services.NewListingService(db, s3Service, cfg.ListingTTLDays)
	conversationService := services.NewConversationService(db, notificationService)
	transactionService := services.NewTransactionService(db, notificationService)
	moderationService := services.NewModerationService(db, notificationService)
	eventService := services.NewEventService(db, notificationService)
	announcementService := services.NewAnnouncementService(db)
	lostFoundService := services.NewLostFoundService(db)
	adminService := services.NewAdminService(db, notificationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	listingHandler := handlers.NewListingHandler(listingService, transactionService)
	conversationHandler := handlers.NewConversationHandler(conversationService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	moderationHandler := handlers.NewModerationHandler(moderationService)
	eventHandler := handlers.NewEventHandler(eventService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	lostFoundHandler := handlers.NewLostFoundHandler(lostFoundService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Server is running"})
	})

	// API routes
	api := router.Group("/api/v1")
	authRequired := middleware.AuthMiddleware(cfg)

	// Auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh-token", authHandler.RefreshToken)
		auth.POST("/logout", authRequired, authHandler.Logout)
		auth.POST("/logout-all", authRequired, authHandler.LogoutAll)
		auth.GET("/profile", authRequired, authHandler.GetProfile)
		auth.PUT("/profile", authRequired, authHandler.UpdateProfile)
	}

	// Password reset routes
	password := api.Group("/password")
	{
		password.POST("/forgot", authHandler.ForgotPassword)
		password.POST("/reset", authHandler.ResetPassword)
		password.POST("/change", authRequired, authHandler.ChangePassword)
	}

	// Listing routes
	listings := api.Group("/listings")
	{
		listings.GET("", listingHandler.GetListings)
		listings.GET("/categories", listingHandler.GetCategories)
		listings.GET("/:listing_id", listingHandler.GetListing)
		listings.POST("", authRequired, listingHandler.CreateListing)
		listings.GET("/mine", authRequired, listingHandler.MyListings)
		listings.PUT("/:listing_id", authRequired, listingHandler.UpdateListing)
		listings.DELETE("/:listing_id", authRequired, listingHandler.RemoveListing)
		listings.POST("/:listing_id/sold", authRequired, listingHandler.MarkSold)
		listings.POST("/:listing_id/images", authRequired, listingHandler.UploadImages)
		listings.DELETE("/:listing_id/images/:image_id", authRequired, listingHandler.DeleteImage)
	}

	// Conversation routes
	conversations := api.Group("/conversations", authRequired)
	{
		conversations.GET("", conversationHandler.ListConversations)
		conversations.POST("", conversationHandler.StartConversation)
		conversations.POST("/:conversation_id/messages", conversationHandler.SendMessage)
		conversations.GET("/:conversation_id/messages", conversationHandler.GetMessages)
	}

	// Transaction routes
	transactions := api.Group("/transactions", authRequired)
	{
		transactions.GET("", transactionHandler.ListTransactions)
		transactions.GET("/:transaction_id", transactionHandler.GetTransaction)
		transactions.POST("/:transaction_id/rate", transactionHandler.RateTransaction)
	}

	// Notification routes
	notifications := api.Group("/notifications", authRequired)
	{
		notifications.GET("", notificationHandler.ListNotifications)
		notifications.POST("/:notification_id/read", notificationHandler.MarkRead)
		notifications.POST("/read-all", notificationHandler.MarkAllRead)
		notifications.DELETE("/:notification_id", notificationHandler.DeleteNotification)
	}

	// Event routes
	events := api.Group("/events")
	{
		events.GET("", eventHandler.ListEvents)
		events.GET("/:event_id", eventHandler.GetEvent)
		events.POST("", authRequired, eventHandler.CreateEvent)
		events.POST("/:event_id/rsvp", authRequired, eventHandler.RSVP)
		events.DELETE("/:event_id/rsvp", authRequired, eventHandler.CancelRSVP)
		events.DELETE("/:event_id", authRequired, eventHandler.CancelEvent)
	}

	// Announcement routes
	announcements := api.Group("/announcements")
	{
		announcements.GET("", announcementHandler.ListAnnouncements)
		announcements.POST("", authRequired, middleware.AdminOnly(), announcementHandler.CreateAnnouncement)
		announcements.DELETE("/:announcement_id", authRequired, middleware.AdminOnly(), announcementHandler.DeleteAnnouncement)
	}

	// Lost & found routes
	lostFound := api.Group("/lost-found")
	{
		lostFound.GET("", lostFoundHandler.ListItems)
		lostFound.POST("", authRequired, lostFoundHandler.ReportItem)
		lostFound.POST("/:item_id/resolve", authRequired, lostFoundHandler.ResolveItem)
		lostFound.DELETE("/:item_id", authRequired, lostFoundHandler.DeleteItem)
	}

	// Moderation: anyone can flag, only admins review
	moderation := api.Group("/moderation")
	{
		moderation.POST("/flags", authRequired, moderationHandler.FlagContent)
		moderation.GET("/flags", authRequired, middleware.AdminOnly(), moderationHandler.ListFlags)
		moderation.POST("/flags/:flag_id/resolve", authRequired, middleware.AdminOnly(), moderationHandler.ResolveFlag)
	}

	// Admin routes
	admin := api.Group("/admin", authRequired, middleware.AdminOnly())
	{
		admin.GET("/dashboard", adminHandler.GetDashboard)
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users/:user_id/ban", adminHandler.BanUser)
		admin.POST("/users/:user_id/unban", adminHandler.UnbanUser)
		admin.POST("/users/:user_id/approve", adminHandler.ApproveSeller)
	}

	logger.Info("Routes initialized successfully")
}
