package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"flutterlearn-service/internal/cache"
	"flutterlearn-service/internal/config"
	"flutterlearn-service/internal/db"
	"flutterlearn-service/internal/event"
	"flutterlearn-service/internal/handlers"
	"flutterlearn-service/internal/quizgen"
	"flutterlearn-service/internal/repository"
	"flutterlearn-service/internal/seed"
	"flutterlearn-service/internal/service"
	"flutterlearn-service/internal/storage"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	gin.SetMode(cfg.GinMode)

	db.InitMongo(cfg.MongoURI)
	db.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitMQURI != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQURI, cfg.EventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, learning events will not be published")
	}

	deliverableStore, err := storage.NewDeliverableStore(storage.Options{
		Endpoint:        cfg.MinioEndpoint,
		AccessKeyID:     cfg.MinioAccessKeyID,
		SecretAccessKey: cfg.MinioSecretAccessKey,
		UseSSL:          cfg.MinioUseSSL,
		Bucket:          cfg.MinioBucket,
		PublicBaseURL:   cfg.MinioPublicBaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize deliverable storage: %v", err)
	}

	database := db.Client.Database(cfg.MongoDatabase)

	// Repositories
	moduleRepo := repository.NewModuleRepository(database)
	questionRepo := repository.NewQuestionRepository(database)
	sessionRepo := repository.NewSessionRepository(database)
	progressRepo := repository.NewProgressRepository(database)
	practicalRepo := repository.NewPracticalWorkRepository(database)
	userRepo := repository.NewUserRepository(database)

	if err := seed.EnsureModules(context.Background(), moduleRepo); err != nil {
		log.Fatalf("Failed to seed course modules: %v", err)
	}

	// Services
	progressService := service.NewProgressService(progressRepo, cache.NewProgressCache(db.RedisClient), publisher)
	quizService := service.NewQuizService(
		sessionRepo,
		moduleRepo,
		questionRepo,
		cache.NewQuizCache(db.RedisClient),
		quizgen.NewHTTPProvider(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel),
		progressService,
		publisher,
	)
	practicalService := service.NewPracticalService(practicalRepo, deliverableStore, publisher)
	userService := service.NewUserService(userRepo, publisher)

	// Handlers
	moduleHandler := handlers.NewModuleHandler(moduleRepo, progressService)
	quizHandler := handlers.NewQuizHandler(quizService)
	progressHandler := handlers.NewProgressHandler(progressService)
	practicalHandler := handlers.NewPracticalHandler(practicalService)
	userHandler := handlers.NewUserHandler(userService)

	// Background reconciliation for users whose store write failed
	syncCtx, cancelSync := context.WithCancel(context.Background())
	defer cancelSync()
	progressService.StartSyncLoop(syncCtx, cfg.SyncInterval)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://formation.flutterlearn.dev"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "mongo": db.IsConnected()})
	})

	publicUser := r.Group("/public/learning/user")
	{
		publicUser.POST("/register", userHandler.Register)
		publicUser.POST("/login", userHandler.Login)
	}

	protected := r.Group("/protected/learning")
	protected.Use(handlers.AuthRequired())

	protectedUser := protected.Group("/user")
	{
		protectedUser.GET("/me", userHandler.Me)
		protectedUser.GET("/", userHandler.ListUsers)
		protectedUser.PUT("/:id/role", userHandler.ChangeRole)
		protectedUser.DELETE("/:id", userHandler.Deactivate)
	}

	protectedCourse := protected.Group("/course")
	{
		protectedCourse.GET("/:courseId/modules", moduleHandler.ListModules)
		protectedCourse.GET("/:courseId/practicals", practicalHandler.ListWorks)
	}

	protectedModule := protected.Group("/module")
	{
		protectedModule.GET("/:id", moduleHandler.GetModule)
		protectedModule.POST("/", moduleHandler.CreateModule)
		protectedModule.PUT("/:id", moduleHandler.UpdateModule)
		protectedModule.DELETE("/:id", moduleHandler.DeleteModule)
	}

	protectedSession := protected.Group("/session")
	{
		protectedSession.POST("/", quizHandler.StartSession)
		protectedSession.GET("/:id", quizHandler.GetSession)
		protectedSession.POST("/:id/answer", quizHandler.SubmitAnswer)
		protectedSession.POST("/:id/submit", quizHandler.SubmitSession)
		protectedSession.POST("/:id/abandon", quizHandler.AbandonSession)
	}

	protectedProgress := protected.Group("/progress")
	{
		protectedProgress.GET("/", progressHandler.GetProgress)
		protectedProgress.POST("/sync", progressHandler.Sync)
		protectedProgress.GET("/user/:userId", progressHandler.GetUserProgress)
	}

	protectedPractical := protected.Group("/practical")
	{
		protectedPractical.POST("/", practicalHandler.CreateWork)
		protectedPractical.GET("/:id", practicalHandler.GetWork)
		protectedPractical.GET("/:id/progress", practicalHandler.GetProgress)
		protectedPractical.POST("/:id/start", practicalHandler.StartWork)
		protectedPractical.POST("/:id/submit", practicalHandler.Submit)
		protectedPractical.POST("/:id/claim", practicalHandler.ClaimForReview)
		protectedPractical.POST("/:id/evaluate", practicalHandler.Evaluate)
		protectedPractical.GET("/:id/pending", practicalHandler.PendingReview)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
