package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "dolpcrm/docs"
	"dolpcrm/internal/config"
	"dolpcrm/internal/database"
	"dolpcrm/internal/handlers"
	"dolpcrm/internal/middleware"
	"dolpcrm/internal/pdf"
	"dolpcrm/internal/repositories"
	"dolpcrm/internal/routes"
	"dolpcrm/internal/services"
)

func Run() {
	cfg := config.LoadConfig()

	if cfg.JWT.Secret != "" {
		middleware.JWTKey = []byte(cfg.JWT.Secret)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("erro ao conectar no banco")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Error("erro ao fechar o banco")
		}
	}()

	if err := database.Init(db); err != nil {
		logrus.WithError(err).Fatal("erro ao preparar o schema")
	}

	// === Repos ===
	clientRepo := repositories.NewClientRepository(db)
	stageRepo := repositories.NewStageRepository(db)
	oppRepo := repositories.NewOpportunityRepository(db)
	refRepo := repositories.NewReferencePriceRepository(db)
	interactionRepo := repositories.NewInteractionRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	userRepo := repositories.NewUserRepository(db)
	newsRepo := repositories.NewNewsRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	userService := services.NewUserService(userRepo, authService)
	clientService := services.NewClientService(clientRepo)
	oppService := services.NewOpportunityService(oppRepo, refRepo, stageRepo)
	pipelineService := services.NewPipelineService(stageRepo, oppRepo, interactionRepo)
	taskService := services.NewTaskService(taskRepo)
	reportService := services.NewReportService(stageRepo, oppRepo, interactionRepo)

	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var telegramService *services.TelegramService
	if cfg.Telegram.Enabled && cfg.Telegram.Token != "" {
		telegramService, err = services.NewTelegramService(cfg.Telegram.Token, userRepo)
		if err != nil {
			logrus.WithError(err).Error("bot do Telegram indisponível, seguindo sem ele")
		} else {
			go telegramService.Run(ctx)
		}
	}

	notifier := services.NewNotifier(userRepo, emailService, telegramService, cfg.Email.DistEmail)
	pipelineService.Notifier = notifier
	taskService.Notifier = notifier

	var newsService *services.NewsService
	if cfg.News.Enabled && cfg.News.APIKey != "" {
		newsService = services.NewNewsService(
			clientRepo, newsRepo,
			cfg.News.Endpoint, cfg.News.APIKey,
			time.Duration(cfg.News.IntervalHours)*time.Hour,
		)
		go newsService.Run(ctx)
	}

	// hourly reminder sweep for overdue tasks
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := taskService.SweepDue(); err != nil {
					logrus.WithError(err).Error("varredura de tarefas vencidas falhou")
				}
			}
		}
	}()

	pdfGen := pdf.NewDocumentGenerator(cfg.Files.RootDir, "assets/fonts/DejaVuSans.ttf")

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	userHandler := handlers.NewUserHandler(userService)
	clientHandler := handlers.NewClientHandler(clientService, newsService)
	oppHandler := handlers.NewOpportunityHandler(oppService)
	pipelineHandler := handlers.NewPipelineHandler(pipelineService, reportService)
	referenceHandler := handlers.NewReferenceHandler(refRepo)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)
	interactionHandler := handlers.NewInteractionHandler(interactionRepo)
	taskHandler := handlers.NewTaskHandler(taskService)
	reportHandler := handlers.NewReportHandler(reportService)
	documentHandler := handlers.NewDocumentHandler(oppService, clientService, pdfGen)

	var integrationsHandler *handlers.IntegrationsHandler
	if telegramService != nil {
		integrationsHandler = handlers.NewIntegrationsHandler(userService)
	}

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		userHandler,
		clientHandler,
		oppHandler,
		pipelineHandler,
		referenceHandler,
		catalogHandler,
		interactionHandler,
		taskHandler,
		reportHandler,
		documentHandler,
		integrationsHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	logrus.WithField("addr", listenAddr).Info("servidor iniciado")
	if err := router.Run(listenAddr); err != nil {
		logrus.WithError(err).Fatal("erro ao subir o servidor")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
