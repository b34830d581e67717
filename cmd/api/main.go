package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/support-chat-service/internal/api/http"
	"github.com/spec-kit/support-chat-service/internal/api/http/handlers"
	"github.com/spec-kit/support-chat-service/internal/classifier"
	"github.com/spec-kit/support-chat-service/internal/config"
	"github.com/spec-kit/support-chat-service/internal/events"
	"github.com/spec-kit/support-chat-service/internal/notify"
	"github.com/spec-kit/support-chat-service/internal/observability"
	"github.com/spec-kit/support-chat-service/internal/persistence"
	"github.com/spec-kit/support-chat-service/internal/repository"
	"github.com/spec-kit/support-chat-service/internal/service"
	"github.com/spec-kit/support-chat-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	faqRepo := repository.NewFAQRepository(pool)
	exchangeRepo := repository.NewChatExchangeRepository(pool)

	if cfg.Postgres.SeedFAQs && pool != nil {
		if err := persistence.SeedFAQs(ctx, faqRepo, logger); err != nil {
			logger.Warn("failed to seed faqs", zap.Error(err))
		}
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger, metrics)

	var model classifier.CompletionClient
	if openaiClient := classifier.NewOpenAIClient(
		cfg.Classifier.OpenAIAPIKey,
		cfg.Classifier.Model,
		cfg.Classifier.RequestTimeout,
		logger,
	); openaiClient != nil {
		model = openaiClient
		logger.Info("model classification enabled", zap.String("model", cfg.Classifier.Model))
	} else {
		logger.Info("model classification disabled, using keyword classifier only")
	}
	intentClassifier := classifier.NewIntentClassifier(model, logger)

	var emailSender notify.EmailSender
	if sg := notify.NewSendGridSender(
		cfg.Notification.SendGridAPIKey,
		cfg.Notification.SendGridBaseURL,
		cfg.Notification.SendTimeout,
	); sg != nil {
		emailSender = sg
	}
	var smsSender notify.SMSSender
	if tw := notify.NewTwilioSender(
		cfg.Notification.TwilioSID,
		cfg.Notification.TwilioToken,
		cfg.Notification.TwilioBaseURL,
		cfg.Notification.SendTimeout,
	); tw != nil {
		smsSender = tw
	}

	notificationService := service.NewNotificationService(service.NotificationDependencies{
		NotificationRepo: notificationRepo,
		EmailSender:      emailSender,
		SMSSender:        smsSender,
		EmailFrom:        cfg.Notification.EmailFrom,
		SMSFrom:          cfg.Notification.SMSFrom,
		SendTimeout:      cfg.Notification.SendTimeout,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})

	ticketService := service.NewTicketService(ticketRepo, dispatcher, logger)

	chatService := service.NewChatService(service.ChatDependencies{
		Classifier:      intentClassifier,
		Router:          service.NewRouter(),
		FAQService:      service.NewFAQService(faqRepo, logger),
		TicketService:   ticketService,
		AccountService:  service.NewAccountService(),
		NotifyService:   notificationService,
		ExchangeRepo:    exchangeRepo,
		HistoryCache:    redis.Client,
		HistoryCacheTTL: cfg.Redis.HistoryCacheTTL,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	chatHandler := handlers.NewChatHandler(chatService, notificationService, metrics)
	ticketHandler := handlers.NewTicketHandler(ticketService, notificationService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: healthHandler,
		Chat:   chatHandler,
		Ticket: ticketHandler,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
