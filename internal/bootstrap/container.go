package bootstrap

import (
	"context"
	"log"

	"dentalcare-be/internal/config"
	"dentalcare-be/internal/controller"
	"dentalcare-be/internal/handler"
	"dentalcare-be/internal/pkg/logger"
	"dentalcare-be/internal/pkg/mailer"
	rcache "dentalcare-be/internal/repository/cache"
	"dentalcare-be/internal/repository/implementation"
	"dentalcare-be/internal/repository/memory"
	"dentalcare-be/internal/repository/unitofwork"
	"dentalcare-be/internal/service"
	"dentalcare-be/internal/websocket"
	"dentalcare-be/pkg/llm/factory"
	"dentalcare-be/pkg/schedule"

	pktNats "dentalcare-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController        controller.IAuthController
	ClinicController      controller.IClinicController
	ScheduleController    controller.IScheduleController
	AppointmentController controller.IAppointmentController
	ChatbotController     controller.IChatbotController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// LLM Provider based on Config
	llmBaseURL := cfg.Ai.OllamaBaseURL
	llmAPIKey := ""
	if cfg.Ai.LLMProvider == "openai" {
		llmBaseURL = cfg.Ai.OpenAIBaseURL
		llmAPIKey = cfg.Ai.OpenAIAPIKey
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		llmAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory store for in-flight assistant replies
	transcriptRepo := memory.NewTranscriptRepository()

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	scheduleCache := rcache.NewScheduleCache(rdb)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	clinicService := service.NewClinicService(uowFactory)

	resolver := schedule.NewResolver(log.New(log.Writer(), "[schedule] ", log.LstdFlags))
	scheduleService := service.NewScheduleService(
		uowFactory,
		resolver,
		scheduleCache,
		natsPub,
		sysLogger,
		cfg.Upstream.ScheduleURL,
		cfg.Upstream.APIKey,
	)

	appointmentService := service.NewAppointmentService(
		uowFactory,
		scheduleService,
		natsPub,
		emailService,
		sysLogger,
	)

	chatbotService := service.NewChatbotService(
		uowFactory,
		llmProvider,
		transcriptRepo,
		pubSub,
		sysLogger,
	)

	consumerService := service.NewConsumerService(
		pubSub,
		service.SummarizeSessionTopic,
		uowFactory,
		llmProvider,
	)

	// 3.5 Notification Domain
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler:   notifHandler,
		WebSocketHub:          wsHub,
		AuthController:        controller.NewAuthController(authService),
		ClinicController:      controller.NewClinicController(clinicService),
		ScheduleController:    controller.NewScheduleController(scheduleService),
		AppointmentController: controller.NewAppointmentController(appointmentService),
		ChatbotController:     controller.NewChatbotController(chatbotService),

		ConsumerService: consumerService,
	}
}
