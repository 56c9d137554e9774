package bootstrap

import (
	"log"
	"time"

	"xplorer-be/internal/config"
	"xplorer-be/internal/controller"
	"xplorer-be/internal/pkg/logger"
	"xplorer-be/internal/repository"
	"xplorer-be/internal/repository/contract"
	"xplorer-be/internal/service"
	"xplorer-be/pkg/relay"
	"xplorer-be/pkg/storage"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController

	// Exposed for shutdown and tests
	Sessions contract.ISessionRepository
	Logger   logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	isProd := cfg.App.Environment == "production"
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, isProd)

	sessions, err := repository.NewSessionRepository(cfg.Session)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize session store: %v", err)
	}
	log.Printf("[INFO] Using session driver: %s", cfg.Session.Driver)

	storeClient := storage.NewClient(cfg.Storage.URL, cfg.Storage.ServiceKey, cfg.Storage.Bucket)
	relayClient := relay.NewClient(
		cfg.Chat.Endpoint,
		cfg.Chat.APIKey,
		cfg.Chat.DeploymentName,
		time.Duration(cfg.Chat.TimeoutSeconds)*time.Second,
	)

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute

	authService := service.NewAuthService(cfg.Auth.Users, cfg.Auth.JWTSecret, sessionTTL, sessions)
	chatService := service.NewChatService(sessions, relayClient, storeClient, sysLogger)
	documentService := service.NewDocumentService(storeClient, sysLogger)

	return &Container{
		AuthController:     controller.NewAuthController(authService, sessionTTL, isProd),
		ChatController:     controller.NewChatController(chatService),
		DocumentController: controller.NewDocumentController(documentService),
		Sessions:           sessions,
		Logger:             sysLogger,
	}
}
