package config

import (
	"marketplace-service/src/internal/delivery/http"
	"marketplace-service/src/internal/delivery/http/middleware"
	"marketplace-service/src/internal/delivery/http/route"
	"marketplace-service/src/internal/gateway/messaging"
	"marketplace-service/src/internal/repository"
	"marketplace-service/src/internal/usecase"
	"marketplace-service/src/pkg/kafka"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/token"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	Store         repository.Store
	RefreshTokens repository.RefreshTokenRepository
	App           *fiber.App
	Log           log.Log
	Validate      *validator.Validate
	Config        *viper.Viper
	Producer      kafka.Producer
	Storage       usecase.BlobStorage
	Payments      usecase.PaymentProvider
	Mailer        usecase.DemoMailer
}

func NewTokenManager(viper *viper.Viper) *token.Manager {
	return token.NewManager(
		viper.GetString("jwt.secret"),
		viper.GetString("jwt.issuer"),
		viper.GetDuration("jwt.access_ttl"),
		viper.GetDuration("jwt.refresh_ttl"),
	)
}

func Bootstrap(config *BootstrapConfig) {
	// setup gateways
	jobProducer := messaging.NewJobProducer(config.Producer, config.Log)
	tokens := NewTokenManager(config.Config)

	// setup use cases
	notificationUseCase := usecase.NewNotificationUseCase(config.Log, config.Validate, config.Store)
	identityUseCase := usecase.NewIdentityUseCase(
		config.Log,
		config.Validate,
		config.Store,
		config.RefreshTokens,
		tokens,
		config.Storage,
	)
	assetUseCase := usecase.NewAssetUseCase(config.Log, config.Validate, config.Store, config.Storage)
	jobUseCase := usecase.NewJobUseCase(
		config.Log,
		config.Validate,
		config.Store,
		jobProducer,
		notificationUseCase,
	)
	ledgerUseCase := usecase.NewLedgerUseCase(config.Log, config.Validate, config.Store, config.Payments)
	chatUseCase := usecase.NewChatUseCase(
		config.Log,
		config.Validate,
		config.Store,
		jobProducer,
		notificationUseCase,
	)
	demoUseCase := usecase.NewDemoUseCase(config.Log, config.Validate, config.Store, config.Mailer)

	// setup controller
	identityController := http.NewIdentityController(identityUseCase, config.Log)
	assetController := http.NewAssetController(assetUseCase, config.Log)
	jobController := http.NewJobController(jobUseCase, config.Log)
	ledgerController := http.NewLedgerController(ledgerUseCase, config.Log)
	chatController := http.NewChatController(chatUseCase, config.Log)
	notificationController := http.NewNotificationController(notificationUseCase, demoUseCase, config.Log)

	// setup middleware
	authMiddleware := middleware.VerifyBearer(tokens, identityUseCase)

	routeConfig := route.RouteConfig{
		App:                    config.App,
		Prefix:                 config.Config.GetString("web.prefix"),
		CORSOrigins:            config.Config.GetString("web.cors_origins"),
		MetricsEnabled:         config.Config.GetBool("metrics.enabled"),
		IdentityController:     identityController,
		AssetController:        assetController,
		JobController:          jobController,
		LedgerController:       ledgerController,
		ChatController:         chatController,
		NotificationController: notificationController,
		AuthMiddleware:         authMiddleware,
	}
	routeConfig.Setup()
}
