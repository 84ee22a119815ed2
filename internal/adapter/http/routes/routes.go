package routes

import (
	_ "gardenbuild/docs" // generated swagger docs
	"gardenbuild/internal/adapter/http/handlers"
	"gardenbuild/internal/adapter/http/middleware"
	"gardenbuild/internal/adapter/persistence/repository"
	"gardenbuild/internal/config"
	"gardenbuild/internal/infrastructure/cache"
	"gardenbuild/internal/infrastructure/database"
	"gardenbuild/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run wires the dependency graph and starts the server.
func Run(cfg *config.Config) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	setMiddlewares(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(router, cfg)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start the application")
	}
}

func registerRoutes(router *gin.Engine, cfg *config.Config) {
	ddb := database.ConnectDynamoDB(cfg.AWS)

	configurationRepo := repository.NewConfigurationDynamoRepository(ddb)
	quoteRepo := repository.NewQuoteDynamoRepository(ddb)
	sequenceRepo := repository.NewQuoteSequenceDynamoRepository(ddb)

	configurationUseCase := usecase.NewConfigurationUseCase(configurationRepo, quoteRepo)
	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, configurationRepo, sequenceRepo)

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	draftStore := cache.NewRedisDraftStore(redisClient, cfg.Wizard.DraftTTL)

	configurationHandler := handlers.NewConfigurationHandler(configurationUseCase)
	quoteHandler := handlers.NewQuoteHandler(quoteUseCase)
	wizardHandler := handlers.NewWizardHandler(draftStore, configurationUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuotingRoutes(v1, configurationHandler, quoteHandler, wizardHandler)
}

func setMiddlewares(router *gin.Engine) {
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Msg("recovered from panic")
		c.AbortWithStatus(500)
	}))
}
