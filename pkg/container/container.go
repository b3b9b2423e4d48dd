package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"stagelink-backend/internal/config"
	infraCache "stagelink-backend/internal/infrastructure/cache"
	"stagelink-backend/internal/infrastructure/database"
	"stagelink-backend/internal/infrastructure/storage"
	"stagelink-backend/pkg/cache"
	"stagelink-backend/pkg/jwt"

	paymentHandler "stagelink-backend/internal/domains/payment/handler"
	paymentRepo "stagelink-backend/internal/domains/payment/repository"
	paymentService "stagelink-backend/internal/domains/payment/service"
	"stagelink-backend/internal/domains/pricing"
	profileRepo "stagelink-backend/internal/domains/profile/repository"
	showHandler "stagelink-backend/internal/domains/show/handler"
	showRepo "stagelink-backend/internal/domains/show/repository"
	showService "stagelink-backend/internal/domains/show/service"

	"github.com/hibiken/asynq"
)

// Container is the root of the API server's dependency graph.
// Everything in it is a singleton built once at startup.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	Storage     *storage.MinIOStorage
	AsynqClient *asynq.Client

	// Repositories
	ShowRepo    showRepo.RepositoryInterface
	ProfileRepo profileRepo.RepositoryInterface
	PaymentRepo paymentRepo.RepositoryInterface

	// Services
	ShowService       showService.ServiceInterface
	ModerationService showService.ModerationInterface
	FeedService       showService.FeedInterface
	PaymentService    paymentService.ServiceInterface

	// Handlers
	ProducerHandler     *showHandler.ProducerHandler
	ShowAdminHandler    *showHandler.AdminHandler
	PublicHandler       *showHandler.PublicHandler
	CheckoutHandler     *paymentHandler.CheckoutHandler
	PaymentAdminHandler *paymentHandler.AdminHandler
}

// NewContainer builds the full dependency graph in layer order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	log.Println("Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	log.Println("Connecting to PostgreSQL...")
	db := database.NewPostgresDB(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	log.Println("Connecting to Redis...")
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			// The cache degrades gracefully; keep booting
			log.Printf("Redis connection failed (non-critical): %v", err)
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	log.Println("Connecting to MinIO...")
	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = minioStorage

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("Container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.ShowRepo = showRepo.NewPostgresRepository(pool)
	c.ProfileRepo = profileRepo.NewPostgresRepository(pool)
	c.PaymentRepo = paymentRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	feeCalc := pricing.NewFeeCalculator()
	processor := storage.NewImageProcessor()

	c.ShowService = showService.NewShowService(
		c.ShowRepo,
		c.Storage,
		processor,
		feeCalc,
		c.Cache,
	)
	c.ModerationService = showService.NewModerationService(
		c.ShowRepo,
		c.AsynqClient,
		c.Cache,
	)
	c.FeedService = showService.NewFeedService(c.ShowRepo, c.Cache)

	c.PaymentService = paymentService.NewPaymentService(
		c.PaymentRepo,
		c.ShowRepo,
		c.Storage,
		feeCalc,
		c.AsynqClient,
		c.Config.Job.ProofURLExpiry,
	)
}

func (c *Container) initHandlers() {
	c.ProducerHandler = showHandler.NewProducerHandler(c.ShowService)
	c.ShowAdminHandler = showHandler.NewAdminHandler(c.ModerationService)
	c.PublicHandler = showHandler.NewPublicHandler(c.FeedService)
	c.CheckoutHandler = paymentHandler.NewCheckoutHandler(c.PaymentService)
	c.PaymentAdminHandler = paymentHandler.NewAdminHandler(c.PaymentService)
}

// Cleanup releases connections during graceful shutdown
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("Failed to close asynq client: %v", err)
		}
	}

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("Failed to close Redis: %v", err)
			}
		}
	}

	log.Println("Container cleanup completed")
}
