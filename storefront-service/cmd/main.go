package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lotusaroma/pkg/logger"
	"lotusaroma/storefront-service/internal/app/storefront/config"
	"lotusaroma/storefront-service/internal/app/storefront/handler"
	"lotusaroma/storefront-service/internal/app/storefront/repository"
	"lotusaroma/storefront-service/internal/app/storefront/service"
	"lotusaroma/storefront-service/internal/app/storefront/util"
)

const connectAttempts = 10

func main() {
	// === КОНФИГУРАЦИЯ И ЛОГИРОВАНИЕ ===
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init(config.ServiceName, cfg.Log.Level)
	if cfg.Log.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Log.LogstashAddr, config.ServiceName, cfg.Log.Level); err != nil {
			logger.Warn().Err(err).Msg("Logstash unavailable, logging to stdout only")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === POSTGRESQL: каталог и отзывы (GORM), аккаунты (pgx) ===
	db, err := connectGorm(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to get sql.DB")
	}
	defer sqlDB.Close()

	if err := repository.RunMigrations(sqlDB, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Info().Msg("Database migrations applied")

	pool, err := connectPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create pgx pool")
	}
	defer pool.Close()

	// === REDIS: сессии и кеш каталога ===
	redisClient, err := connectRedis(cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("addr", cfg.Redis.Address()).Msg("Connected to Redis")

	// === ХРАНИЛИЩЕ ОТЗЫВОВ ===
	productRepo := repository.NewProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	if cfg.Catalog.ReviewStore == config.ReviewStoreMongo {
		mongoClient, err := connectMongo(ctx, cfg.Mongo)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mongoClient.Disconnect(disconnectCtx)
		}()

		mongoDB := mongoClient.Database(cfg.Mongo.Database)
		if err := repository.EnsureReviewIndexes(ctx, mongoDB); err != nil {
			logger.Fatal().Err(err).Msg("Failed to create MongoDB indexes")
		}
		reviewRepo = repository.NewMongoReviewRepository(mongoDB)
		logger.Info().Str("database", cfg.Mongo.Database).Msg("Reviews stored in MongoDB")
	}

	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(redisClient)

	// === KAFKA ===
	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()

	// === ДЕМО-КАТАЛОГ ===
	if cfg.Catalog.Seed {
		seeded, err := repository.NewSeeder(productRepo, reviewRepo).SeedIfEmpty(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to seed catalog")
		}
		if seeded > 0 {
			logger.Info().Int("products", seeded).Msg("Sample catalog created")
		}
	}

	// === СЕРВИСЫ ===
	catalogService := service.NewCatalogService(
		productRepo,
		reviewRepo,
		util.NewCatalogCache(redisClient, cfg.Catalog.CacheTTL),
		kafkaProducer,
	)
	accountService := service.NewAccountService(
		userRepo,
		sessionRepo,
		util.NewSessionSigner(cfg.Session.Secret, cfg.Session.TTL),
		kafkaProducer,
	)

	// === ПЛАНИРОВЩИК ===
	var scheduler *util.Scheduler
	if cfg.Scheduler.Enabled {
		scheduler, err = startScheduler(ctx, cfg.Scheduler, catalogService)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	// === HTTP ===
	router := handler.SetupRoutes(
		handler.RouterConfig{
			ServiceName: config.ServiceName,
			CORSOrigins: cfg.Server.CORSOrigins,
		},
		handler.NewProductHandler(catalogService),
		handler.NewAuthHandler(accountService, handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.IsProduction(),
		}),
		handler.NewSessionMiddleware(accountService, cfg.Session.CookieName),
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("Starting LotusAroma storefront")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	<-ctx.Done()
	logger.Info().Msg("Shutting down storefront...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if scheduler != nil {
		scheduler.Stop()
	}

	logger.Info().Msg("Storefront stopped gracefully")
}

// startScheduler регистрирует сверку рейтингов и прогрев кеша, прогревает кеш сразу
func startScheduler(ctx context.Context, cfg config.SchedulerConfig, catalog *service.CatalogService) (*util.Scheduler, error) {
	scheduler := util.NewScheduler(ctx)

	reconcile := func(ctx context.Context) error {
		updated, err := catalog.ReconcileRatings(ctx)
		if updated > 0 {
			logger.Info().Int("products", updated).Msg("Ratings reconciled")
		}
		return err
	}
	if err := scheduler.Register(util.JobRatingReconcile, cfg.RatingReconcile, reconcile); err != nil {
		return nil, err
	}
	if err := scheduler.Register(util.JobCacheWarmup, cfg.CacheWarmup, catalog.WarmCache); err != nil {
		return nil, err
	}

	if err := scheduler.RunNow(util.JobCacheWarmup, catalog.WarmCache); err != nil {
		logger.Warn().Err(err).Msg("Initial cache warm-up failed")
	}

	scheduler.Start()
	return scheduler, nil
}

// connectGorm - retry для запуска в Docker, когда PostgreSQL ещё не готов
func connectGorm(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var err error
	for i := 0; i < connectAttempts; i++ {
		var db *gorm.DB
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if err = sqlDB.Ping(); err == nil {
				sqlDB.SetMaxOpenConns(10)
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
				sqlDB.SetConnMaxIdleTime(1 * time.Minute)
				return db, nil
			}
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to database")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", connectAttempts, err)
}

// connectPool - пул pgx для аккаунтов; база к этому моменту уже доступна
func connectPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

func connectRedis(cfg config.RedisConfig) (*redis.Client, error) {
	var err error
	for i := 0; i < connectAttempts; i++ {
		var client *redis.Client
		client, err = util.NewRedisClient(cfg.Address(), cfg.Password, cfg.DB)
		if err == nil {
			return client, nil
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to Redis")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", connectAttempts, err)
}

func connectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}
