package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardapio/internal/analytics"
	"cardapio/internal/auth"
	"cardapio/internal/cart"
	"cardapio/internal/chat"
	"cardapio/internal/config"
	"cardapio/internal/customer"
	"cardapio/internal/db"
	"cardapio/internal/llm"
	"cardapio/internal/logging"
	"cardapio/internal/menu"
	"cardapio/internal/restaurant"
	"cardapio/internal/router"
	"cardapio/internal/storage"
	"cardapio/internal/waiter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	cartPruneInterval = 5 * time.Minute
	cartMaxIdle       = 30 * time.Minute
)

func main() {
	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		// no logger yet
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.New(cfg.AppEnv)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("api stopped", zap.Error(err))
	}
}

type repositories struct {
	users       auth.UserRepository
	restaurants restaurant.Repository
	menu        menu.Repository
	waiter      waiter.Repository
	kv          storage.KV
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repositories, func(), error) {
	if cfg.StorageDriver == "memory" {
		logger.Warn("using in-memory storage, data is lost on restart")
		return &repositories{
			users:       auth.NewInMemoryUserRepository(),
			restaurants: restaurant.NewInMemoryRepository(),
			menu:        menu.NewInMemoryRepository(),
			waiter:      waiter.NewInMemoryRepository(),
			kv:          storage.NewMemoryKV(),
		}, func() {}, nil
	}

	pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, err
	}

	return &repositories{
		users:       auth.NewPostgresUserRepository(pgDB),
		restaurants: restaurant.NewPostgresRepository(pgDB),
		menu:        menu.NewPostgresRepository(pgDB),
		waiter:      waiter.NewPostgresRepository(pgDB),
		kv:          storage.NewPostgresKV(pgDB),
	}, pgDB.Close, nil
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ───────────────────────── DB ─────────────────────────
	repos, closeDB, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	// ───────────────────────── STORAGE ─────────────────────────
	var images menu.Storage
	if cfg.R2Enabled() {
		r2Client, err := storage.NewR2Client(ctx, storage.R2Config{
			Endpoint:      cfg.R2Endpoint,
			AccessKey:     cfg.R2AccessKey,
			SecretKey:     cfg.R2SecretKey,
			Bucket:        cfg.R2Bucket,
			PublicBaseURL: cfg.R2PublicBaseURL,
		})
		if err != nil {
			return err
		}
		images = r2Client
	} else {
		logger.Warn("R2 not configured, image uploads disabled")
	}

	// ───────────────────────── ANALYTICS ─────────────────────────
	tracker := analytics.Tracker(analytics.NewLogTracker(logger))
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		producer, err := analytics.NewSaramaProducer(brokers)
		if err != nil {
			return err
		}
		kafka := analytics.NewKafkaTracker(producer, cfg.KafkaAnalyticsTopic, logger)
		defer kafka.Close()

		tracker = analytics.Multi(tracker, kafka)
		logger.Info("kafka analytics enabled", zap.Strings("brokers", brokers))
	}

	// ───────────────────────── SERVICES ─────────────────────────
	authService := auth.NewService(repos.users, logger.Named("auth"))
	restaurantService := restaurant.NewService(repos.restaurants, logger.Named("restaurant"))
	menuService := menu.NewService(repos.menu, restaurantService, images, logger.Named("menu"))
	customerService := customer.NewService(repos.kv, logger.Named("customer"))

	waiterService := waiter.NewService(
		repos.waiter,
		restaurantService,
		tracker,
		cfg.MaxTables,
		cfg.WaiterCallCooldown,
		logger.Named("waiter"),
	)

	carts := cart.NewManager(
		func(sessionID string) cart.Persister {
			return storage.NewSlot(repos.kv, sessionID, cart.StorageKey)
		},
		tracker,
		cart.StableItemID,
		logger.Named("cart"),
	)
	go carts.Run(ctx, cartPruneInterval, cartMaxIdle)

	llmClient, err := llm.New(llm.Config{
		Provider:     cfg.LLMProvider,
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiModel:  cfg.GeminiModel,
		LlamaAPIKey:  cfg.LlamaAPIKey,
		LlamaModel:   cfg.LlamaModel,
		LlamaAPIURL:  cfg.LlamaAPIURL,
	}, &http.Client{})
	if err != nil {
		logger.Warn("menu assistant disabled", zap.Error(err))
	}
	chatService := chat.NewService(llmClient, menuService, cfg.LLMTimeout, logger.Named("chat"))

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}

	// ───────────────────────── HTTP ─────────────────────────
	r := router.NewRouter(router.Handlers{
		Auth:       auth.NewHandler(authService, tokens),
		Restaurant: restaurant.NewHandler(restaurantService),
		Menu:       menu.NewHandler(menuService),
		Cart:       cart.NewHandler(carts, menuService, restaurantService, customerService, tracker),
		Customer:   customer.NewHandler(customerService),
		Waiter:     waiter.NewHandler(waiterService),
		Chat:       chat.NewHandler(chatService),
	}, router.Options{
		CORSOrigins: cfg.CORSOrigins,
		Tokens:      tokens,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
