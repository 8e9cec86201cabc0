package app

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	httpapi "github.com/mateuszroksana/my-backend/internal/api/http"
	"github.com/mateuszroksana/my-backend/internal/config"
	"github.com/mateuszroksana/my-backend/internal/notification"
	"github.com/mateuszroksana/my-backend/internal/platform/logging"
	"github.com/mateuszroksana/my-backend/internal/platform/shutdown"
	mongorepo "github.com/mateuszroksana/my-backend/internal/repository/mongo"
	"github.com/mateuszroksana/my-backend/internal/service"
)

// App contains everything needed to run the teashop backend and shut it
// down cleanly.
type App struct {
	logger      *zap.Logger
	httpServer  *http.Server
	shutdownMgr *shutdown.Manager
	wg          sync.WaitGroup
}

// Build creates and wires all dependencies of the teashop backend.
func Build(cfg config.Config) (*App, error) {
	const op = "app.Build"

	logger, err := logging.New(logging.Config{
		ServiceName: "teashop",
		Env:         string(cfg.AppEnv),
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("op", op))
	logger.Info("Building teashop backend", zap.String("http_addr", cfg.HTTPAddr))

	logger.Info("Connecting to MongoDB")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	logger.Info("MongoDB connection established")

	readiness := func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(ctx, nil) == nil
	}

	productRepo := mongorepo.NewProductRepository(client, cfg.MongoDBName)
	orderRepo := mongorepo.NewOrderRepository(client, cfg.MongoDBName)
	accountRepo := mongorepo.NewAccountRepository(client, cfg.MongoDBName)

	var notifier notification.Notifier
	if cfg.OneSignalEnabled {
		notifier = notification.NewOneSignalNotifier(logger, cfg.OneSignalAppID, cfg.OneSignalAPIKey, cfg.SiteURL)
		logger.Info("OneSignal push notifications enabled")
	} else {
		notifier = notification.NewNoOpNotifier(logger)
		logger.Info("Push notifications disabled, using no-op notifier")
	}

	var verifier service.CredentialVerifier
	if cfg.PlaintextPasswords {
		verifier = service.PlaintextVerifier{}
		logger.Warn("Plaintext password comparison enabled")
	} else {
		verifier = service.BcryptVerifier{}
	}

	catalogService := service.NewCatalogService(logger, productRepo, notifier, cfg.NotifyTimeout)
	orderService := service.NewOrderService(logger, orderRepo)
	accountService := service.NewAccountService(logger, accountRepo, verifier)

	handler := httpapi.NewHandler(catalogService, orderService, accountService, logger)
	router := httpapi.NewRouter(handler, readiness)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownMgr := shutdown.New(cfg.ShutdownTimeout, logger)
	shutdownMgr.Add("mongodb", shutdown.DisconnectMongo(client))
	shutdownMgr.Add("http_server", shutdown.ShutdownHTTPServer(httpServer))

	return &App{
		logger:      logger,
		httpServer:  httpServer,
		shutdownMgr: shutdownMgr,
	}, nil
}

// Run starts the service and blocks until the shutdown signal.
func (a *App) Run() error {
	defer logging.Sync(a.logger)

	a.logger.Info("Starting teashop backend", zap.String("addr", a.httpServer.Addr))
	a.logger.Info("Health check available", zap.String("url", "http://"+a.httpServer.Addr+"/health"))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	a.shutdownMgr.Wait()

	a.wg.Wait()
	a.logger.Info("Teashop backend stopped")
	return nil
}
