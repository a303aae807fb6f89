package main

import (
	"context"
	"net/http"

	authapp "github.com/asetku/marketplace/application/auth"
	catalogapp "github.com/asetku/marketplace/application/catalog"
	checkoutapp "github.com/asetku/marketplace/application/checkout"
	reconcileapp "github.com/asetku/marketplace/application/reconcile"
	"github.com/asetku/marketplace/cmd/config"
	redisclient "github.com/asetku/marketplace/cmd/redis"
	_ "github.com/asetku/marketplace/docs"
	lockRepo "github.com/asetku/marketplace/repository/lock"
	orderRepo "github.com/asetku/marketplace/repository/order"
	productRepo "github.com/asetku/marketplace/repository/product"
	sessionRepo "github.com/asetku/marketplace/repository/session"
	txRepo "github.com/asetku/marketplace/repository/tx"
	userRepo "github.com/asetku/marketplace/repository/user"
	"github.com/asetku/marketplace/thirdparty/rabbitmq"
	"github.com/asetku/marketplace/thirdparty/snapgw"
	"github.com/asetku/marketplace/transport"
	"github.com/asetku/marketplace/utils/logger"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// @title 3D MODEL MARKETPLACE API
// @version 1.0
// @description 3D model marketplace transaction API documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	SessionRepo := sessionRepo.NewRepository()
	Locker := lockRepo.NewLocker(cfg.Lock.LeaseTTL, cfg.Lock.PollInterval)

	// Payment gateway client
	Gateway := snapgw.NewClient(&cfg.Midtrans)

	// RabbitMQ delayed-message publisher/consumer for stale-pending reconciliation
	var publisher *rabbitmq.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
		}
		defer publisher.Close()

		consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.Server.BaseURL, cfg.Internal.APIKey)
		if err != nil {
			logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
		}
		defer consumer.Close()

		if err := consumer.Start(context.Background()); err != nil {
			logger.Fatal("err start rabbitmq consumer", zap.Error(err))
		}
	}

	// Initialize application layers
	AuthApp := authapp.NewAuthApp(cfg, UserRepo, SessionRepo)
	CatalogApp := catalogapp.NewCatalogApp(ProductRepo)
	CheckoutApp := checkoutapp.NewCheckoutApp(cfg, TxRepo, OrderRepo, ProductRepo, UserRepo, Locker, Gateway, publisher)
	ReconcileApp := reconcileapp.NewReconcileApp(cfg, TxRepo, OrderRepo, ProductRepo, Gateway)

	httpTransport := transport.NewTransport(cfg, AuthApp, CatalogApp, CheckoutApp, ReconcileApp)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
