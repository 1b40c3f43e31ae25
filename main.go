package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"messenger-service/internal/auth"
	"messenger-service/internal/config"
	"messenger-service/internal/db"
	"messenger-service/internal/handlers"
	"messenger-service/internal/middleware"
	"messenger-service/internal/observability"
	"messenger-service/internal/rabbitmq"
	"messenger-service/internal/repositories"
	"messenger-service/internal/telemetry"
)

const serviceName = "messenger-service"

func main() {
	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap.NewProduction: %v", err)
	}
	defer zlog.Sync()
	logger := zlog.Sugar()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	shutdownTracing, err := telemetry.SetupTracing(context.Background(), serviceName, cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		logger.Fatalf("setup tracing: %v", err)
	}

	database, err := db.Connect(cfg.DBDSN, logger)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer database.Close()

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
	defer publisher.Close()
	logger.Infow("event publisher ready", "mode", rabbitmq.PublisherMode(publisher))

	audit := telemetry.NewAuditEmitter(publisher, logger, "audit.messenger", serviceName, cfg.Environment)

	tokens, err := auth.NewTokenService(cfg)
	if err != nil {
		logger.Fatalf("token service: %v", err)
	}

	userRepo := repositories.NewUserRepo(database)
	chatRepo := repositories.NewChatRepo(database)
	messageRepo := repositories.NewMessageRepo(database)

	authHandler := handlers.NewAuthHandler(userRepo, tokens, audit)
	chatHandler := handlers.NewChatHandler(chatRepo, userRepo, audit)
	messageHandler := handlers.NewMessageHandler(messageRepo, audit)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(otelgin.Middleware(serviceName))

	identity := middleware.Identity(tokens)

	router.POST("/auth", authHandler.Authenticate)
	router.GET("/chats", identity, chatHandler.List)
	router.POST("/chats", identity, chatHandler.Action)
	router.GET("/messages", identity, messageHandler.List)
	router.POST("/messages", identity, messageHandler.Send)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterDebugRoutes(router, audit, cfg.Debug)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Infow("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorw("server shutdown", "error", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Errorw("tracing shutdown", "error", err)
	}
}
