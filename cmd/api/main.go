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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/seatlock/internal/adapter/cache"
	"github.com/srgjo27/seatlock/internal/adapter/handler"
	"github.com/srgjo27/seatlock/internal/adapter/lockstore/etcdlock"
	"github.com/srgjo27/seatlock/internal/adapter/lockstore/redislock"
	"github.com/srgjo27/seatlock/internal/adapter/notifier"
	"github.com/srgjo27/seatlock/internal/adapter/repository/postgres"
	"github.com/srgjo27/seatlock/internal/adapter/scheduler"
	"github.com/srgjo27/seatlock/internal/core/ports"
	"github.com/srgjo27/seatlock/internal/core/services"
	"github.com/srgjo27/seatlock/internal/platform/config"
	"github.com/srgjo27/seatlock/internal/platform/database"
	"github.com/srgjo27/seatlock/internal/platform/logging"
	"github.com/srgjo27/seatlock/internal/platform/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)

	if cfg.TracingEnabled {
		shutdownTracer, err := tracing.InitTracer("seatlock", os.Stdout)
		if err != nil {
			log.Fatalf("Failed to initialize tracer: %v", err)
		}
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				log.Printf("Failed to shutdown tracer: %v", err)
			}
		}()
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(rootCtx, database.Config{
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		User:       cfg.DBUser,
		Password:   cfg.DBPassword,
		DBName:     cfg.DBName,
		MaxRetries: cfg.DBMaxRetries,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	if err := postgres.Migrate(rootCtx, db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connecting to Redis at %s...", cfg.RedisAddr)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(rootCtx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected successfully!")

	var locks ports.LockStore
	switch cfg.LockBackend {
	case config.LockBackendEtcd:
		etcdClient, err := etcdlock.NewClient(cfg.EtcdEndpoints, cfg.EtcdTimeout)
		if err != nil {
			log.Fatalf("Failed to create etcd client: %v", err)
		}
		defer etcdClient.Close()
		log.Println("Seat locks stored in etcd.")
		locks = etcdlock.NewLockStore(etcdClient)
	default:
		locks = redislock.NewLockStore(redisClient)
	}

	events, err := cache.NewGeometryCache(postgres.NewEventRepository(db), cfg.GeometryCacheSize)
	if err != nil {
		log.Fatalf("Failed to create geometry cache: %v", err)
	}

	var sinks []ports.ConfirmationSink
	if cfg.AMQPURL != "" {
		sinks = append(sinks, notifier.NewAMQPPublisher(cfg.AMQPURL, logger))
	}
	fanout := notifier.NewFanout(
		[]ports.Notifier{notifier.NewRedisNotifier(redisClient, cfg.NotifyChannelPrefix)},
		sinks,
	)

	reservationService := services.NewReservationService(
		postgres.NewReservationRepository(db),
		locks,
		events,
		services.WithNotifier(fanout),
		services.WithHoldTTL(cfg.HoldTTL),
		services.WithNotifyTimeout(cfg.NotifyTimeout),
		services.WithLogger(logger),
	)

	sweeps, err := scheduler.NewSweepScheduler(reservationService, cfg.SweepSchedule, time.Minute, logger)
	if err != nil {
		log.Fatalf("Invalid sweep schedule %q: %v", cfg.SweepSchedule, err)
	}

	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		_ = sweeps.Start(rootCtx)
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(handler.Metrics)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	handler.NewReservationHandler(reservationService, events, logger).RegisterRoutes(e)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      e,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	<-rootCtx.Done()
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	<-sweepDone
	reservationService.Wait()

	log.Println("Server exiting")
}
