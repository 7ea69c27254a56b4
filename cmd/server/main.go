package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/mux"

	authhandlers "slicesite/internal/auth/handlers"
	authrepo "slicesite/internal/auth/repository"
	authservice "slicesite/internal/auth/service"
	cataloghandlers "slicesite/internal/catalog/handlers"
	catalogrepo "slicesite/internal/catalog/repository"
	catalogservice "slicesite/internal/catalog/service"
	"slicesite/internal/common/httpx"
	"slicesite/internal/common/logger"
	"slicesite/internal/config"
	"slicesite/internal/connections/database"
	"slicesite/internal/connections/rabbitmq"
	"slicesite/internal/orders/events"
	ordershandlers "slicesite/internal/orders/handlers"
	"slicesite/internal/orders/pricing"
	ordersrepo "slicesite/internal/orders/repository"
	ordersservice "slicesite/internal/orders/service"
)

const version = "0.1.0"

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yml", "path to YAML config")
	flag.Parse()

	log := logger.New("slicesite")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Error("config_load", err, nil)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Error("db_connect", err, nil)
		os.Exit(1)
	}
	defer pool.Close()
	log.Info("db_connected", map[string]any{
		"host": cfg.Database.Host, "port": cfg.Database.Port, "database": cfg.Database.Database,
	})

	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := database.Migrate(ctx, pool); err != nil {
			log.Error("db_migrate", err, nil)
			os.Exit(1)
		}
		log.Info("db_migrated", nil)
	}

	// Order events are optional: no broker in config means no publisher.
	var publisher ordersservice.EventPublisher
	if cfg.RabbitMQ.Enabled() {
		rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			log.Error("rabbitmq_connect", err, nil)
			os.Exit(1)
		}
		defer rmq.Close()
		if err := rmq.Ping(); err != nil {
			log.Error("rabbitmq_ping", err, nil)
			os.Exit(1)
		}

		pub, err := events.NewPublisher(rmq)
		if err != nil {
			log.Error("rabbitmq_declare", err, nil)
			os.Exit(1)
		}
		publisher = pub
		log.Info("rabbitmq_connected", map[string]any{
			"host": cfg.RabbitMQ.Host, "port": cfg.RabbitMQ.Port, "vhost": cfg.RabbitMQ.VHost,
		})
	}

	menuRepo := catalogrepo.NewMenuRepository(pool)
	menuService := catalogservice.NewMenuService(menuRepo)

	userRepo := authrepo.NewUserRepository(pool)
	authService := authservice.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	guard := authhandlers.NewMiddleware(authService, cfg.Auth.AdminEmails)

	orderRepo := ordersrepo.NewOrderRepository(pool)
	orderService := ordersservice.NewOrderService(pricing.NewResolver(menuRepo), orderRepo, publisher, log)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("", root).Methods("GET")
	api.HandleFunc("/health", health).Methods("GET")
	authhandlers.NewAuthHandler(authService).RegisterRoutes(api, guard)
	cataloghandlers.NewMenuHandler(menuService).RegisterRoutes(api, guard)
	ordershandlers.NewOrderHandler(orderService, log).RegisterRoutes(api, guard)

	srv := httpx.New(fmt.Sprintf(":%d", cfg.HTTP.Port), httpx.RequestLogger(log, r), cfg.HTTP.ShutdownGrace())
	log.Info("server_started", map[string]any{"port": cfg.HTTP.Port})
	if err := srv.Run(ctx); err != nil {
		log.Error("server_failed", err, nil)
		os.Exit(1)
	}
	log.Info("server_stopped", nil)
}

func root(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"Project": "SliceSite API",
		"Version": version,
	})
}

func health(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
