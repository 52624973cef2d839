package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/YottademTech/ecommerce-mini-app/internal/catalog"
	h "github.com/YottademTech/ecommerce-mini-app/internal/http"
	"github.com/YottademTech/ecommerce-mini-app/internal/identity"
	"github.com/YottademTech/ecommerce-mini-app/internal/order"
	"github.com/YottademTech/ecommerce-mini-app/internal/service"
	"github.com/YottademTech/ecommerce-mini-app/internal/session"
)

type Config struct {
	HTTPPort        string
	OrderEndpoint   string
	RedisAddr       string // empty means in-memory sessions
	RedisPassword   string
	SessionTTL      time.Duration
	SubmitTimeout   time.Duration
	DisplayDelay    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		OrderEndpoint:   getEnv("ORDER_ENDPOINT", "http://localhost:9000/api/order"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		SessionTTL:      getDurationEnv("SESSION_TTL_MINUTES", 30) * time.Minute,
		SubmitTimeout:   getDurationEnv("SUBMIT_TIMEOUT_SECONDS", 10) * time.Second,
		DisplayDelay:    getDurationEnv("DISPLAY_DELAY_MS", 1800) * time.Millisecond,
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int64) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(defaultValue)
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// Session store: in-memory by default, redis when configured.
	var store session.Store
	var memStore *session.MemoryStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		log.Printf("Redis ping succeeded")
		store = session.NewRedisStore(redisClient, cfg.SessionTTL)
	} else {
		memStore = session.NewMemoryStore(cfg.SessionTTL)
		store = memStore
	}

	orderClient := order.NewClient(cfg.OrderEndpoint, cfg.SubmitTimeout)
	log.Printf("Submitting orders to %s", cfg.OrderEndpoint)

	svc := service.NewStorefront(
		store,
		catalog.Default(),
		orderClient,
		identity.InitDataProvider{},
		cfg.DisplayDelay,
	)

	menuHandler := h.NewMenuHandler(svc, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(svc, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(svc, cfg.RequestTimeout)
	screensHandler := h.NewScreensHandler(svc, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", menuHandler.GetMenu)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Post("/items/{item_id}/increment", cartHandler.IncrementItem)
			r.Post("/items/{item_id}/decrement", cartHandler.DecrementItem)
			r.Delete("/items/{item_id}", cartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkoutHandler.GetCheckout)
			r.Put("/comment", checkoutHandler.UpdateComment)
			r.Put("/shipping", checkoutHandler.UpdateShipping)
			r.Put("/payment", checkoutHandler.UpdatePayment)
			r.Put("/contact", checkoutHandler.UpdateContact)
			r.Post("/confirm", checkoutHandler.Confirm)
		})

		r.Route("/screens", func(r chi.Router) {
			r.Get("/", screensHandler.GetScreen)
			r.Post("/", screensHandler.Navigate)
			r.Post("/back", screensHandler.Back)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	if memStore != nil {
		memStore.Stop()
	}

	log.Println("server exited")
}
