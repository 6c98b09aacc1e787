package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gestaopro/backend/internal/config"
	"gestaopro/backend/internal/httpapi"
	"gestaopro/backend/internal/service"
	"gestaopro/backend/internal/store"
	"gestaopro/backend/internal/store/memory"
	pgstore "gestaopro/backend/internal/store/postgres"
	redisstore "gestaopro/backend/internal/store/redis"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	gateway, closers := selectGateway(ctx, cfg)

	svc, err := service.New(ctx, gateway)
	if err != nil {
		log.Fatalf("failed to load collections: %v", err)
	}

	api := httpapi.New(svc, cfg.AllowedOrigin, cfg.RequestsPerMinute)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("inventory backend listening on %s", cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("close error: %v", err)
		}
	}

	log.Println("server stopped")
}

// selectGateway picks the persistence backend: postgres when DATABASE_URL
// is set, redis when REDIS_ADDR is set, otherwise the seeded in-memory
// store for dev/demo mode.
func selectGateway(ctx context.Context, cfg config.Config) (store.Gateway, []func() error) {
	closers := make([]func() error, 0, 1)

	if cfg.DatabaseURL != "" {
		pg, err := pgstore.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres unavailable (%v) and DATABASE_URL is set; refusing to start with a fallback store", err)
		}
		closers = append(closers, pg.Close)
		log.Println("gateway: postgres")
		return pg, closers
	}

	if cfg.RedisAddr != "" {
		rd := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.StoreNamespace)
		if err := rd.Ping(ctx); err != nil {
			log.Fatalf("redis unavailable (%v) and REDIS_ADDR is set; refusing to start with a fallback store", err)
		}
		closers = append(closers, rd.Close)
		log.Println("gateway: redis")
		return rd, closers
	}

	log.Println("gateway: in-memory (seeded)")
	return memory.NewSeeded(), closers
}
