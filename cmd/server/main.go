package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jamesvickers19/loco/internal/adapters/cache"
	"github.com/jamesvickers19/loco/internal/adapters/repositories"
	"github.com/jamesvickers19/loco/internal/adapters/routing"
	"github.com/jamesvickers19/loco/internal/api"
	"github.com/jamesvickers19/loco/internal/config"
	"github.com/jamesvickers19/loco/internal/platform/db"
)

// main is the application composition root.
// It wires concrete adapters (postgres, redis, Mapbox) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	mapboxToken := os.Getenv("MAPBOX_ACCESS_TOKEN")
	if strings.TrimSpace(mapboxToken) == "" {
		log.Fatal("MAPBOX_ACCESS_TOKEN is required")
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	// Schema setup is idempotent; running it on startup keeps local runs
	// zero-step.
	if err := repositories.InitSchema(database); err != nil {
		log.Fatal(err)
	}

	// The matrix cache is optional: without REDIS_ADDR every aggregation
	// hits the Mapbox API directly.
	var matrixCache *cache.RedisMatrixCache
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		ttl, err := time.ParseDuration(config.Get("MATRIX_CACHE_TTL", "15m"))
		if err != nil {
			log.Fatalf("invalid MATRIX_CACHE_TTL: %v", err)
		}

		rdb := redis.NewClient(&redis.Options{Addr: addr})
		matrixCache = cache.NewRedisMatrixCache(rdb, ttl)
		log.Printf("Matrix cache enabled addr=%s ttl=%s", addr, ttl)
	}

	provider, err := routing.NewMapboxMatrixProvider(mapboxToken, matrixCache)
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewPostgresTripRepository(database)
	router := api.NewRouter(repo, provider)

	// Timeouts are tuned for cold-cache aggregation (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
