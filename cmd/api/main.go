package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/car-rental/internal/audit"
	"github.com/BruksfildServices01/car-rental/internal/cache"
	"github.com/BruksfildServices01/car-rental/internal/config"
	dbpkg "github.com/BruksfildServices01/car-rental/internal/db"
	"github.com/BruksfildServices01/car-rental/internal/domain/rental"
	infraRepo "github.com/BruksfildServices01/car-rental/internal/infra/repository"
	"github.com/BruksfildServices01/car-rental/internal/metrics"
	"github.com/BruksfildServices01/car-rental/internal/routes"
	"github.com/BruksfildServices01/car-rental/internal/storage"
	ucCar "github.com/BruksfildServices01/car-rental/internal/usecase/car"
	"github.com/BruksfildServices01/car-rental/internal/validators"
)

func main() {

	cfg := config.Load()

	// ======================================================
	// PERSISTENCE + AUDIT
	// ======================================================
	var (
		repo      rental.Repository
		sink      audit.Sink
		auditLogs audit.Reader
	)

	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Println("storage: in-memory, data is lost on restart")
		repo = infraRepo.NewRentalMemoryRepository()
		mem := audit.NewMemory()
		sink, auditLogs = mem, mem
	default:
		db := dbpkg.NewDB(cfg)
		repo = infraRepo.NewRentalGormRepository(db)
		logger := audit.New(db)
		sink, auditLogs = logger, logger
	}

	auditDispatcher := audit.NewDispatcher(sink)
	defer auditDispatcher.Close()

	// ======================================================
	// SEARCH CACHE
	// ======================================================
	var searchCache ucCar.SearchCache = cache.Noop{}
	if cfg.UseRedis() {
		rdb, err := cache.NewRedisClient(context.Background(), cfg)
		if err != nil {
			log.Printf("redis unavailable, search cache disabled: %v", err)
		} else {
			defer rdb.Close()
			searchCache = cache.NewRedisSearchCache(rdb, cfg.SearchCacheTTL)
		}
	}

	// ======================================================
	// IMAGE STORAGE
	// ======================================================
	var images ucCar.ImageStore
	if cfg.UseS3() {
		images = storage.NewS3Store(cfg)
	} else {
		images = storage.NewLocalStore(cfg.MediaDir, cfg.MediaURL)
	}

	deps := routes.Dependencies{
		Repo:      repo,
		Audit:     auditDispatcher,
		AuditLogs: auditLogs,
		Metrics:   metrics.New(),
		Images:    images,
		Cache:     searchCache,
	}
	if cfg.VerifyEmailDomain {
		deps.CheckEmailDomain = validators.IsEmailDomainValid
	}

	r := gin.Default()
	routes.RegisterRoutes(r, cfg, deps)

	// ======================================================
	// SERVE
	// ======================================================
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
