// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"project-tracker/internal/api"
	"project-tracker/internal/approval"
	"project-tracker/internal/catalog"
	"project-tracker/internal/common/aws"
	"project-tracker/internal/common/camunda"
	"project-tracker/internal/common/config"
	"project-tracker/internal/common/database"
	"project-tracker/internal/common/logger"
	"project-tracker/internal/common/observability"
	"project-tracker/internal/generator"
	"project-tracker/pkg/registry"

	// Approval workers (3)
	na "project-tracker/internal/workers/approval/notify-approver"
	rcr "project-tracker/internal/workers/approval/review-change-request"
	scr "project-tracker/internal/workers/approval/submit-change-request"

	// Assistant workers (1)
	dr "project-tracker/internal/workers/assistant/draft-response"

	// Generation workers (3)
	gip "project-tracker/internal/workers/generation/generate-investor-profile"
	gs "project-tracker/internal/workers/generation/generate-stakeholder"
	rc "project-tracker/internal/workers/generation/rebuild-catalog"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func fatal(log logger.Logger, msg string, err error) {
	log.Error(msg, map[string]interface{}{"error": err.Error()})
	os.Exit(1)
}

// checkRegistry warns about running task types the activity registry does
// not describe. A missing registry file is not fatal.
func checkRegistry(path string, taskTypes []string, log logger.Logger) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("activity registry unavailable", map[string]interface{}{"path": path, "error": err.Error()})
		return
	}
	if err := reg.Validate(); err != nil {
		log.Warn("activity registry invalid", map[string]interface{}{"path": path, "error": err.Error()})
		return
	}
	if missing := reg.Missing(taskTypes); len(missing) > 0 {
		log.Warn("task types missing from activity registry", map[string]interface{}{"taskTypes": missing})
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.New(logger.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Service:     cfg.App.Name,
		Environment: cfg.App.Environment,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...", zap.String("version", cfg.App.Version))

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		log.Warn("otel meter unavailable, continuing without it", map[string]interface{}{"error": err.Error()})
		obs = observability.Noop()
	}
	obs.EnableTracing(cfg.App.Name, log)

	ctx := context.Background()
	checks := map[string]api.ReadyCheck{}

	// --- Init Zeebe Client ---
	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		RetryConfig: &camunda.RetryConfig{
			MaxRetries: 10,
			BaseDelay:  2 * time.Second,
			MaxDelay:   30 * time.Second,
		},
	})
	if err != nil {
		fatal(log, "zeebe client failed after retries", err)
	}
	checks["zeebe"] = zeebe.HealthCheck
	log.Info("Zeebe client connected successfully", map[string]interface{}{"gateway": cfg.Camunda.BrokerAddress})

	// --- Backing stores (each optional) ---
	var backends catalog.Backends
	var recorder approval.Recorder
	var favorites api.Favorites = catalog.NewMemoryFavorites()
	var search api.Searcher

	if cfg.Database.Postgres.Enabled() {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, log, "PostgreSQL connection")
		if err != nil {
			fatal(log, "postgres failed after retries", err)
		}
		defer pg.Close()

		repo := catalog.NewRepository(pg.DB)
		if err := repo.EnsureSchema(ctx); err != nil {
			fatal(log, "postgres schema migration failed", err)
		}
		backends.Repository = repo
		recorder = repo
		checks["postgres"] = pg.Ping
		log.Info("PostgreSQL connected successfully", nil)
	} else {
		log.Info("PostgreSQL disabled; catalog will not be persisted", nil)
	}

	if cfg.Database.Redis.Enabled() {
		rdb := database.NewRedis(cfg.Database.Redis)
		err = retryWithBackoff(func() error { return rdb.Ping(ctx) }, 10, 2*time.Second, log, "Redis connection")
		if err != nil {
			fatal(log, "redis failed after retries", err)
		}
		defer rdb.Close()

		backends.Snapshot = catalog.NewSnapshotCache(rdb.Client, time.Duration(cfg.Database.Redis.SnapshotTTL)*time.Second)
		favorites = catalog.NewFavoritesStore(rdb.Client)
		checks["redis"] = rdb.Ping
		log.Info("Redis connected successfully", nil)
	} else {
		log.Info("Redis disabled; favorites are kept in memory", nil)
	}

	if cfg.Database.Elasticsearch.Enabled() {
		var es *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return es.Ping(ctx)
		}, 15, 2*time.Second, log, "Elasticsearch connection")
		if err != nil {
			fatal(log, "elasticsearch failed after retries", err)
		}

		index := catalog.NewSearchIndex(es.Client, cfg.Database.Elasticsearch.Index)
		backends.Search = index
		search = index
		checks["elasticsearch"] = es.Ping
		log.Info("Elasticsearch connected successfully", map[string]interface{}{"index": cfg.Database.Elasticsearch.Index})
	} else {
		log.Info("Elasticsearch disabled; keyword search falls back to name matching", nil)
	}

	// --- Catalog and approvals ---
	opts := generator.CatalogOptions{
		MinPerCategory: cfg.Generator.MinPerCategory,
		MaxPerCategory: cfg.Generator.MaxPerCategory,
		Parallel:       cfg.Generator.Parallel,
	}
	catalogSvc := catalog.NewService(catalog.NewStore(nil), backends, opts, obs, log)

	bootCtx, cancelBoot := context.WithTimeout(ctx, 2*time.Minute)
	result, err := catalogSvc.Bootstrap(bootCtx, cfg.Generator.Seed)
	cancelBoot()
	if err != nil {
		fatal(log, "catalog bootstrap failed", err)
	}
	log.Info("Catalog ready", map[string]interface{}{
		"source":     result.Source,
		"projects":   result.Projects,
		"seed":       result.Seed,
		"violations": result.Violations,
	})

	directory := approval.DirectoryFromConfig(cfg.Users)
	approvals := approval.NewService(catalogSvc, directory, recorder, log)

	// --- Notification channels ---
	var email na.EmailSender
	var sms na.SMSSender
	if cfg.Notifications.Email.Enabled {
		ses, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			fatal(log, "ses client init failed", err)
		}
		email = ses
	}
	if cfg.Notifications.SMS.Enabled {
		sns, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			fatal(log, "sns client init failed", err)
		}
		sms = sns
	}

	// --- Register workers ---
	pool := camunda.NewPool(zeebe.GetClient(), obs, log)
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	// --- 1. Generation Workers (3) ---
	{
		handler := rc.NewHandler(&rc.Config{
			Timeout: timeout(rc.TaskType),
			Seed:    cfg.Generator.Seed,
		}, catalogSvc, log)
		pool.Start(rc.TaskType, config.GetWorkerConfig(cfg, rc.TaskType), handler.Handle)
	}
	{
		handler := gs.NewHandler(&gs.Config{Timeout: timeout(gs.TaskType)}, catalogSvc, log)
		pool.Start(gs.TaskType, config.GetWorkerConfig(cfg, gs.TaskType), handler.Handle)
	}
	{
		handler := gip.NewHandler(&gip.Config{Timeout: timeout(gip.TaskType)}, catalogSvc, log)
		pool.Start(gip.TaskType, config.GetWorkerConfig(cfg, gip.TaskType), handler.Handle)
	}

	// --- 2. Approval Workers (3) ---
	{
		handler := scr.NewHandler(&scr.Config{Timeout: timeout(scr.TaskType)}, approvals, log)
		pool.Start(scr.TaskType, config.GetWorkerConfig(cfg, scr.TaskType), handler.Handle)
	}
	{
		handler := rcr.NewHandler(&rcr.Config{Timeout: timeout(rcr.TaskType)}, approvals, log)
		pool.Start(rcr.TaskType, config.GetWorkerConfig(cfg, rcr.TaskType), handler.Handle)
	}
	{
		handler := na.NewHandler(&na.Config{
			Timeout:      timeout(na.TaskType),
			EmailEnabled: cfg.Notifications.Email.Enabled,
			FromEmail:    cfg.Notifications.Email.FromEmail,
			SMSEnabled:   cfg.Notifications.SMS.Enabled,
			SenderID:     cfg.Notifications.SMS.SenderID,
		}, approvals, directory, email, sms, log)
		pool.Start(na.TaskType, config.GetWorkerConfig(cfg, na.TaskType), handler.Handle)
	}

	// --- 3. Assistant Workers (1) ---
	{
		handler := dr.NewHandler(&dr.Config{
			GenAIBaseURL: cfg.APIs.GenAI.BaseURL,
			APIKey:       cfg.APIs.GenAI.APIKey,
			Timeout:      config.GetDuration(cfg.APIs.GenAI.Timeout),
			MaxTokens:    cfg.APIs.GenAI.MaxTokens,
			Temperature:  cfg.APIs.GenAI.Temperature,
		}, catalogSvc, log)
		pool.Start(dr.TaskType, config.GetWorkerConfig(cfg, dr.TaskType), handler.Handle)
	}

	log.Info("Workers registered", map[string]interface{}{"taskTypes": pool.TaskTypes()})
	checkRegistry(cfg.App.RegistryPath, pool.TaskTypes(), log)

	// --- HTTP: health, metrics and the read API ---
	server := &http.Server{
		Addr: cfg.Server.Address,
		Handler: api.NewServer(api.Options{
			Catalog:   catalogSvc,
			Favorites: favorites,
			Approvals: approvals,
			Search:    search,
			Checks:    checks,
		}, log).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received, stopping workers...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping HTTP server", map[string]interface{}{"error": err.Error()})
	}
	if err := zeebe.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err.Error()})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error("Error flushing metrics", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Worker manager stopped", nil)
}
