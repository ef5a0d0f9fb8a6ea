package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	appinv "github.com/stockline/stockline-api/internal/application/inventory"
	"github.com/stockline/stockline-api/internal/infrastructure/postgres"
	"github.com/stockline/stockline-api/internal/jobs"
	"github.com/stockline/stockline-api/pkg/config"
	"github.com/stockline/stockline-api/pkg/logger"
)

// Worker de trabajos en segundo plano: barrido periódico de deriva de stock y
// reconciliación de productos encolados. Requiere Redis.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	if cfg.Redis.Addr == "" {
		log.Fatal().Msg("el worker requiere REDIS_ADDR")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	txRunner := postgres.NewTxRunner(pool)
	reconciler := appinv.NewReconcileUseCase(txRunner)
	snapshotRepo := postgres.NewStockSnapshotRepository(pool)

	// El barrido de deriva reparte una tarea por producto vía este cliente.
	client := jobs.NewClient(redisOpts)
	defer client.Close()
	reconcileJobs := jobs.NewReconcileJobs(reconciler, snapshotRepo, client, log)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:      redisOpts,
		Concurrency:    cfg.Worker.Concurrency,
		ReconcileCron:  cfg.Worker.ReconcileCron,
		ReconcileBatch: cfg.Worker.ReconcileBatch,
		Jobs:           reconcileJobs,
		Log:            log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar worker")
	}

	log.Info().
		Int("concurrency", cfg.Worker.Concurrency).
		Str("cron", cfg.Worker.ReconcileCron).
		Msg("worker iniciado")

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("worker finalizado con error")
	}
	log.Info().Msg("worker detenido")
}
