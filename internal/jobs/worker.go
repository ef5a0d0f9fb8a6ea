package jobs

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stockline/stockline-api/pkg/logger"
)

// Worker envuelve el servidor Asynq y el scheduler de tareas cron.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	log       *logger.Logger
}

// WorkerConfig dependencias para armar el worker.
type WorkerConfig struct {
	RedisOpts      asynq.RedisClientOpt
	Concurrency    int
	ReconcileCron  string // expresión cron del barrido de deriva; vacío lo desactiva
	ReconcileBatch int
	Jobs           *ReconcileJobs
	Log            *logger.Logger
}

// NewWorker construye el worker con sus handlers y, si hay cron configurado,
// registra el barrido de deriva programado.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskDriftScan, cfg.Jobs.HandleDriftScan)
	mux.HandleFunc(TaskReconcileProduct, cfg.Jobs.HandleReconcileProduct)

	var scheduler *asynq.Scheduler
	if cfg.ReconcileCron != "" {
		task, err := NewDriftScanTask(DriftScanPayload{BatchSize: cfg.ReconcileBatch})
		if err != nil {
			return nil, err
		}
		scheduler = asynq.NewScheduler(cfg.RedisOpts, &asynq.SchedulerOpts{Location: time.UTC})
		if _, err := scheduler.Register(cfg.ReconcileCron, task, asynq.Queue(QueueDefault)); err != nil {
			return nil, err
		}
	}

	return &Worker{server: srv, mux: mux, scheduler: scheduler, log: cfg.Log}, nil
}

// Run procesa tareas hasta que el contexto se cancele.
func (w *Worker) Run(ctx context.Context) error {
	if w.scheduler != nil {
		if err := w.scheduler.Start(); err != nil {
			return err
		}
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.shutdown()
		return ctx.Err()
	case err := <-errCh:
		w.shutdown()
		return err
	}
}

func (w *Worker) shutdown() {
	if w.scheduler != nil {
		w.scheduler.Shutdown()
	}
	w.server.Shutdown()
}

// Client encola tareas desde la API (por ejemplo, una reconciliación puntual
// solicitada vía HTTP que no necesita respuesta síncrona).
type Client struct {
	client *asynq.Client
}

// NewClient construye el cliente Asynq.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueueReconcileProduct encola la reconciliación de un producto.
func (c *Client) EnqueueReconcileProduct(ctx context.Context, productID string) error {
	task, err := NewReconcileProductTask(ReconcileProductPayload{ProductID: productID})
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

// Close libera los recursos del cliente.
func (c *Client) Close() error {
	return c.client.Close()
}
