// Package jobs define las tareas en segundo plano del servicio: el barrido
// nocturno de deriva de snapshots y la reconciliación puntual de un producto.
package jobs

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hibiken/asynq"
	appinv "github.com/stockline/stockline-api/internal/application/inventory"
	"github.com/stockline/stockline-api/internal/domain/repository"
	"github.com/stockline/stockline-api/pkg/logger"
)

const (
	// QueueDefault cola por defecto para las tareas.
	QueueDefault = "default"
	// TaskDriftScan barrido de productos con snapshot desviado.
	TaskDriftScan = "inventory:drift_scan"
	// TaskReconcileProduct reconciliación de un producto puntual.
	TaskReconcileProduct = "inventory:reconcile_product"
)

// DriftScanPayload parámetros del barrido de deriva.
type DriftScanPayload struct {
	BatchSize int `json:"batch_size"`
}

// ReconcileProductPayload parámetros de la reconciliación puntual.
type ReconcileProductPayload struct {
	ProductID string `json:"product_id"`
}

// NewDriftScanTask construye la tarea de barrido.
func NewDriftScanTask(payload DriftScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDriftScan, data), nil
}

// NewReconcileProductTask construye la tarea de reconciliación puntual.
func NewReconcileProductTask(payload ReconcileProductPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReconcileProduct, data), nil
}

// ReconcileEnqueuer encola reconciliaciones puntuales. Lo satisface *Client.
type ReconcileEnqueuer interface {
	EnqueueReconcileProduct(ctx context.Context, productID string) error
}

// ReconcileJobs agrupa los handlers de reconciliación para el worker.
type ReconcileJobs struct {
	reconciler *appinv.ReconcileUseCase
	snapRepo   repository.StockSnapshotRepository
	enqueuer   ReconcileEnqueuer
	log        *logger.Logger
}

// NewReconcileJobs construye los handlers. Con enqueuer, el barrido de deriva
// reparte una tarea por producto; sin él (nil) reconcilia en línea.
func NewReconcileJobs(
	reconciler *appinv.ReconcileUseCase,
	snapRepo repository.StockSnapshotRepository,
	enqueuer ReconcileEnqueuer,
	log *logger.Logger,
) *ReconcileJobs {
	return &ReconcileJobs{reconciler: reconciler, snapRepo: snapRepo, enqueuer: enqueuer, log: log}
}

// HandleDriftScan busca productos cuyo snapshot difiere del stock y los
// reconcilia uno a uno. Los fallos por producto se loguean y no detienen el
// barrido; la tarea falla solo si la consulta inicial falla.
func (j *ReconcileJobs) HandleDriftScan(ctx context.Context, t *asynq.Task) error {
	var payload DriftScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.BatchSize <= 0 {
		payload.BatchSize = 200
	}

	ids, err := j.snapRepo.ListDrifted(payload.BatchSize)
	if err != nil {
		return err
	}
	j.log.Info().Int("candidatos", len(ids)).Msg("barrido de deriva iniciado")

	if j.enqueuer != nil {
		var enqueued int
		for _, id := range ids {
			if err := j.enqueuer.EnqueueReconcileProduct(ctx, id); err != nil {
				j.log.Error().Err(err).Str("product_id", id).Msg("no se pudo encolar la reconciliación")
				continue
			}
			enqueued++
		}
		j.log.Info().Int("encolados", enqueued).Msg("barrido de deriva repartido")
		return nil
	}

	var repaired int
	for _, id := range ids {
		result, err := j.reconciler.Reconcile(ctx, "", id)
		if err != nil {
			j.log.Error().Err(err).Str("product_id", id).Msg("reconciliación fallida")
			continue
		}
		if result.Drifted {
			repaired++
			j.log.Warn().
				Str("product_id", id).
				Int64("stock_previo", result.PreviousStock).
				Int64("saldo", result.Balance).
				Msg("deriva reparada")
		}
	}
	j.log.Info().Int("reparados", repaired).Msg("barrido de deriva terminado")
	return nil
}

// HandleReconcileProduct reconcilia un producto puntual.
func (j *ReconcileJobs) HandleReconcileProduct(ctx context.Context, t *asynq.Task) error {
	var payload ReconcileProductPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.ProductID == "" {
		return asynq.SkipRetry
	}
	result, err := j.reconciler.Reconcile(ctx, "", payload.ProductID)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		j.log.Error().Err(err).Str("product_id", payload.ProductID).Msg("reconciliación puntual fallida")
		return err
	}
	j.log.Info().
		Str("product_id", payload.ProductID).
		Bool("drifted", result.Drifted).
		Int64("saldo", result.Balance).
		Msg("producto reconciliado")
	return nil
}
