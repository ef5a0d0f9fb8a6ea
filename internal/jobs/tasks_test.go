package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockline/stockline-api/internal/domain/entity"
	"github.com/stockline/stockline-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeSnapRepo struct {
	drifted []string
	err     error
}

func (r *fakeSnapRepo) Get(string) (*entity.StockSnapshot, error)  { return nil, nil }
func (r *fakeSnapRepo) ApplyChange(string, int64, time.Time) error { return nil }
func (r *fakeSnapRepo) Set(string, int64, time.Time) error         { return nil }
func (r *fakeSnapRepo) ListDrifted(limit int) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	if limit < len(r.drifted) {
		return r.drifted[:limit], nil
	}
	return r.drifted, nil
}

type fakeEnqueuer struct {
	enqueued []string
	failOn   string
}

func (e *fakeEnqueuer) EnqueueReconcileProduct(_ context.Context, productID string) error {
	if productID == e.failOn {
		return errors.New("redis caído")
	}
	e.enqueued = append(e.enqueued, productID)
	return nil
}

func testLog() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests HandleDriftScan
// ──────────────────────────────────────────────────────────────────────────────

func TestHandleDriftScan_EncolaUnaTareaPorProducto(t *testing.T) {
	snapRepo := &fakeSnapRepo{drifted: []string{"p1", "p2", "p3"}}
	enqueuer := &fakeEnqueuer{}
	j := NewReconcileJobs(nil, snapRepo, enqueuer, testLog())

	task, err := NewDriftScanTask(DriftScanPayload{BatchSize: 10})
	require.NoError(t, err)

	require.NoError(t, j.HandleDriftScan(context.Background(), task))
	assert.Equal(t, []string{"p1", "p2", "p3"}, enqueuer.enqueued)
}

func TestHandleDriftScan_FalloDeEncoladoNoDetieneElBarrido(t *testing.T) {
	snapRepo := &fakeSnapRepo{drifted: []string{"p1", "p2", "p3"}}
	enqueuer := &fakeEnqueuer{failOn: "p2"}
	j := NewReconcileJobs(nil, snapRepo, enqueuer, testLog())

	task, err := NewDriftScanTask(DriftScanPayload{BatchSize: 10})
	require.NoError(t, err)

	require.NoError(t, j.HandleDriftScan(context.Background(), task))
	assert.Equal(t, []string{"p1", "p3"}, enqueuer.enqueued,
		"los demás productos deben encolarse aunque uno falle")
}

func TestHandleDriftScan_RespetaElBatch(t *testing.T) {
	snapRepo := &fakeSnapRepo{drifted: []string{"p1", "p2", "p3"}}
	enqueuer := &fakeEnqueuer{}
	j := NewReconcileJobs(nil, snapRepo, enqueuer, testLog())

	task, err := NewDriftScanTask(DriftScanPayload{BatchSize: 2})
	require.NoError(t, err)

	require.NoError(t, j.HandleDriftScan(context.Background(), task))
	assert.Len(t, enqueuer.enqueued, 2)
}

func TestHandleDriftScan_ConsultaFallidaFallaLaTarea(t *testing.T) {
	snapRepo := &fakeSnapRepo{err: errors.New("db caída")}
	j := NewReconcileJobs(nil, snapRepo, &fakeEnqueuer{}, testLog())

	task, err := NewDriftScanTask(DriftScanPayload{BatchSize: 10})
	require.NoError(t, err)

	assert.Error(t, j.HandleDriftScan(context.Background(), task))
}

func TestHandleDriftScan_PayloadCorruptoNoReintenta(t *testing.T) {
	j := NewReconcileJobs(nil, &fakeSnapRepo{}, &fakeEnqueuer{}, testLog())

	task := asynq.NewTask(TaskDriftScan, []byte("{no es json"))
	err := j.HandleDriftScan(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleReconcileProduct_PayloadSinProductoNoReintenta(t *testing.T) {
	j := NewReconcileJobs(nil, &fakeSnapRepo{}, &fakeEnqueuer{}, testLog())

	task, err := NewReconcileProductTask(ReconcileProductPayload{})
	require.NoError(t, err)

	assert.ErrorIs(t, j.HandleReconcileProduct(context.Background(), task), asynq.SkipRetry)
}
