package workers

import (
	"context"
	"time"

	"localinfo/internal/ports/orphan"
	"localinfo/internal/ports/storage"

	"go.uber.org/zap"
)

// OrphanSweeper deletes uploaded objects that a failed request left behind.
type OrphanSweeper struct {
	Queue     orphan.Queue
	Storage   storage.Deleter
	BatchSize int64
	Interval  time.Duration
	Logger    *zap.Logger
}

func NewOrphanSweeper(queue orphan.Queue, store storage.Deleter, batchSize int64, interval time.Duration, logger *zap.Logger) *OrphanSweeper {
	return &OrphanSweeper{
		Queue:     queue,
		Storage:   store,
		BatchSize: batchSize,
		Interval:  interval,
		Logger:    logger,
	}
}

// Run sweeps every Interval until ctx is cancelled.
func (w *OrphanSweeper) Run(ctx context.Context) {
	w.Logger.Info("orphan sweeper started", zap.Duration("interval", w.Interval), zap.Int64("batch", w.BatchSize))
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("orphan sweeper stopped")
			return
		case <-ticker.C:
			if _, err := w.Sweep(ctx); err != nil && ctx.Err() == nil {
				w.Logger.Error("orphan sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep pops one batch and deletes each object. URLs that could not be
// deleted are put back for the next round. It returns how many were deleted.
func (w *OrphanSweeper) Sweep(ctx context.Context) (int, error) {
	urls, err := w.Queue.Pop(ctx, w.BatchSize)
	if err != nil {
		return 0, err
	}
	if len(urls) == 0 {
		return 0, nil
	}

	var failed []string
	for _, url := range urls {
		if err := w.Storage.Delete(ctx, url); err != nil {
			w.Logger.Warn("could not delete orphaned object", zap.String("url", url), zap.Error(err))
			failed = append(failed, url)
		}
	}

	if len(failed) > 0 {
		if err := w.Queue.Record(context.WithoutCancel(ctx), failed); err != nil {
			w.Logger.Error("could not requeue orphaned objects", zap.Strings("urls", failed), zap.Error(err))
		}
	}

	deleted := len(urls) - len(failed)
	w.Logger.Info("orphan sweep done", zap.Int("deleted", deleted), zap.Int("requeued", len(failed)))
	return deleted, nil
}
