// Package worker drains ledger events into the external mirror sheet.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/mirror"
	"tally/internal/storage"
)

// MirrorStore is the slice of the repository the worker needs.
type MirrorStore interface {
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	GetPendingMirrorEntries(ctx context.Context, limit int) ([]core.Transaction, error)
	MarkMirrored(ctx context.Context, id string) error
	MarkMirrorError(ctx context.Context, id string) error
}

type Config struct {
	// PollInterval is how often to sweep for entries the queue missed.
	PollInterval time.Duration

	// BatchSize caps entries per sweep.
	BatchSize int
}

func DefaultConfig() Config {
	return Config{
		PollInterval: 30 * time.Second,
		BatchSize:    10,
	}
}

// MirrorWorker copies ledger entries to the mirror sheet. It is driven
// two ways: queue events for low latency, and a polling sweep that
// catches entries whose events were lost.
type MirrorWorker struct {
	store  MirrorStore
	sheet  mirror.Sheet
	config Config

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewMirrorWorker(store MirrorStore, sheet mirror.Sheet, config Config) *MirrorWorker {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultConfig().PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}
	return &MirrorWorker{
		store:  store,
		sheet:  sheet,
		config: config,
	}
}

// HandleEvent dispatches one queue message. Unknown kinds are an
// error so the delivery is not silently acked.
func (w *MirrorWorker) HandleEvent(ctx context.Context, msg *amqp.EntryEventMessage) error {
	switch msg.Kind {
	case amqp.KindEntryRecorded:
		return w.handleRecorded(ctx, msg.EntryID)
	case amqp.KindEntryDeleted:
		return w.handleDeleted(ctx, msg.EntryID)
	default:
		return fmt.Errorf("unknown event kind: %s", msg.Kind)
	}
}

func (w *MirrorWorker) handleRecorded(ctx context.Context, id string) error {
	t, err := w.store.GetTransaction(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		// Deleted before we got to it. Nothing to mirror.
		slog.WarnContext(ctx, "Entry gone before mirroring, skipping", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load entry %s: %w", id, err)
	}

	if err := w.sheet.AppendEntry(ctx, t); err != nil {
		if markErr := w.store.MarkMirrorError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to record mirror error", "id", id, "error", markErr)
		}
		return fmt.Errorf("mirror entry %s: %w", id, err)
	}

	return w.store.MarkMirrored(ctx, id)
}

func (w *MirrorWorker) handleDeleted(ctx context.Context, id string) error {
	if err := w.sheet.RemoveEntry(ctx, id); err != nil {
		return fmt.Errorf("remove mirrored entry %s: %w", id, err)
	}
	return nil
}

// ProcessPending sweeps one batch of unmirrored entries. Failures are
// marked and logged per entry; the sweep keeps going.
func (w *MirrorWorker) ProcessPending(ctx context.Context) (int, error) {
	pending, err := w.store.GetPendingMirrorEntries(ctx, w.config.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("load pending entries: %w", err)
	}

	mirrored := 0
	for _, t := range pending {
		if err := ctx.Err(); err != nil {
			return mirrored, err
		}
		if err := w.sheet.AppendEntry(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror pending entry", "id", t.ID, "error", err)
			if markErr := w.store.MarkMirrorError(ctx, t.ID); markErr != nil {
				slog.ErrorContext(ctx, "Failed to record mirror error", "id", t.ID, "error", markErr)
			}
			continue
		}
		if err := w.store.MarkMirrored(ctx, t.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to mark entry mirrored", "id", t.ID, "error", err)
			continue
		}
		mirrored++
	}

	if len(pending) > 0 {
		slog.InfoContext(ctx, "Pending mirror sweep finished",
			"pending", len(pending), "mirrored", mirrored)
	}
	return mirrored, nil
}

// Start begins the polling sweep. Returns an error if already running.
func (w *MirrorWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("mirror worker is already running")
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.runLoop(ctx)

	slog.InfoContext(ctx, "Mirror worker started",
		"poll_interval", w.config.PollInterval,
		"batch_size", w.config.BatchSize)
	return nil
}

// Stop signals the sweep loop and waits for it to drain.
func (w *MirrorWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)

	select {
	case <-w.doneCh:
		slog.InfoContext(ctx, "Mirror worker stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Mirror worker stop timed out")
		return ctx.Err()
	}

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
	return nil
}

func (w *MirrorWorker) runLoop(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	// One sweep up front so a backlog does not wait a full interval.
	if _, err := w.ProcessPending(ctx); err != nil && ctx.Err() == nil {
		slog.ErrorContext(ctx, "Pending mirror sweep failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			if _, err := w.ProcessPending(ctx); err != nil && ctx.Err() == nil {
				slog.ErrorContext(ctx, "Pending mirror sweep failed", "error", err)
			}
		}
	}
}
