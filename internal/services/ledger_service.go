package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tally/internal/amqp"
	"tally/internal/backend"
	"tally/internal/core"
)

// EventPublisher pushes ledger events onto the message queue for the
// mirror worker. The AMQP client implements it.
type EventPublisher interface {
	PublishEntryEvent(ctx context.Context, msg *amqp.EntryEventMessage) error
	Close() error
}

// LedgerService orchestrates writes across the store and the queue.
type LedgerService struct {
	store     backend.Store
	publisher EventPublisher
}

func NewLedgerService(store backend.Store, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
	}
}

// RecordTransactionParams carries the caller-supplied fields of a new
// ledger entry. ID and running balance are computed server side.
type RecordTransactionParams struct {
	Date      core.Date
	Details   string
	Category  string
	Type      core.TransactionType
	Amount    decimal.Decimal
	ProjectID string
	StaffID   string
}

// RecordTransaction validates, assigns an ID, extends the running
// balance and saves the entry. The mirror event is best effort: a
// publish failure never fails a locally saved write.
func (s *LedgerService) RecordTransaction(ctx context.Context, p RecordTransactionParams) (core.Transaction, error) {
	t := core.Transaction{
		ID:        uuid.NewString(),
		Date:      p.Date,
		Details:   p.Details,
		Category:  p.Category,
		Type:      p.Type,
		Amount:    p.Amount,
		ProjectID: p.ProjectID,
		StaffID:   p.StaffID,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	latest, err := s.store.LatestBalance(ctx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("latest balance: %w", err)
	}
	t.Balance = latest.Add(t.Signed())

	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publish(ctx, amqp.NewEntryRecordedMessage(t.ID)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish entry recorded event",
			"id", t.ID, "error", err)
		// Entry is saved locally, so the request still succeeds.
	}

	return t, nil
}

// DeleteTransaction removes the entry locally and announces the
// deletion to the mirror.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if err := s.publish(ctx, amqp.NewEntryDeletedMessage(id)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish entry deleted event",
			"id", id, "error", err)
	}

	return nil
}

func (s *LedgerService) publish(ctx context.Context, msg *amqp.EntryEventMessage) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Event publisher not available, skipping ledger event",
			"kind", msg.Kind)
		return nil
	}
	return s.publisher.PublishEntryEvent(ctx, msg)
}

func (s *LedgerService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
