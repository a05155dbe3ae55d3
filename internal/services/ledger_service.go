package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mahendrareddyduggireddy/backendproject/internal/core"
)

// TransactionStore is the persistence contract the ledger depends on.
// *storage.SQLiteRepository satisfies it; tests use fakes.
type TransactionStore interface {
	InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, p core.TransactionPatch) error
	DeleteTransaction(ctx context.Context, id int64) error
	SummarizeTransactions(ctx context.Context, startDate, endDate string) (core.Summary, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
}

// LedgerService validates and executes transaction operations against the
// store. It holds no state between requests; the database is the store of
// record.
type LedgerService struct {
	store TransactionStore
}

func NewLedgerService(store TransactionStore) *LedgerService {
	return &LedgerService{store: store}
}

// Create validates every field and inserts a new transaction. Validation
// failures report all violated fields at once.
func (s *LedgerService) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	created, err := s.store.InsertTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return created, nil
}

func (s *LedgerService) List(ctx context.Context) ([]core.Transaction, error) {
	list, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return list, nil
}

func (s *LedgerService) Get(ctx context.Context, id int64) (core.Transaction, error) {
	t, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return t, nil
}

// Update applies a partial update. Supplied fields are validated with the
// same rules as Create; omitted fields keep their stored value.
func (s *LedgerService) Update(ctx context.Context, id int64, p core.TransactionPatch) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if err := s.store.UpdateTransaction(ctx, id, p); err != nil {
		return fmt.Errorf("update transaction %d: %w", id, err)
	}
	return nil
}

func (s *LedgerService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return nil
}

// Summary computes aggregate totals. The date filter only applies when both
// bounds are present; a single bound is ignored and the unfiltered summary
// is returned.
func (s *LedgerService) Summary(ctx context.Context, startDate, endDate string) (core.Summary, error) {
	if (startDate == "") != (endDate == "") {
		slog.DebugContext(ctx, "Ignoring single summary bound",
			"start_date", startDate, "end_date", endDate)
		startDate, endDate = "", ""
	}

	sum, err := s.store.SummarizeTransactions(ctx, startDate, endDate)
	if err != nil {
		return core.Summary{}, fmt.Errorf("summarize transactions: %w", err)
	}
	return sum, nil
}

func (s *LedgerService) Categories(ctx context.Context) ([]core.Category, error) {
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}
