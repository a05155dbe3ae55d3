package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mahendrareddyduggireddy/backendproject/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }

func TestInsertAndGetRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.InsertTransaction(ctx, core.Transaction{
		Type:        core.TypeIncome,
		Category:    "salary",
		Amount:      1000,
		Date:        "2024-01-01",
		Description: strp("january pay"),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("first id = %d, want 1", created.ID)
	}

	got, err := repo.GetTransaction(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Type != created.Type || got.Category != created.Category ||
		got.Amount != created.Amount || got.Date != created.Date {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, created)
	}
	if got.Description == nil || *got.Description != "january pay" {
		t.Fatalf("description lost: %+v", got.Description)
	}
}

func TestIDsAreMonotonic(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 3; i++ {
		tx, err := repo.InsertTransaction(ctx, core.Transaction{
			Type: core.TypeExpense, Category: "misc", Amount: 1, Date: "2024-01-01",
		})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if tx.ID <= last {
			t.Fatalf("id %d not greater than previous %d", tx.ID, last)
		}
		last = tx.ID
	}
}

func TestListOrderedByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, cat := range []string{"a", "b", "c"} {
		if _, err := repo.InsertTransaction(ctx, core.Transaction{
			Type: core.TypeExpense, Category: cat, Amount: 1, Date: "2024-01-01",
		}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	list, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for i, tx := range list {
		if tx.ID != int64(i+1) {
			t.Fatalf("position %d has id %d", i, tx.ID)
		}
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.GetTransaction(context.Background(), 42); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePartialPreservesOtherFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.InsertTransaction(ctx, core.Transaction{
		Type: core.TypeIncome, Category: "salary", Amount: 1000, Date: "2024-01-01",
		Description: strp("original"),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.UpdateTransaction(ctx, created.ID, core.TransactionPatch{Amount: f64p(1200)}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetTransaction(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount != 1200 {
		t.Fatalf("amount = %v, want 1200", got.Amount)
	}
	if got.Category != "salary" || got.Type != core.TypeIncome || got.Date != "2024-01-01" {
		t.Fatalf("unspecified fields changed: %+v", got)
	}
	if got.Description == nil || *got.Description != "original" {
		t.Fatalf("description changed: %+v", got.Description)
	}
}

func TestUpdateExplicitEmptyDescriptionOverwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.InsertTransaction(ctx, core.Transaction{
		Type: core.TypeExpense, Category: "rent", Amount: 800, Date: "2024-02-01",
		Description: strp("february rent"),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.UpdateTransaction(ctx, created.ID, core.TransactionPatch{Description: strp("")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetTransaction(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Description == nil || *got.Description != "" {
		t.Fatalf("expected empty description to overwrite, got %+v", got.Description)
	}
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	repo := newTestRepo(t)
	err := repo.UpdateTransaction(context.Background(), 99, core.TransactionPatch{Amount: f64p(1)})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteThenGetReturnsNotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.InsertTransaction(ctx, core.Transaction{
		Type: core.TypeIncome, Category: "salary", Amount: 1, Date: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.DeleteTransaction(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSummaryEmptySetIsZero(t *testing.T) {
	repo := newTestRepo(t)
	s, err := repo.SummarizeTransactions(context.Background(), "", "")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.TotalIncome != 0 || s.TotalExpense != 0 || s.Balance != 0 {
		t.Fatalf("expected zeros on empty set, got %+v", s)
	}
}

func TestSummaryBalanceIsRawSum(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := []core.Transaction{
		{Type: core.TypeIncome, Category: "salary", Amount: 100, Date: "2024-01-10"},
		{Type: core.TypeExpense, Category: "groceries", Amount: 40, Date: "2024-01-15"},
	}
	for _, tx := range seed {
		if _, err := repo.InsertTransaction(ctx, tx); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	s, err := repo.SummarizeTransactions(ctx, "", "")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.TotalIncome != 100 || s.TotalExpense != 40 {
		t.Fatalf("totals = %+v", s)
	}
	// Balance is the literal sum of all amounts, not income minus expense.
	if s.Balance != 140 {
		t.Fatalf("balance = %v, want 140", s.Balance)
	}
}

func TestSummaryDateRangeInclusive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := []core.Transaction{
		{Type: core.TypeIncome, Category: "salary", Amount: 100, Date: "2024-01-01"},
		{Type: core.TypeIncome, Category: "salary", Amount: 200, Date: "2024-02-01"},
		{Type: core.TypeExpense, Category: "rent", Amount: 50, Date: "2024-03-01"},
	}
	for _, tx := range seed {
		if _, err := repo.InsertTransaction(ctx, tx); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	s, err := repo.SummarizeTransactions(ctx, "2024-02-01", "2024-03-01")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.TotalIncome != 200 || s.TotalExpense != 50 || s.Balance != 250 {
		t.Fatalf("filtered summary = %+v", s)
	}

	// A single bound is ignored and the unfiltered summary is returned.
	s, err = repo.SummarizeTransactions(ctx, "2024-02-01", "")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.Balance != 350 {
		t.Fatalf("single-bound summary = %+v, want unfiltered", s)
	}
}

func TestCategoriesSeeded(t *testing.T) {
	repo := newTestRepo(t)
	cats, err := repo.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) == 0 {
		t.Fatal("expected seeded categories")
	}
	for _, c := range cats {
		if c.Type != core.TypeIncome && c.Type != core.TypeExpense {
			t.Fatalf("unexpected category type %q", c.Type)
		}
	}
}

func TestUserUniqueness(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u, err := repo.CreateUser(ctx, "alice", "hash1")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected assigned user id")
	}

	if _, err := repo.CreateUser(ctx, "alice", "hash2"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	got, err := repo.UserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.PasswordHash != "hash1" {
		t.Fatalf("hash = %q", got.PasswordHash)
	}

	if _, err := repo.UserByUsername(ctx, "bob"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}
}
