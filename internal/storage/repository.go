package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mahendrareddyduggireddy/backendproject/internal/core"

	_ "modernc.org/sqlite"
)

// ErrDuplicateUsername is returned when a username is already taken.
var ErrDuplicateUsername = errors.New("username already exists")

// SQLiteRepository is the store of record. Every statement runs in autocommit
// mode; the database is the sole point of serialization for concurrent
// writers.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// InsertTransaction stores a new row and returns the record with its
// assigned id.
func (r *SQLiteRepository) InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (type, category, amount, date, description) VALUES (?, ?, ?, ?, ?)`,
		t.Type, t.Category, t.Amount, t.Date, t.Description)
	if err != nil {
		return core.Transaction{}, &core.StorageError{Op: "insert transaction", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, &core.StorageError{Op: "read insert id", Err: err}
	}
	t.ID = id

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"type", t.Type,
		"category", t.Category,
		"amount", t.Amount,
		"date", t.Date)

	return t, nil
}

// ListTransactions returns every row in id order.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, category, amount, date, description FROM transactions ORDER BY id`)
	if err != nil {
		return nil, &core.StorageError{Op: "list transactions", Err: err}
	}
	defer rows.Close()

	out := make([]core.Transaction, 0)
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.ID, &t.Type, &t.Category, &t.Amount, &t.Date, &t.Description); err != nil {
			return nil, &core.StorageError{Op: "scan transaction", Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "list transactions", Err: err}
	}
	return out, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	var t core.Transaction
	err := r.db.QueryRowContext(ctx,
		`SELECT id, type, category, amount, date, description FROM transactions WHERE id = ?`, id).
		Scan(&t.ID, &t.Type, &t.Category, &t.Amount, &t.Date, &t.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, &core.StorageError{Op: "get transaction", Err: err}
	}
	return t, nil
}

// UpdateTransaction applies a partial update. Nil patch fields keep the
// stored value via COALESCE; supplied fields overwrite, including an
// explicit empty description.
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, id int64, p core.TransactionPatch) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET
			type = COALESCE(?, type),
			category = COALESCE(?, category),
			amount = COALESCE(?, amount),
			date = COALESCE(?, date),
			description = COALESCE(?, description)
		WHERE id = ?`,
		p.Type, p.Category, p.Amount, p.Date, p.Description, id)
	if err != nil {
		return &core.StorageError{Op: "update transaction", Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return &core.StorageError{Op: "update transaction", Err: err}
	}
	if n == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction updated", "id", id)
	return nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return &core.StorageError{Op: "delete transaction", Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return &core.StorageError{Op: "delete transaction", Err: err}
	}
	if n == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// SummarizeTransactions computes aggregate totals. The date filter applies
// only when both bounds are supplied; the balance is the raw sum of all
// amounts. An empty row set yields zeros.
func (r *SQLiteRepository) SummarizeTransactions(ctx context.Context, startDate, endDate string) (core.Summary, error) {
	query := `SELECT
		COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0),
		COALESCE(SUM(amount), 0)
	FROM transactions`

	var args []any
	if startDate != "" && endDate != "" {
		query += ` WHERE date BETWEEN ? AND ?`
		args = append(args, startDate, endDate)
	}

	var s core.Summary
	if err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&s.TotalIncome, &s.TotalExpense, &s.Balance); err != nil {
		return core.Summary{}, &core.StorageError{Op: "summarize transactions", Err: err}
	}
	return s, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, &core.StorageError{Op: "list categories", Err: err}
	}
	defer rows.Close()

	out := make([]core.Category, 0)
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type); err != nil {
			return nil, &core.StorageError{Op: "scan category", Err: err}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "list categories", Err: err}
	}
	return out, nil
}

// CreateUser stores a credential record. The password must already be
// hashed by the caller.
func (r *SQLiteRepository) CreateUser(ctx context.Context, username, passwordHash string) (core.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password) VALUES (?, ?)`, username, passwordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return core.User{}, ErrDuplicateUsername
		}
		return core.User{}, &core.StorageError{Op: "create user", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, &core.StorageError{Op: "read insert id", Err: err}
	}

	slog.InfoContext(ctx, "User created", "id", id, "username", username)
	return core.User{ID: id, Username: username, PasswordHash: passwordHash}, nil
}

func (r *SQLiteRepository) UserByUsername(ctx context.Context, username string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrNotFound
	}
	if err != nil {
		return core.User{}, &core.StorageError{Op: "get user", Err: err}
	}
	return u, nil
}
