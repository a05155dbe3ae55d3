package core

import (
	"math"
	"strings"
	"time"
)

// Transaction kinds. The type column is free-form in the schema but the
// service only ever writes these two values.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// DateLayout is the calendar-date format accepted and stored by the ledger.
const DateLayout = "2006-01-02"

type (
	// Transaction is a single ledger entry. The id is assigned by the store
	// at insert time and is monotonically increasing.
	Transaction struct {
		ID          int64   `json:"id"`
		Type        string  `json:"type"`
		Category    string  `json:"category"`
		Amount      float64 `json:"amount"`
		Date        string  `json:"date"`
		Description *string `json:"description"`
	}

	// TransactionPatch is a partial update. Nil fields keep the stored
	// value; a non-nil pointer overwrites, including an explicit empty
	// description.
	TransactionPatch struct {
		Type        *string  `json:"type"`
		Category    *string  `json:"category"`
		Amount      *float64 `json:"amount"`
		Date        *string  `json:"date"`
		Description *string  `json:"description"`
	}

	// Summary aggregates the ledger, optionally bounded by a date range.
	// Balance is the raw sum of all amounts, not income minus expense.
	Summary struct {
		TotalIncome  float64 `json:"total_income"`
		TotalExpense float64 `json:"total_expense"`
		Balance      float64 `json:"balance"`
	}

	// Category is a labelled income/expense bucket. Categories are seeded by
	// migrations and exposed read-only.
	Category struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
	}

	// User is a credential record. Password is a bcrypt hash, never
	// plaintext. Only the auth layer reads this type.
	User struct {
		ID           int64
		Username     string
		PasswordHash string
	}
)

// Validate checks every field constraint and reports all violations at once.
func (t Transaction) Validate() error {
	var v ValidationError
	checkType(&v, t.Type)
	checkCategory(&v, t.Category)
	checkAmount(&v, t.Amount)
	checkDate(&v, t.Date)
	return v.orNil()
}

// Validate applies the same per-field rules as Transaction.Validate, but only
// to the fields the patch actually supplies.
func (p TransactionPatch) Validate() error {
	var v ValidationError
	if p.Type != nil {
		checkType(&v, *p.Type)
	}
	if p.Category != nil {
		checkCategory(&v, *p.Category)
	}
	if p.Amount != nil {
		checkAmount(&v, *p.Amount)
	}
	if p.Date != nil {
		checkDate(&v, *p.Date)
	}
	return v.orNil()
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p TransactionPatch) IsEmpty() bool {
	return p.Type == nil && p.Category == nil && p.Amount == nil &&
		p.Date == nil && p.Description == nil
}

func checkType(v *ValidationError, t string) {
	if strings.TrimSpace(t) == "" {
		v.add("type", "must be a non-empty string")
	}
}

func checkCategory(v *ValidationError, c string) {
	if strings.TrimSpace(c) == "" {
		v.add("category", "must be a non-empty string")
	}
}

func checkAmount(v *ValidationError, a float64) {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		v.add("amount", "must be a finite number")
		return
	}
	if a <= 0 {
		v.add("amount", "must be greater than zero")
	}
}

func checkDate(v *ValidationError, d string) {
	if _, err := time.Parse(DateLayout, d); err != nil {
		v.add("date", "must be a valid date in YYYY-MM-DD format")
	}
}
