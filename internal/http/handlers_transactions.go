package http

import (
	"net/http"

	"github.com/mahendrareddyduggireddy/backendproject/internal/core"
)

type createTransactionRequest struct {
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description *string `json:"description"`
}

// handleTransactions serves the collection: POST creates, GET lists.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createTransaction(w, r)
	case http.MethodGet:
		s.listTransactions(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

// handleTransactionSubpath serves /transactions/summary and
// /transactions/{id}.
func (s *Server) handleTransactionSubpath(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/transactions/summary" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, "GET")
			return
		}
		s.summarizeTransactions(w, r)
		return
	}

	id, ok := transactionID(r.URL.Path)
	if !ok {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getTransaction(w, r, id)
	case http.MethodPut:
		s.updateTransaction(w, r, id)
	case http.MethodDelete:
		s.deleteTransaction(w, r, id)
	default:
		methodNotAllowed(w, "GET, PUT, DELETE")
	}
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.ledger.Create(r.Context(), core.Transaction{
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	list, err := s.ledger.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request, id int64) {
	t, err := s.ledger.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request, id int64) {
	var patch core.TransactionPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.ledger.Update(r.Context(), id, patch); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeMessage(w, "transaction updated")
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request, id int64) {
	if err := s.ledger.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeMessage(w, "transaction deleted")
}

func (s *Server) summarizeTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sum, err := s.ledger.Summary(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	cats, err := s.ledger.Categories(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}
