package http

import (
	"net/http"
	"time"

	"github.com/mahendrareddyduggireddy/backendproject/internal/auth"
	applog "github.com/mahendrareddyduggireddy/backendproject/internal/log"
	"github.com/mahendrareddyduggireddy/backendproject/internal/services"
)

// Server wires the ledger and auth services behind an HTTP mux. Every
// /transactions and /categories route sits behind the bearer-token
// middleware; auth and health endpoints do not.
type Server struct {
	http.Server
	ledger  *services.LedgerService
	authSvc *auth.Service
}

func NewServer(addr string, ledger *services.LedgerService, authSvc *auth.Service) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:           addr,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16, // 64KB
		},
		ledger:  ledger,
		authSvc: authSvc,
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/auth/register", s.handleRegister)
	mux.HandleFunc("/auth/login", s.handleLogin)

	mux.Handle("/transactions", authSvc.Middleware(http.HandlerFunc(s.handleTransactions)))
	mux.Handle("/transactions/", authSvc.Middleware(http.HandlerFunc(s.handleTransactionSubpath)))
	mux.Handle("/categories", authSvc.Middleware(http.HandlerFunc(s.handleCategories)))

	s.Handler = applog.Middleware(mux)

	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
