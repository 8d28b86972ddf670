// Package rpc is the query gateway: it exposes each ledger operation as
// a named callable over HTTP/JSON and converts every per-request error
// into a structured failure payload. No error here crashes the serving
// process.
package rpc

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"tally/internal/cache"
	"tally/internal/categories"
	"tally/internal/core"
	"tally/internal/middleware/trace"
	"tally/internal/services"
)

type Server struct {
	http.Server
	ledger     *services.LedgerService
	categories *categories.Source

	// Read caches keyed by operation arguments, flushed on any
	// mutation so readers never see a stale ledger.
	listCache    *cache.LRUCache[[]core.Expense]
	summaryCache *cache.LRUCache[[]core.SummaryRow]
}

// NewServer wires the router, tracing and panic recovery around the
// ledger operations.
func NewServer(addr string, ledger *services.LedgerService, cats *categories.Source, cacheSize int, cacheTTL time.Duration) *Server {
	s := &Server{
		ledger:       ledger,
		categories:   cats,
		listCache:    cache.NewLRUCache[[]core.Expense](cacheSize, cacheTTL),
		summaryCache: cache.NewLRUCache[[]core.SummaryRow](cacheSize, cacheTTL),
	}

	r := mux.NewRouter()
	r.Use(trace.NewMiddleware().Middleware)

	op := r.PathPrefix("/v1/op").Subrouter()
	op.HandleFunc("/add_expense", s.handleAddExpense).Methods(http.MethodPost)
	op.HandleFunc("/list_expenses", s.handleListExpenses).Methods(http.MethodPost)
	op.HandleFunc("/summarize", s.handleSummarize).Methods(http.MethodPost)
	op.HandleFunc("/edit_expense", s.handleEditExpense).Methods(http.MethodPost)
	op.HandleFunc("/delete_expense", s.handleDeleteExpense).Methods(http.MethodPost)
	op.HandleFunc("/add_credit", s.handleAddCredit).Methods(http.MethodPost)

	r.HandleFunc("/v1/categories", s.handleCategories).Methods(http.MethodGet)

	s.Addr = addr
	s.Handler = handlers.RecoveryHandler(
		handlers.PrintRecoveryStack(true),
	)(r)

	return s
}

// Shutdown stops the HTTP server; the ledger service is closed by the
// caller that owns it.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down gateway")
	return s.Server.Shutdown(ctx)
}

// flushCaches drops cached reads after a mutation commits.
func (s *Server) flushCaches() {
	s.listCache.Flush()
	s.summaryCache.Flush()
}
