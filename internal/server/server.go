// Package server exposes the ledger over a JSON REST API.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/grouptab/grouptab/internal/middleware"
	"github.com/grouptab/grouptab/internal/service"
	"github.com/grouptab/grouptab/internal/storage"
)

// Server routes HTTP requests to the ledger services.
type Server struct {
	router   *mux.Router
	groups   *service.GroupService
	expenses *service.ExpenseService
	balances *service.BalanceService
}

// New creates a Server wired to the given storage backend.
func New(store storage.Store) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		groups:   service.NewGroupService(store),
		expenses: service.NewExpenseService(store),
		balances: service.NewBalanceService(store),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Runs inside mux so the metrics route label can use the path template
	s.router.Use(middleware.Metrics)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()

	// Member directory
	api.HandleFunc("/groups", s.handleCreateGroup).Methods("POST")
	api.HandleFunc("/groups", s.handleListGroups).Methods("GET")
	api.HandleFunc("/groups/{group_id}", s.handleGetGroup).Methods("GET")
	api.HandleFunc("/groups/{group_id}/members", s.handleAddMembers).Methods("POST")

	// Expenses
	api.HandleFunc("/groups/{group_id}/expenses", s.handleCreateExpense).Methods("POST")
	api.HandleFunc("/groups/{group_id}/expenses", s.handleListExpenses).Methods("GET")
	api.HandleFunc("/expenses/{expense_id}", s.handleGetExpense).Methods("GET")
	api.HandleFunc("/expenses/{expense_id}", s.handleUpdateExpense).Methods("PATCH")
	api.HandleFunc("/expenses/{expense_id}", s.handleDeleteExpense).Methods("DELETE")
	api.HandleFunc("/expenses/{expense_id}/participants", s.handleAddParticipant).Methods("POST")
	api.HandleFunc("/expenses/{expense_id}/participants/{member_id}", s.handleRemoveParticipant).Methods("DELETE")

	// Settlement ledger
	api.HandleFunc("/expenses/{expense_id}/settlements/{from}/{to}", s.handleMarkPaid).Methods("PUT")
	api.HandleFunc("/expenses/{expense_id}/settlements/{from}/{to}", s.handleUnmarkPaid).Methods("DELETE")
	api.HandleFunc("/expenses/{expense_id}/settlements/{from}/{to}", s.handleIsPaid).Methods("GET")
	api.HandleFunc("/expenses/{expense_id}/status", s.handleExpenseStatus).Methods("GET")

	// Derived views
	api.HandleFunc("/groups/{group_id}/balances", s.handleGroupBalances).Methods("GET")
	api.HandleFunc("/groups/{group_id}/settle-up", s.handleSettleUp).Methods("GET")
}

// Handler returns the full middleware-wrapped handler chain.
func (s *Server) Handler() http.Handler {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}
	handler := cors.New(corsOptions).Handler(s.router)
	return middleware.Logging(handler)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
