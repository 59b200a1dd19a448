package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/grouptab/grouptab/internal/models"
	"github.com/grouptab/grouptab/internal/service"
)

type groupResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"created_at"`
}

type settlementResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type expenseResponse struct {
	ID              string               `json:"id"`
	GroupID         string               `json:"group_id"`
	Description     string               `json:"description"`
	Amount          float64              `json:"amount"`
	PayerID         string               `json:"payer_id"`
	ParticipantIDs  []string             `json:"participant_ids"`
	AmountPerPerson float64              `json:"amount_per_person"`
	Settlements     []settlementResponse `json:"settlements"`
	FullyPaid       bool                 `json:"fully_paid"`
	CreatedAt       int64                `json:"created_at"`
}

type debtResponse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

func toGroupResponse(g *models.Group) groupResponse {
	members := g.Members
	if members == nil {
		members = []string{}
	}
	return groupResponse{ID: g.ID, Name: g.Name, Members: members, CreatedAt: g.CreatedAt}
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	settlements := make([]settlementResponse, 0, len(e.Settlements))
	for _, s := range e.Settlements {
		settlements = append(settlements, settlementResponse{From: s.From, To: s.To})
	}
	return expenseResponse{
		ID:              e.ID,
		GroupID:         e.GroupID,
		Description:     e.Description,
		Amount:          e.Amount,
		PayerID:         e.PayerID,
		ParticipantIDs:  e.ParticipantIDs,
		AmountPerPerson: e.AmountPerPerson,
		Settlements:     settlements,
		FullyPaid:       e.IsFullyPaid(),
		CreatedAt:       e.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the service error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidParticipantSet),
		errors.Is(err, service.ErrInvalidSettlementPair):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrPayerRemoval),
		errors.Is(err, service.ErrMinParticipant):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string   `json:"name"`
		Members []string `json:"members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	group, err := s.groups.CreateGroup(r.Context(), req.Name, req.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ListGroups(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, toGroupResponse(g))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.GetGroup(r.Context(), mux.Vars(r)["group_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleAddMembers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Members []string `json:"members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	group, err := s.groups.AddMembers(r.Context(), mux.Vars(r)["group_id"], req.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description    string   `json:"description"`
		Amount         float64  `json:"amount"`
		PayerID        string   `json:"payer_id"`
		ParticipantIDs []string `json:"participant_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	expense, err := s.expenses.CreateExpense(r.Context(), mux.Vars(r)["group_id"],
		req.Description, req.Amount, req.PayerID, req.ParticipantIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ListExpenses(r.Context(), mux.Vars(r)["group_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]expenseResponse, 0, len(expenses))
	for i := range expenses {
		resp = append(resp, toExpenseResponse(&expenses[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.expenses.GetExpense(r.Context(), mux.Vars(r)["expense_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description *string  `json:"description"`
		Amount      *float64 `json:"amount"`
		PayerID     *string  `json:"payer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	expense, err := s.expenses.UpdateExpense(r.Context(), mux.Vars(r)["expense_id"], service.ExpensePatch{
		Description: req.Description,
		Amount:      req.Amount,
		PayerID:     req.PayerID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.DeleteExpense(r.Context(), mux.Vars(r)["expense_id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID string `json:"member_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	expense, err := s.expenses.AddParticipant(r.Context(), mux.Vars(r)["expense_id"], req.MemberID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (s *Server) handleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	expense, err := s.expenses.RemoveParticipant(r.Context(), vars["expense_id"], vars["member_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (s *Server) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.expenses.MarkPaid(r.Context(), vars["expense_id"], vars["from"], vars["to"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"paid": true})
}

func (s *Server) handleUnmarkPaid(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.expenses.UnmarkPaid(r.Context(), vars["expense_id"], vars["from"], vars["to"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"paid": false})
}

func (s *Server) handleIsPaid(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	paid, err := s.expenses.IsPaid(r.Context(), vars["expense_id"], vars["from"], vars["to"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"paid": paid})
}

func (s *Server) handleExpenseStatus(w http.ResponseWriter, r *http.Request) {
	expense, err := s.expenses.GetExpense(r.Context(), mux.Vars(r)["expense_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"fully_paid":        expense.IsFullyPaid(),
		"amount_per_person": expense.AmountPerPerson,
	})
}

func (s *Server) handleGroupBalances(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["group_id"]
	balances, err := s.balances.GetGroupBalances(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"group_id": groupID,
		"balances": balances,
	})
}

func (s *Server) handleSettleUp(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["group_id"]
	debts, err := s.balances.GetSimplifiedDebts(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]debtResponse, 0, len(debts))
	for _, d := range debts {
		resp = append(resp, debtResponse{From: d.From, To: d.To, Amount: d.Amount})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"group_id": groupID,
		"debts":    resp,
	})
}
