package rpc

import (
	"fmt"
	"net/http"
)

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	id, err := s.ledger.AddExpense(r.Context(), req.Date, req.Amount.String(), req.Category, req.Subcategory, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}

	s.flushCaches()
	writeOK(w, payload{"id": id})
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	var req listExpensesRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	key := req.StartDate + "|" + req.EndDate
	if expenses, ok := s.listCache.Get(key); ok {
		writeOK(w, payload{"expenses": expenses})
		return
	}

	expenses, err := s.ledger.ListExpenses(r.Context(), req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}

	s.listCache.Set(key, expenses)
	writeOK(w, payload{"expenses": expenses})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	key := req.StartDate + "|" + req.EndDate + "|" + req.Category
	if summary, ok := s.summaryCache.Get(key); ok {
		writeOK(w, payload{"summary": summary})
		return
	}

	summary, err := s.ledger.Summarize(r.Context(), req.StartDate, req.EndDate, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}

	s.summaryCache.Set(key, summary)
	writeOK(w, payload{"summary": summary})
}

func (s *Server) handleEditExpense(w http.ResponseWriter, r *http.Request) {
	var req editExpenseRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	if req.ID <= 0 {
		writeBadRequest(w, fmt.Errorf("id must be a positive integer"))
		return
	}

	if err := s.ledger.EditExpense(r.Context(), req.ID, req.Date, req.Amount.String(), req.Category, req.Subcategory, req.Note); err != nil {
		writeError(w, err)
		return
	}

	s.flushCaches()
	writeOK(w, nil)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	var req deleteExpenseRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	if req.ID <= 0 {
		writeBadRequest(w, fmt.Errorf("id must be a positive integer"))
		return
	}

	if err := s.ledger.DeleteExpense(r.Context(), req.ID); err != nil {
		writeError(w, err)
		return
	}

	s.flushCaches()
	writeOK(w, nil)
}

func (s *Server) handleAddCredit(w http.ResponseWriter, r *http.Request) {
	var req addCreditRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	balance, err := s.ledger.AddCredit(r.Context(), req.Amount.String(), req.UserName)
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, payload{"credit": balance})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeOK(w, payload{"categories": s.categories.Names()})
}
