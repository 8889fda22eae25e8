package recurrence

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedrosantos/grana/internal/http/auth"
	"github.com/pedrosantos/grana/internal/recurrence"
	"github.com/pedrosantos/grana/internal/transaction"
)

type Handler struct {
	svc *recurrence.Service
}

func NewHandler(svc *recurrence.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/active", h.setActive)
	r.Get("/{id}/occurrences", h.occurrences)
	r.Post("/{id}/materialize", h.materialize)
}

type ruleResponse struct {
	ID           uuid.UUID            `json:"id"`
	Frequency    recurrence.Frequency `json:"frequency"`
	StartDate    civil.Date           `json:"start_date"`
	EndDate      *civil.Date          `json:"end_date,omitempty"`
	IsActive     bool                 `json:"is_active"`
	Amount       decimal.Decimal      `json:"amount"`
	Type         transaction.Type     `json:"type"`
	Description  string               `json:"description"`
	CategoryID   *uuid.UUID           `json:"category_id,omitempty"`
	AccountID    *uuid.UUID           `json:"account_id,omitempty"`
	CreditCardID *uuid.UUID           `json:"credit_card_id,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    *time.Time           `json:"updated_at,omitempty"`
}

func toResponse(rule *recurrence.Rule) ruleResponse {
	return ruleResponse{
		ID:           rule.ID,
		Frequency:    rule.Frequency,
		StartDate:    rule.StartDate,
		EndDate:      rule.EndDate,
		IsActive:     rule.IsActive,
		Amount:       rule.Amount,
		Type:         rule.Type,
		Description:  rule.Description,
		CategoryID:   rule.CategoryID,
		AccountID:    rule.AccountID,
		CreditCardID: rule.CreditCardID,
		CreatedAt:    rule.CreatedAt,
		UpdatedAt:    rule.UpdatedAt,
	}
}

type createRuleRequest struct {
	Frequency    recurrence.Frequency `json:"frequency"`
	StartDate    civil.Date           `json:"start_date"`
	EndDate      *civil.Date          `json:"end_date,omitempty"`
	Amount       decimal.Decimal      `json:"amount"`
	Type         transaction.Type     `json:"type"`
	Description  string               `json:"description"`
	CategoryID   *uuid.UUID           `json:"category_id,omitempty"`
	AccountID    *uuid.UUID           `json:"account_id,omitempty"`
	CreditCardID *uuid.UUID           `json:"credit_card_id,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rule, err := h.svc.Create(r.Context(), recurrence.CreateParams{
		UserID:       userID,
		Frequency:    req.Frequency,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Amount:       req.Amount,
		Type:         req.Type,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		AccountID:    req.AccountID,
		CreditCardID: req.CreditCardID,
	})
	if err != nil {
		if errors.Is(err, recurrence.ErrInvalidRule) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(rule)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter := recurrence.ListFilter{}

	if s := r.URL.Query().Get("active"); s != "" {
		active := s == "true"
		filter.IsActive = &active
	}

	rules, err := h.svc.List(r.Context(), userID, filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]ruleResponse, len(rules))
	for i, rule := range rules {
		resp[i] = toResponse(rule)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rule, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, recurrence.ErrNotFound) {
			http.Error(w, "recurrence not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rule)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type setActiveRequest struct {
	IsActive bool `json:"is_active"`
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetActive(r.Context(), userID, id, req.IsActive); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseRange reads the start/end query parameters shared by the
// occurrence preview and materialization endpoints.
func parseRange(r *http.Request) (civil.Date, civil.Date, error) {
	start, err := civil.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		return civil.Date{}, civil.Date{}, fmt.Errorf("invalid start date: %w", err)
	}

	end, err := civil.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		return civil.Date{}, civil.Date{}, fmt.Errorf("invalid end date: %w", err)
	}

	return start, end, nil
}

func (h *Handler) occurrences(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	start, end, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dates, err := h.svc.Occurrences(r.Context(), userID, id, start, end)
	if err != nil {
		if errors.Is(err, recurrence.ErrNotFound) {
			http.Error(w, "recurrence not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(dates); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) materialize(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	start, end, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.svc.Materialize(r.Context(), userID, id, start, end)
	if err != nil {
		if errors.Is(err, recurrence.ErrNotFound) {
			http.Error(w, "recurrence not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(map[string]int{"materialized": len(txs)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
