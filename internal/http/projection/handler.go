package projection

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/pedrosantos/grana/internal/http/auth"
	"github.com/pedrosantos/grana/internal/projection"
	"github.com/pedrosantos/grana/internal/transaction"
)

type Handler struct {
	svc *projection.Service
}

func NewHandler(svc *projection.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.project)
	r.Post("/chain", h.chain)
}

type entryResponse struct {
	Date         civil.Date         `json:"date"`
	Description  string             `json:"description"`
	Amount       decimal.Decimal    `json:"amount"`
	Type         transaction.Type   `json:"type"`
	Status       transaction.Status `json:"status"`
	Projected    bool               `json:"projected"`
	RecurrenceID string             `json:"recurrence_id,omitempty"`
}

type projectionResponse struct {
	PeriodStart       civil.Date      `json:"period_start"`
	PeriodEnd         civil.Date      `json:"period_end"`
	InitialBalance    decimal.Decimal `json:"initial_balance"`
	ProjectedIncome   decimal.Decimal `json:"projected_income"`
	ProjectedExpenses decimal.Decimal `json:"projected_expenses"`
	ProjectedBalance  decimal.Decimal `json:"projected_balance"`
	IncomeEntries     []entryResponse `json:"income_entries"`
	ExpenseEntries    []entryResponse `json:"expense_entries"`
}

func toEntryResponses(entries []projection.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))

	for i, e := range entries {
		resp[i] = entryResponse{
			Date:        e.Date,
			Description: e.Description,
			Amount:      e.Amount,
			Type:        e.Type,
			Status:      e.Status,
			Projected:   e.Projected,
		}
		if e.RecurrenceID != nil {
			resp[i].RecurrenceID = e.RecurrenceID.String()
		}
	}

	return resp
}

func (h *Handler) project(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	start, err := civil.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid start date: %v", err), http.StatusBadRequest)
		return
	}

	end, err := civil.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid end date: %v", err), http.StatusBadRequest)
		return
	}

	if end.Before(start) {
		http.Error(w, "end date before start date", http.StatusBadRequest)
		return
	}

	result, err := h.svc.Project(r.Context(), userID, start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := projectionResponse{
		PeriodStart:       result.PeriodStart,
		PeriodEnd:         result.PeriodEnd,
		InitialBalance:    result.InitialBalance,
		ProjectedIncome:   result.ProjectedIncome,
		ProjectedExpenses: result.ProjectedExpenses,
		ProjectedBalance:  result.ProjectedBalance,
		IncomeEntries:     toEntryResponses(result.IncomeEntries),
		ExpenseEntries:    toEntryResponses(result.ExpenseEntries),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type chainRequest struct {
	BaseMonth   civil.Date `json:"base_month"`
	TargetMonth civil.Date `json:"target_month"`
	Deltas      []struct {
		Type   transaction.Type `json:"type"`
		Amount decimal.Decimal  `json:"amount"`
	} `json:"deltas"`
}

type chainMonthResponse struct {
	Month          civil.Date      `json:"month"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Income         decimal.Decimal `json:"income"`
	Expenses       decimal.Decimal `json:"expenses"`
	ScenarioImpact decimal.Decimal `json:"scenario_impact"`
	Balance        decimal.Decimal `json:"balance"`
}

type chainResponse struct {
	Months            []chainMonthResponse `json:"months"`
	FinalBalance      decimal.Decimal      `json:"final_balance"`
	RealTargetBalance decimal.Decimal      `json:"real_target_balance"`
}

func (h *Handler) chain(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req chainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	deltas := make([]projection.ScenarioDelta, len(req.Deltas))
	for i, d := range req.Deltas {
		deltas[i] = projection.ScenarioDelta{Type: d.Type, Amount: d.Amount}
	}

	result, err := h.svc.ProjectChain(r.Context(), userID, req.BaseMonth, req.TargetMonth, deltas)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := chainResponse{
		FinalBalance:      result.FinalBalance,
		RealTargetBalance: result.RealTargetBalance,
	}

	for _, m := range result.Months {
		resp.Months = append(resp.Months, chainMonthResponse{
			Month:          m.Month,
			InitialBalance: m.InitialBalance,
			Income:         m.Income,
			Expenses:       m.Expenses,
			ScenarioImpact: m.ScenarioImpact,
			Balance:        m.Balance,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
