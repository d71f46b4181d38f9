package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mbfernandes/bolso/internal/auth"
	"github.com/mbfernandes/bolso/internal/http/render"
	"github.com/mbfernandes/bolso/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/monthly", h.monthly)
	r.Get("/accounts", h.accounts)
}

func periodFromQuery(r *http.Request) report.Period {
	var p report.Period

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			p.Start = t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			p.End = t
		}
	}

	if s := r.URL.Query().Get("account_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			p.AccountID = new(id)
		}
	}

	if s := r.URL.Query().Get("category_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			p.CategoryID = new(id)
		}
	}

	return p
}

type categoryBreakdownDTO struct {
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	Name       string     `json:"name"`
	Color      string     `json:"color,omitempty"`
	Total      float64    `json:"total"`
	Percent    float64    `json:"percent"`
}

type summaryResponse struct {
	TotalIncome      float64                `json:"total_income"`
	TotalExpenses    float64                `json:"total_expenses"`
	Balance          float64                `json:"balance"`
	TransactionCount int                    `json:"transaction_count"`
	Categories       []categoryBreakdownDTO `json:"categories"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.svc.Summary(r.Context(), userID, periodFromQuery(r))
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := summaryResponse{
		TotalIncome:      summary.TotalIncome.InexactFloat64(),
		TotalExpenses:    summary.TotalExpenses.InexactFloat64(),
		Balance:          summary.Balance.InexactFloat64(),
		TransactionCount: summary.TransactionCount,
		Categories:       make([]categoryBreakdownDTO, 0, len(summary.Categories)),
	}

	for _, c := range summary.Categories {
		resp.Categories = append(resp.Categories, categoryBreakdownDTO{
			CategoryID: c.CategoryID,
			Name:       c.Name,
			Color:      c.Color,
			Total:      c.Total.InexactFloat64(),
			Percent:    c.Percent.InexactFloat64(),
		})
	}

	render.JSON(w, http.StatusOK, resp)
}

type monthlyPointDTO struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	points, err := h.svc.Monthly(r.Context(), userID, periodFromQuery(r))
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]monthlyPointDTO, len(points))
	for i, p := range points {
		resp[i] = monthlyPointDTO{
			Month:    p.Month,
			Income:   p.Income.InexactFloat64(),
			Expenses: p.Expenses.InexactFloat64(),
		}
	}

	render.JSON(w, http.StatusOK, resp)
}

type accountBreakdownDTO struct {
	AccountID uuid.UUID `json:"account_id"`
	Name      string    `json:"name"`
	Income    float64   `json:"income"`
	Expenses  float64   `json:"expenses"`
	Balance   float64   `json:"balance"`
}

func (h *Handler) accounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	breakdowns, err := h.svc.Accounts(r.Context(), userID, periodFromQuery(r))
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]accountBreakdownDTO, len(breakdowns))
	for i, b := range breakdowns {
		resp[i] = accountBreakdownDTO{
			AccountID: b.AccountID,
			Name:      b.Name,
			Income:    b.Income.InexactFloat64(),
			Expenses:  b.Expenses.InexactFloat64(),
			Balance:   b.Balance.InexactFloat64(),
		}
	}

	render.JSON(w, http.StatusOK, resp)
}
