package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbfernandes/bolso/internal/auth"
	"github.com/mbfernandes/bolso/internal/budget"
	"github.com/mbfernandes/bolso/internal/http/render"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type budgetResponse struct {
	ID            uuid.UUID     `json:"id"`
	CategoryID    uuid.UUID     `json:"category_id"`
	CategoryName  string        `json:"category_name,omitempty"`
	CategoryColor string        `json:"category_color,omitempty"`
	LimitAmount   float64       `json:"limit_amount"`
	Period        budget.Period `json:"period"`
	Month         *int          `json:"month,omitempty"`
	Year          int           `json:"year"`
	Active        bool          `json:"active"`
	Spent         *float64      `json:"spent,omitempty"`
	PercentUsed   *float64      `json:"percent_used,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     *time.Time    `json:"updated_at,omitempty"`
}

func toResponse(b *budget.Budget) budgetResponse {
	return budgetResponse{
		ID:            b.ID,
		CategoryID:    b.CategoryID,
		CategoryName:  b.CategoryName,
		CategoryColor: b.CategoryColor,
		LimitAmount:   b.LimitAmount.InexactFloat64(),
		Period:        b.Period,
		Month:         b.Month,
		Year:          b.Year,
		Active:        b.Active,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toSpendingResponse(b *budget.WithSpending) budgetResponse {
	resp := toResponse(b.Budget)
	resp.Spent = new(b.Spent.InexactFloat64())
	resp.PercentUsed = new(b.PercentUsed)

	return resp
}

type createBudgetRequest struct {
	CategoryID  uuid.UUID     `json:"category_id"`
	LimitAmount float64       `json:"limit_amount"`
	Period      budget.Period `json:"period"`
	Month       *int          `json:"month,omitempty"`
	Year        int           `json:"year"`
	Active      *bool         `json:"active,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Period != budget.PeriodMonthly && req.Period != budget.PeriodYearly {
		render.Error(w, http.StatusBadRequest, "period must be monthly or yearly")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	b, err := h.svc.Create(r.Context(), budget.CreateParams{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		LimitAmount: decimal.NewFromFloat(req.LimitAmount),
		Period:      req.Period,
		Month:       req.Month,
		Year:        req.Year,
		Active:      active,
	})
	if err != nil {
		if errors.Is(err, budget.ErrDuplicate) {
			render.Error(w, http.StatusConflict, err.Error())
			return
		}

		render.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	render.JSON(w, http.StatusCreated, toResponse(b))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	year := time.Now().Year()
	if s := r.URL.Query().Get("year"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			year = n
		}
	}

	var month *int

	if s := r.URL.Query().Get("month"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			month = &n
		}
	}

	budgets, err := h.svc.List(r.Context(), userID, year, month)
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = toSpendingResponse(b)
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	b, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			render.Error(w, http.StatusNotFound, "budget not found")
			return
		}

		render.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	render.JSON(w, http.StatusOK, toResponse(b))
}

type updateBudgetRequest struct {
	LimitAmount *float64 `json:"limit_amount,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			render.Error(w, http.StatusNotFound, "budget not found")
			return
		}

		render.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	if req.LimitAmount != nil {
		b.LimitAmount = decimal.NewFromFloat(*req.LimitAmount)
	}

	if req.Active != nil {
		b.Active = *req.Active
	}

	if err := h.svc.Update(r.Context(), b); err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			render.Error(w, http.StatusNotFound, "budget not found")
			return
		}

		render.Error(w, http.StatusInternalServerError, err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
