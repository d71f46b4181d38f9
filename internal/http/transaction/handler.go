package transaction

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
	"github.com/mbfernandes/bolso/internal/http/render"
	"github.com/mbfernandes/bolso/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	AccountID   uuid.UUID        `json:"account_id"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	Type        transaction.Type `json:"type"`
	Date        time.Time        `json:"date"`
	Notes       string           `json:"notes,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Type != transaction.TypeIncome && req.Type != transaction.TypeExpense {
		render.Error(w, http.StatusBadRequest, "type must be income or expense")
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		UserID:      userID,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      decimal.NewFromFloat(req.Amount),
		Type:        req.Type,
		Date:        req.Date,
		Notes:       req.Notes,
	})
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := transaction.ListFilter{}

	q := r.URL.Query()

	if s := q.Get("account_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.AccountID = new(id)
		}
	}

	if s := q.Get("category_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.CategoryID = new(id)
		}
	}

	if s := q.Get("type"); s != "" {
		filter.Type = new(transaction.Type(s))
	}

	if s := q.Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := q.Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	if s := q.Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.Limit = n
		}
	}

	if s := q.Get("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.Offset = n
		}
	}

	txs, err := h.svc.List(r.Context(), userID, filter)
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(txs))
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

	tx, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			render.Error(w, http.StatusNotFound, "transaction not found")
			return
		}

		render.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	render.JSON(w, http.StatusOK, toResponse(tx))
}

type updateTransactionRequest struct {
	AccountID   *uuid.UUID        `json:"account_id,omitempty"`
	CategoryID  *uuid.UUID        `json:"category_id,omitempty"`
	Description *string           `json:"description,omitempty"`
	Amount      *float64          `json:"amount,omitempty"`
	Type        *transaction.Type `json:"type,omitempty"`
	Date        *time.Time        `json:"date,omitempty"`
	Notes       *string           `json:"notes,omitempty"`
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

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			render.Error(w, http.StatusNotFound, "transaction not found")
			return
		}

		render.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	if req.AccountID != nil {
		tx.AccountID = *req.AccountID
	}

	if req.CategoryID != nil {
		tx.CategoryID = req.CategoryID
	}

	if req.Description != nil {
		tx.Description = *req.Description
	}

	if req.Amount != nil {
		tx.Amount = decimal.NewFromFloat(*req.Amount)
	}

	if req.Type != nil {
		tx.Type = *req.Type
	}

	if req.Date != nil {
		tx.Date = *req.Date
	}

	if req.Notes != nil {
		tx.Notes = *req.Notes
	}

	if err := h.svc.Update(r.Context(), tx); err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, http.StatusOK, toResponse(tx))
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
		if errors.Is(err, transaction.ErrNotFound) {
			render.Error(w, http.StatusNotFound, "transaction not found")
			return
		}

		render.Error(w, http.StatusInternalServerError, err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
