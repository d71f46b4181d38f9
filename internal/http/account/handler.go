package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbfernandes/bolso/internal/account"
	"github.com/mbfernandes/bolso/internal/auth"
	"github.com/mbfernandes/bolso/internal/http/render"
)

type Handler struct {
	svc *account.Service
}

func NewHandler(svc *account.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// TypeRoutes serves the account type catalog, which is shared across users.
func (h *Handler) TypeRoutes(r chi.Router) {
	r.Get("/", h.listTypes)
}

type accountResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	TypeID         uuid.UUID  `json:"type_id"`
	TypeName       string     `json:"type_name,omitempty"`
	InitialBalance float64    `json:"initial_balance"`
	CurrentBalance float64    `json:"current_balance"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

func toResponse(acc *account.Account) accountResponse {
	return accountResponse{
		ID:             acc.ID,
		Name:           acc.Name,
		TypeID:         acc.TypeID,
		TypeName:       acc.TypeName,
		InitialBalance: acc.InitialBalance.InexactFloat64(),
		CurrentBalance: acc.CurrentBalance.InexactFloat64(),
		Active:         acc.Active,
		CreatedAt:      acc.CreatedAt,
		UpdatedAt:      acc.UpdatedAt,
	}
}

type createAccountRequest struct {
	Name           string    `json:"name"`
	TypeID         uuid.UUID `json:"type_id"`
	InitialBalance float64   `json:"initial_balance"`
	Active         *bool     `json:"active,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == "" {
		render.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	acc, err := h.svc.Create(r.Context(), account.CreateParams{
		UserID:         userID,
		Name:           req.Name,
		TypeID:         req.TypeID,
		InitialBalance: decimal.NewFromFloat(req.InitialBalance),
		Active:         active,
	})
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(acc))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	accs, err := h.svc.List(r.Context(), userID)
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]accountResponse, len(accs))
	for i, acc := range accs {
		resp[i] = toResponse(acc)
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

	acc, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			render.Error(w, http.StatusNotFound, "account not found")
			return
		}

		render.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	render.JSON(w, http.StatusOK, toResponse(acc))
}

type updateAccountRequest struct {
	Name   *string    `json:"name,omitempty"`
	TypeID *uuid.UUID `json:"type_id,omitempty"`
	Active *bool      `json:"active,omitempty"`
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

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	acc, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			render.Error(w, http.StatusNotFound, "account not found")
			return
		}

		render.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	if req.Name != nil {
		acc.Name = *req.Name
	}

	if req.TypeID != nil {
		acc.TypeID = *req.TypeID
	}

	if req.Active != nil {
		acc.Active = *req.Active
	}

	if err := h.svc.Update(r.Context(), acc); err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, http.StatusOK, toResponse(acc))
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
		switch {
		case errors.Is(err, account.ErrNotFound):
			render.Error(w, http.StatusNotFound, "account not found")
		case errors.Is(err, account.ErrHasTransactions):
			render.Error(w, http.StatusConflict, "account has transactions")
		default:
			render.Error(w, http.StatusInternalServerError, err.Error())
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type typeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

func (h *Handler) listTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.ListTypes(r.Context())
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]typeResponse, len(types))
	for i, t := range types {
		resp[i] = typeResponse{ID: t.ID, Name: t.Name, Description: t.Description}
	}

	render.JSON(w, http.StatusOK, resp)
}
