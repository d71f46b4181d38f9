package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mbfernandes/bolso/internal/auth"
	"github.com/mbfernandes/bolso/internal/category"
	"github.com/mbfernandes/bolso/internal/http/render"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type categoryResponse struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Kind      category.Kind `json:"kind"`
	Color     string        `json:"color"`
	Icon      string        `json:"icon,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
}

func toResponse(cat *category.Category) categoryResponse {
	return categoryResponse{
		ID:        cat.ID,
		Name:      cat.Name,
		Kind:      cat.Kind,
		Color:     cat.Color,
		Icon:      cat.Icon,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}

type createCategoryRequest struct {
	Name  string        `json:"name"`
	Kind  category.Kind `json:"kind"`
	Color string        `json:"color,omitempty"`
	Icon  string        `json:"icon,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == "" {
		render.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	if req.Kind != category.KindIncome && req.Kind != category.KindExpense {
		render.Error(w, http.StatusBadRequest, "kind must be income or expense")
		return
	}

	cat, err := h.svc.Create(r.Context(), category.CreateParams{
		UserID: userID,
		Name:   req.Name,
		Kind:   req.Kind,
		Color:  req.Color,
		Icon:   req.Icon,
	})
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(cat))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var kind *category.Kind

	if s := r.URL.Query().Get("kind"); s != "" {
		kind = new(category.Kind(s))
	}

	cats, err := h.svc.List(r.Context(), userID, kind)
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]categoryResponse, len(cats))
	for i, cat := range cats {
		resp[i] = toResponse(cat)
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

	cat, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			render.Error(w, http.StatusNotFound, "category not found")
			return
		}

		render.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	render.JSON(w, http.StatusOK, toResponse(cat))
}

type updateCategoryRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
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

	var req updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cat, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			render.Error(w, http.StatusNotFound, "category not found")
			return
		}

		render.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	if req.Name != nil {
		cat.Name = *req.Name
	}

	if req.Color != nil {
		cat.Color = *req.Color
	}

	if req.Icon != nil {
		cat.Icon = *req.Icon
	}

	if err := h.svc.Update(r.Context(), cat); err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, http.StatusOK, toResponse(cat))
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
		if errors.Is(err, category.ErrNotFound) {
			render.Error(w, http.StatusNotFound, "category not found")
			return
		}

		render.Error(w, http.StatusInternalServerError, err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
