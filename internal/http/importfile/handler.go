package importfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mbfernandes/bolso/internal/account"
	"github.com/mbfernandes/bolso/internal/auth"
	"github.com/mbfernandes/bolso/internal/category"
	"github.com/mbfernandes/bolso/internal/http/render"
	"github.com/mbfernandes/bolso/internal/importer"
	"github.com/mbfernandes/bolso/internal/transaction"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc   *importer.Service
	txSvc       *transaction.Service
	accountSvc  *account.Service
	categorySvc *category.Service
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service, accountSvc *account.Service, categorySvc *category.Service) *Handler {
	return &Handler{
		importSvc:   importSvc,
		txSvc:       txSvc,
		accountSvc:  accountSvc,
		categorySvc: categorySvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.parse)
	r.Post("/confirm", h.confirm)
}

type candidateDTO struct {
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	Type        transaction.Type `json:"type"`
	Category    string           `json:"category,omitempty"`
	Account     string           `json:"account,omitempty"`
}

type skippedDTO struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type parseResponse struct {
	Transactions []candidateDTO `json:"transactions"`
	Count        int            `json:"count"`
	Skipped      []skippedDTO   `json:"skipped,omitempty"`
	Message      string         `json:"message"`
}

// parse reads the uploaded statement and returns the candidates for the user
// to review. Nothing is persisted here.
func (h *Handler) parse(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserID(r.Context()); !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		render.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	result, err := h.importSvc.Import(header.Filename, file)
	if err != nil {
		if errors.Is(err, importer.ErrUnsupportedFormat) {
			render.Error(w, http.StatusBadRequest, "unsupported file format, send a .csv or .ofx statement")
			return
		}

		render.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	resp := parseResponse{
		Transactions: make([]candidateDTO, 0, len(result.Transactions)),
		Count:        len(result.Transactions),
		Message:      fmt.Sprintf("%d transactions found", len(result.Transactions)),
	}

	for _, c := range result.Transactions {
		resp.Transactions = append(resp.Transactions, candidateDTO{
			Date:        c.Date,
			Description: c.Description,
			Amount:      c.Amount.InexactFloat64(),
			Type:        c.Type,
			Category:    c.Category,
			Account:     c.Account,
		})
	}

	for _, s := range result.Skipped {
		resp.Skipped = append(resp.Skipped, skippedDTO{Line: s.Line, Reason: s.Reason})
	}

	render.JSON(w, http.StatusOK, resp)
}

type confirmRequest struct {
	Transactions []candidateDTO `json:"transactions"`
}

type confirmResponse struct {
	Success  bool   `json:"success"`
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

// confirm resolves the approved candidates against the user's accounts and
// categories and persists them as one batch.
func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		render.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	accounts, err := h.accountSvc.List(r.Context(), userID)
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	categories, err := h.categorySvc.List(r.Context(), userID, nil)
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	candidates := make([]importer.Candidate, 0, len(req.Transactions))
	for _, c := range req.Transactions {
		candidates = append(candidates, importer.Candidate{
			Date:        c.Date,
			Description: c.Description,
			Amount:      decimal.NewFromFloat(c.Amount),
			Type:        c.Type,
			Category:    c.Category,
			Account:     c.Account,
		})
	}

	txs, err := importer.Resolve(userID, candidates, accounts, categories)
	if err != nil {
		if errors.Is(err, importer.ErrNoDestinationAccount) {
			render.Error(w, http.StatusBadRequest, "create an account before importing transactions")
			return
		}

		render.Error(w, http.StatusInternalServerError, err.Error())

		return
	}

	imported, err := h.txSvc.CommitImport(r.Context(), txs)
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, http.StatusCreated, confirmResponse{
		Success:  true,
		Imported: imported,
		Message:  fmt.Sprintf("%d transactions imported", imported),
	})
}
