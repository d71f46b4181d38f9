package importfile_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbfernandes/bolso/internal/auth"
	"github.com/mbfernandes/bolso/internal/http/importfile"
	"github.com/mbfernandes/bolso/internal/importer"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	// Only the parse endpoint is exercised, so the persistence-backed
	// services are never touched.
	h := importfile.NewHandler(importer.NewService(), nil, nil, nil)

	r := chi.NewRouter()
	r.Route("/import", h.Routes)

	return r
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req.WithContext(auth.WithUserID(req.Context(), uuid.New()))
}

func TestHandler_Parse(t *testing.T) {
	router := newRouter(t)

	t.Run("CSV Upload Returns Candidates", func(t *testing.T) {
		req := uploadRequest(t, "extrato.csv",
			"data,descrição,valor,categoria\n"+
				"2024-01-15,Salário,5000,Salário\n"+
				"not-a-date,Dropped,10\n")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Transactions []struct {
				Description string  `json:"description"`
				Amount      float64 `json:"amount"`
				Type        string  `json:"type"`
				Category    string  `json:"category"`
			} `json:"transactions"`
			Count   int `json:"count"`
			Skipped []struct {
				Line   int    `json:"line"`
				Reason string `json:"reason"`
			} `json:"skipped"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Equal(t, 1, resp.Count)
		require.Len(t, resp.Transactions, 1)
		assert.Equal(t, "Salário", resp.Transactions[0].Description)
		assert.Equal(t, 5000.0, resp.Transactions[0].Amount)
		assert.Equal(t, "income", resp.Transactions[0].Type)
		assert.Equal(t, "Salário", resp.Transactions[0].Category)

		require.Len(t, resp.Skipped, 1)
		assert.Equal(t, 3, resp.Skipped[0].Line)
	})

	t.Run("PDF Upload Rejected", func(t *testing.T) {
		req := uploadRequest(t, "statement.pdf", "%PDF-1.4")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "unsupported file format")
	})

	t.Run("Missing File Field", func(t *testing.T) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/import", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req = req.WithContext(auth.WithUserID(req.Context(), uuid.New()))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("No User In Context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/import", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
