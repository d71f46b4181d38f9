package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mbfernandes/bolso/internal/auth"
	accounthttp "github.com/mbfernandes/bolso/internal/http/account"
	budgethttp "github.com/mbfernandes/bolso/internal/http/budget"
	categoryhttp "github.com/mbfernandes/bolso/internal/http/category"
	importhttp "github.com/mbfernandes/bolso/internal/http/importfile"
	reporthttp "github.com/mbfernandes/bolso/internal/http/report"
	transactionhttp "github.com/mbfernandes/bolso/internal/http/transaction"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
}

func New(
	opts Options,
	transactionsV1 *transactionhttp.Handler,
	accountsV1 *accounthttp.Handler,
	categoriesV1 *categoryhttp.Handler,
	budgetsV1 *budgethttp.Handler,
	importV1 *importhttp.Handler,
	reportsV1 *reporthttp.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(opts.JWTSecret))

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			accountsV1.Routes(r)
		})

		r.Route("/account-types", accountsV1.TypeRoutes)

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			categoriesV1.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			budgetsV1.Routes(r)
		})

		// Import takes multipart uploads, so no content type restriction.
		r.Route("/import", importV1.Routes)

		r.Route("/reports", reportsV1.Routes)
	})

	return router
}
