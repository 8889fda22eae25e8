package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pedrosantos/grana/internal/http/account"
	"github.com/pedrosantos/grana/internal/http/auth"
	"github.com/pedrosantos/grana/internal/http/projection"
	"github.com/pedrosantos/grana/internal/http/recurrence"
	"github.com/pedrosantos/grana/internal/http/transaction"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
}

func New(
	opts Options,
	accountsV1 *account.Handler,
	transactionsV1 *transaction.Handler,
	recurrencesV1 *recurrence.Handler,
	projectionsV1 *projection.Handler,
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

		r.Route("/accounts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			accountsV1.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/recurrences", recurrencesV1.Routes)

		r.Route("/projections", projectionsV1.Routes)
	})

	return router
}
