package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/spendo/internal/auth"
	"github.com/MrJamesThe3rd/spendo/internal/export"
	"github.com/MrJamesThe3rd/spendo/internal/http/common"
	"github.com/MrJamesThe3rd/spendo/internal/http/expenditure"
	exportHandler "github.com/MrJamesThe3rd/spendo/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/spendo/internal/http/importcsv"
	"github.com/MrJamesThe3rd/spendo/internal/http/respond"
	"github.com/MrJamesThe3rd/spendo/internal/http/spendo"
	"github.com/MrJamesThe3rd/spendo/internal/importer"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/ledger/local"
)

type Options struct {
	// Secret enables bearer token checks on every API route when set.
	Secret         string
	AllowedOrigins []string
}

func New(
	opts Options,
	spendoV1 *spendo.Handler,
	commonV1 *common.Handler,
	expenditureV1 *expenditure.Handler,
	exportV1 *exportHandler.Handler,
	importV1 *importHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(echoRequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Use(requireToken(opts.Secret))

		r.Route("/spendo", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			spendoV1.Routes(r)
		})

		r.Route("/common", commonV1.Routes)
		r.Route("/expenditure", expenditureV1.Routes)

		r.Route("/transfer", func(r chi.Router) {
			exportV1.Routes(r)
			importV1.Routes(r)
		})
	})

	return router
}

// NewWithRepository wires every handler to repo.
func NewWithRepository(opts Options, repo ledger.Repository) http.Handler {
	svc := ledger.NewService(local.New(repo))

	return New(opts,
		spendo.NewHandler(repo, respond.NewValidator()),
		common.NewHandler(repo),
		expenditure.NewHandler(repo),
		exportHandler.NewHandler(export.NewService(svc)),
		importHandler.NewHandler(importer.NewService(svc), svc),
	)
}

func echoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(middleware.RequestIDHeader, middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r)
	})
}

func requireToken(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				respond.JSON[any](w, http.StatusUnauthorized, nil, "missing bearer token")
				return
			}

			if _, err := auth.ParseToken(secret, token); err != nil {
				respond.JSON[any](w, http.StatusUnauthorized, nil, "invalid bearer token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
