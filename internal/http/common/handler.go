package common

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendo/internal/http/respond"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/ledger/wire"
)

type Handler struct {
	repo ledger.Repository
}

func NewHandler(repo ledger.Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/commonExInCodeGet", h.codes(ledger.GroupType))
	r.Get("/commonCcCrCodeGet", h.codes(ledger.GroupPayment))
}

func (h *Handler) codes(group ledger.CodeGroup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		codes, err := h.repo.ListCodes(r.Context(), group)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		respond.OK(w, wire.FromCodes(codes))
	}
}
