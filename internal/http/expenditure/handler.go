package expenditure

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
	r.Get("/expenditureGet", h.get)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	start, err := ledger.ParseDay(r.URL.Query().Get("startDt"))
	if err != nil {
		respond.Error(w, r, &ledger.ValidationError{Field: "startDt", Message: "startDt must be YYYY-MM-DD"})
		return
	}

	end, err := ledger.ParseDay(r.URL.Query().Get("endDt"))
	if err != nil {
		respond.Error(w, r, &ledger.ValidationError{Field: "endDt", Message: "endDt must be YYYY-MM-DD"})
		return
	}

	if end.Before(start) {
		respond.Error(w, r, &ledger.ValidationError{Field: "endDt", Message: "endDt is before startDt"})
		return
	}

	stats, err := h.repo.SumExpenditure(r.Context(), start, end)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, wire.FromExpenditures(stats))
}
