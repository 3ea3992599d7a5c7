package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendo/internal/export"
	"github.com/MrJamesThe3rd/spendo/internal/http/respond"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/export", h.download)
}

// download streams the entries matching the list query parameters as a CSV
// attachment.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	q, err := ledger.ParseQuery(r.URL.Query())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var buf bytes.Buffer

	summary, err := h.svc.Export(r.Context(), q, &buf)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	slog.Info("exported entries", "start", q.StartDt, "end", q.EndDt, "count", summary.Count)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(q)))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
