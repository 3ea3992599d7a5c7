package spendo

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/spendo/internal/http/respond"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/ledger/wire"
)

type Handler struct {
	repo     ledger.Repository
	validate *validator.Validate
}

func NewHandler(repo ledger.Repository, validate *validator.Validate) *Handler {
	return &Handler{repo: repo, validate: validate}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/spendoList", h.list)
	r.Get("/spendoDetails", h.get)
	r.Post("/spendoAdd", h.create)
	r.Post("/spendoEdit", h.update)
	r.Post("/spendoDel", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q, err := ledger.ParseQuery(r.URL.Query())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	entries, err := h.repo.ListEntries(r.Context(), q)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, wire.FromEntries(entries))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	no, err := entryNo(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	e, err := h.repo.GetEntry(r.Context(), no)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, wire.FromEntry(*e))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	e, err := h.decodeEntry(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	e.No = 0
	if err := h.repo.CreateEntry(r.Context(), &e); err != nil {
		respond.Error(w, r, err)
		return
	}

	slog.Info("entry created", "no", e.No, "request_id", requestID(r))

	respond.OK(w, wire.FromEntry(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	e, err := h.decodeEntry(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if e.No <= 0 {
		respond.Error(w, r, &ledger.ValidationError{Field: "spendoNo", Message: "spendoNo is required"})
		return
	}

	if err := h.repo.UpdateEntry(r.Context(), &e); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, wire.FromEntry(e))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	no, err := entryNo(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.repo.DeleteEntry(r.Context(), no); err != nil {
		respond.Error(w, r, err)
		return
	}

	slog.Info("entry deleted", "no", no, "request_id", requestID(r))

	respond.JSON[any](w, http.StatusOK, nil, "")
}

// decodeEntry reads and validates an entry body, including that both codes
// exist in the reference tables.
func (h *Handler) decodeEntry(r *http.Request) (ledger.Entry, error) {
	var req wire.Entry
	if err := respond.Decode(r, &req); err != nil {
		return ledger.Entry{}, err
	}

	if err := respond.Struct(h.validate, req); err != nil {
		return ledger.Entry{}, err
	}

	if err := h.checkCode(r.Context(), ledger.GroupType, "spendoType", req.Type); err != nil {
		return ledger.Entry{}, err
	}

	if err := h.checkCode(r.Context(), ledger.GroupPayment, "spendoCodeType", req.CodeType); err != nil {
		return ledger.Entry{}, err
	}

	return req.ToEntry()
}

func (h *Handler) checkCode(ctx context.Context, group ledger.CodeGroup, field, code string) error {
	codes, err := h.repo.ListCodes(ctx, group)
	if err != nil {
		return err
	}

	known := slices.ContainsFunc(codes, func(c ledger.ReferenceCode) bool {
		return c.Code == code
	})
	if !known {
		return &ledger.ValidationError{Field: field, Message: "unknown code " + code}
	}

	return nil
}

func entryNo(r *http.Request) (int64, error) {
	no, err := strconv.ParseInt(r.URL.Query().Get("spendoNo"), 10, 64)
	if err != nil || no <= 0 {
		return 0, &ledger.ValidationError{Field: "spendoNo", Message: "spendoNo must be a positive integer"}
	}

	return no, nil
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
