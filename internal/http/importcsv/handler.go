package importcsv

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendo/internal/http/respond"
	"github.com/MrJamesThe3rd/spendo/internal/importer"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/refcode"
)

const maxUpload = 10 << 20

type Handler struct {
	importSvc *importer.Service
	codes     refcode.Source
}

func NewHandler(importSvc *importer.Service, codes refcode.Source) *Handler {
	return &Handler{
		importSvc: importSvc,
		codes:     codes,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/import", h.importCSV)
}

type rowErrorDTO struct {
	Line    int    `json:"line"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type importResponse struct {
	Profile string        `json:"profile"`
	Charset string        `json:"charset"`
	Rows    int           `json:"rows"`
	DryRun  bool          `json:"dryRun"`
	Created []int64       `json:"created"`
	Invalid []rowErrorDTO `json:"invalid"`
}

// importCSV takes a multipart upload with a "file" part and optional
// "charset" and "dryRun" fields. Either every row is created or none is.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		respond.Error(w, r, &ledger.ValidationError{Field: "file", Message: "failed to parse form: " + err.Error()})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, r, &ledger.ValidationError{Field: "file", Message: "file field is required"})
		return
	}
	defer file.Close()

	codes, err := h.loadCodes(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	opts := importer.OptionsFor(codes)
	opts.Charset = r.FormValue("charset")

	parsed, err := h.importSvc.Preview(file, opts)
	if err != nil {
		respond.Error(w, r, toValidation(err))
		return
	}

	resp := importResponse{
		Profile: parsed.Profile,
		Charset: parsed.Charset,
		Rows:    len(parsed.Drafts),
		DryRun:  r.FormValue("dryRun") == "true",
		Created: []int64{},
		Invalid: []rowErrorDTO{},
	}

	if resp.DryRun {
		respond.OK(w, resp)
		return
	}

	result, err := h.importSvc.Import(r.Context(), parsed, codes)
	if result != nil {
		resp.Created = append(resp.Created, result.Created...)
		for _, inv := range result.Invalid {
			resp.Invalid = append(resp.Invalid, toRowError(inv))
		}
	}

	switch {
	case err != nil:
		respond.Error(w, r, err)
	case len(resp.Invalid) > 0:
		respond.JSON(w, http.StatusUnprocessableEntity, resp, "import contains invalid rows")
	default:
		respond.JSON(w, http.StatusCreated, resp, "")
	}
}

func (h *Handler) loadCodes(r *http.Request) (ledger.Codes, error) {
	types, err := h.codes.TypeCodes(r.Context())
	if err != nil {
		return nil, err
	}

	payments, err := h.codes.PaymentCodes(r.Context())
	if err != nil {
		return nil, err
	}

	return ledger.StaticCodes{Types: types, Payments: payments}, nil
}

func toValidation(err error) error {
	if errors.Is(err, importer.ErrUnknownFormat) {
		return &ledger.ValidationError{Field: "file", Message: err.Error()}
	}

	return &ledger.ValidationError{Field: "charset", Message: err.Error()}
}

func toRowError(inv ledger.RowError) rowErrorDTO {
	dto := rowErrorDTO{Line: inv.Row, Message: inv.Err.Error()}

	var vErr *ledger.ValidationError
	if errors.As(inv.Err, &vErr) {
		dto.Field = vErr.Field
		dto.Message = vErr.Message
	}

	return dto
}
