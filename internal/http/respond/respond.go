// Package respond writes the {data, message, status} envelope and maps ledger
// errors onto HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/ledger/wire"
)

func JSON[T any](w http.ResponseWriter, status int, data T, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	env := wire.Envelope[T]{Data: data, Message: message, Status: wire.StatusText(status)}
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func OK[T any](w http.ResponseWriter, data T) {
	JSON(w, http.StatusOK, data, "")
}

// Error writes err with the status its class maps to. Unclassified errors are
// logged and reported as 500 without their detail.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *ledger.ValidationError

	switch {
	case errors.As(err, &vErr):
		JSON(w, http.StatusBadRequest, wire.FieldError{Field: vErr.Field}, vErr.Error())
	case errors.Is(err, ledger.ErrNotFound):
		JSON[any](w, http.StatusNotFound, nil, "record not found")
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		JSON[any](w, http.StatusInternalServerError, nil, "internal error")
	}
}

// Decode reads a JSON body into v. Malformed bodies are validation errors.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ledger.ValidationError{Message: fmt.Sprintf("malformed body: %v", err)}
	}

	return nil
}

// NewValidator reports struct fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Struct validates s and converts the first failure into a ValidationError.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ledger.ValidationError{Message: err.Error()}
	}

	fe := fieldErrs[0]

	return &ledger.ValidationError{Field: fe.Field(), Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "datetime":
		return "must be YYYY-MM-DD"
	}

	return "failed " + fe.Tag()
}
