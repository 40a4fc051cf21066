package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/onemarketph/backoffice/internal/store"
	"github.com/onemarketph/backoffice/internal/workflow"
)

// Error codes surfaced in API responses.
const (
	CodeMissingAuthHeader   = "MISSING_AUTH_HEADER"
	CodeInvalidAccessToken  = "INVALID_ACCESS_TOKEN"
	CodeAdminNotFound       = "ADMIN_NOT_FOUND"
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeConflict            = "CONFLICT"
	CodeValidationError     = "VALIDATION_ERROR"
	CodeReferenced          = "REFERENCED"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

type envelope map[string]any

type BaseHandler struct {
	Logger *slog.Logger
}

func (h *BaseHandler) logError(r *http.Request, err error) {
	h.Logger.Error(err.Error(), "method", r.Method, "uri", r.URL.RequestURI())
}

func (h *BaseHandler) errorResponse(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	env := envelope{"message": message, "code": code}

	if err := h.writeJSON(w, status, env, nil); err != nil {
		h.logError(r, err)
		w.WriteHeader(500)
	}
}

func (h *BaseHandler) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.logError(r, err)
	h.errorResponse(w, r, http.StatusInternalServerError, CodeInternalServerError,
		"the server encountered a problem and could not process your request")
}

// workflowErrorResponse maps typed workflow/store errors onto status+code
// pairs. Anything unrecognized is treated as an infrastructure failure.
func (h *BaseHandler) workflowErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalidStatus *workflow.InvalidStatusError
		transition    *workflow.TransitionError
	)

	switch {
	case errors.Is(err, store.ErrNotFound):
		h.errorResponse(w, r, http.StatusNotFound, CodeNotFound, "the requested record no longer exists")
	case errors.As(err, &invalidStatus):
		h.errorResponse(w, r, http.StatusUnprocessableEntity, CodeValidationError, invalidStatus.Error())
	case errors.As(err, &transition):
		h.errorResponse(w, r, http.StatusUnprocessableEntity, CodeInvalidTransition, transition.Error())
	case errors.Is(err, workflow.ErrConflict):
		h.errorResponse(w, r, http.StatusConflict, CodeConflict, "the record was changed by another request, reload and retry")
	default:
		h.serverErrorResponse(w, r, err)
	}
}

func (h *BaseHandler) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	for k, v := range headers {
		for _, value := range v {
			w.Header().Add(k, value)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func (h *BaseHandler) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576) // 1MB

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	// Ensure only a single JSON value is present in the body
	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}
