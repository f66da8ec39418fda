// Package httpjson holds the JSON request/response helpers shared by the
// REST handlers: bounded request decoding, success envelopes, and the
// single mapping from the apperr taxonomy to HTTP statuses.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hackmatehq/hackmate/internal/app/system/apperr"
	"go.uber.org/zap"
)

// MaxBodyBytes is the default request body cap for JSON endpoints.
const MaxBodyBytes = 1 << 20 // 1 MB

// Decode reads a JSON body into dst, rejecting unknown fields and bodies
// over MaxBodyBytes. Failures come back as apperr validation errors.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.Validation("Request body too large.")
		}
		return apperr.Validation("Invalid request body.")
	}
	return nil
}

// Write serializes v with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody matches the wire contract: {message} plus a field-error list
// for validation failures.
type errorBody struct {
	Message string             `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict, apperr.KindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as its mapped status and JSON body. Server-kind causes
// are logged; their details never reach the client.
func Error(w http.ResponseWriter, err error, log *zap.Logger) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError && log != nil {
		log.Error("request failed", zap.Error(err))
	}
	Write(w, status, errorBody{
		Message: apperr.MessageOf(err),
		Errors:  apperr.FieldsOf(err),
	})
}
