package server

import (
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	perr "github.com/matzehuels/followgraph/pkg/errors"
)

// Envelope is the response body for every endpoint.
type Envelope struct {
	StatusCode int       `json:"status_code"`
	Status     string    `json:"status"`
	Code       perr.Code `json:"code,omitempty"`
	Error      string    `json:"error,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	Data       any       `json:"data,omitempty"`
}

// writeJSON writes v as application/json with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondOK(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, http.StatusOK, Envelope{
		StatusCode: http.StatusOK,
		Status:     http.StatusText(http.StatusOK),
		RequestID:  chimw.GetReqID(r.Context()),
		Data:       data,
	})
}

// respondError maps err to a status and code and writes the envelope.
// Errors without a code are reported as internal and their text withheld.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := perr.HTTPStatus(err)
	code := perr.GetCode(err)
	msg := perr.UserMessage(err)
	if code == "" {
		code = perr.ErrCodeInternal
		msg = http.StatusText(http.StatusInternalServerError)
		loggerFrom(r).Error("unhandled error", "err", err)
	}
	writeJSON(w, status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       code,
		Error:      msg,
		RequestID:  chimw.GetReqID(r.Context()),
	})
}

// handle adapts a handler returning (data, error) to net/http.
func handle(fn func(*http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fn(r)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondOK(w, r, data)
	}
}

// handleJSON binds and validates a T from the body before calling fn.
func handleJSON[T any](fn func(*http.Request, T) (any, error)) http.HandlerFunc {
	return handle(func(r *http.Request) (any, error) {
		in, err := parseJSON[T](r)
		if err != nil {
			return nil, err
		}
		return fn(r, in)
	})
}
