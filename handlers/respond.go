package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/darwin-mfc/clinical-api/logging"
	"github.com/darwin-mfc/clinical-api/query"
)

// Error codes shared by every endpoint.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeInternalError   = "INTERNAL_ERROR"
)

// APIError is the structured error half of the response envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the uniform envelope returned by every operation: either
// success with data (and meta for lists) or a structured error. There is no
// code path that returns neither.
type APIResponse struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   *APIError         `json:"error,omitempty"`
	Meta    *query.Pagination `json:"meta,omitempty"`
}

// ListPayload pairs a result page with its pagination block.
type ListPayload struct {
	Items      any              `json:"items"`
	Pagination query.Pagination `json:"pagination"`
}

// RespondWithJSON writes payload as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(body)
}

// respondOK wraps data in a success envelope.
func respondOK(w http.ResponseWriter, data any) {
	RespondWithJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

// respondList wraps a result page in a success envelope with meta.
func respondList(w http.ResponseWriter, items any, meta query.Pagination) {
	RespondWithJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    ListPayload{Items: items, Pagination: meta},
		Meta:    &meta,
	})
}

// respondError wraps a structured error in the envelope.
func respondError(w http.ResponseWriter, httpStatus int, code, message string) {
	RespondWithJSON(w, httpStatus, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
	})
}

// respondQueryError maps a query pipeline error to the envelope. Invalid
// caller input becomes a 400; anything else is an internal fault, logged
// with detail and reported generically.
func respondQueryError(w http.ResponseWriter, err error) {
	var invalid *query.InvalidArgumentError
	if errors.As(err, &invalid) {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, invalid.Error())
		return
	}

	logging.Error("Query pipeline failed", "error", err)
	respondError(w, http.StatusInternalServerError, CodeInternalError, "unexpected error while executing query")
}
