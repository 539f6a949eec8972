package reservations

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Service error codes surfaced through the envelope's Code field. Clients
// treat any Success=false response carrying one of these as a domain
// rejection, distinct from a transport failure.
const (
	codeOK = iota
	codeInternal
	codeMalformedData
	codeInvalidQuery
)

type apiError struct {
	code    int
	message string
}

func (e *apiError) Error() string { return e.message }

func (e *apiError) httpStatus() int {
	switch e.code {
	case codeMalformedData, codeInvalidQuery:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func errInternal(msg string) *apiError {
	return &apiError{code: codeInternal, message: "Internal Server Error: " + msg}
}

func errMalformedData(msg string) *apiError {
	return &apiError{code: codeMalformedData, message: "Malformed Data: " + msg}
}

func errInvalidQuery(msg string) *apiError {
	return &apiError{code: codeInvalidQuery, message: "Invalid Query: " + msg}
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Code: codeOK, Data: data})
}

func writeError(w http.ResponseWriter, err *apiError) {
	writeJSON(w, err.httpStatus(), Response{Success: false, Code: err.code, Message: err.message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func timeoutContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), queryTimeout)
}
