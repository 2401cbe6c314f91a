package server

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// dispatchError carries the HTTP status and one-line reason for a boundary
// failure: 400 missing or malformed parameter, 404 unknown etext, 500
// encoding failure. An empty search result is a 200 with no rows. The core recommender and index packages never produce
// one of these; only the dispatcher layer does.
type dispatchError struct {
	Status int
	Reason string
}

func (e *dispatchError) Error() string {
	return e.Reason
}

func badRequest(reason string) *dispatchError {
	return &dispatchError{Status: http.StatusBadRequest, Reason: reason}
}

func notFound(reason string) *dispatchError {
	return &dispatchError{Status: http.StatusNotFound, Reason: reason}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err *dispatchError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status)
	_ = sonic.ConfigStd.NewEncoder(w).Encode(errorBody{Error: err.Reason})
}

// writeJSON encodes v as the response body with status 200. A sonic
// encoding failure becomes a 500 written directly, since by that point the
// success status line may already be unwritable in the normal path.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := sonic.ConfigStd.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encoding failure", http.StatusInternalServerError)
	}
}
