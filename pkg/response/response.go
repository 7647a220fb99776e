package response

import (
	"encoding/json"
	"net/http"

	"retail-backoffice-api/pkg/apierror"
)

// Result is the envelope returned by mutating endpoints.
type Result struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id,omitempty"`
}

// JSON writes v as-is with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 response with the given payload.
func OK(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Success writes a `{success:true}` envelope.
func Success(w http.ResponseWriter) {
	JSON(w, http.StatusOK, Result{Success: true})
}

// Created writes a 201 `{success:true, id}` envelope for a new resource.
func Created(w http.ResponseWriter, id int64) {
	JSON(w, http.StatusCreated, Result{Success: true, ID: id})
}

// Error sends an error response.
func Error(w http.ResponseWriter, err error) {
	// Check if it's an APIError
	if apiErr, ok := err.(*apierror.Error); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(apiErr.StatusCode)
		w.Write(apiErr.ToJSON())
		return
	}

	// Default to internal server error
	internalErr := apierror.InternalError("an unexpected error occurred")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(internalErr.StatusCode)
	w.Write(internalErr.ToJSON())
}
