package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields []ValidationError `json:"fields,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondValidationError maps validator field errors into the per-field shape
// the admin forms surface inline.
func respondValidationError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: "Validation failed"}

	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			resp.Fields = append(resp.Fields, ValidationError{
				Field:   fe.Namespace(),
				Message: fe.Tag(),
			})
		}
	}

	respondJSON(w, http.StatusBadRequest, resp)
}
