package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/anima-music/anima/api"
)

// JsonBody decodes the request body into T, answering 400 on malformed input.
// Callers only need to check the error and return.
func JsonBody[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var result T
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		RespondError(w, http.StatusBadRequest, "Datos inválidos")
		return result, err
	}
	return result, nil
}

// RespondError writes the uniform error payload. Internal detail never leaves
// the server, callers log it separately.
func RespondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Message: message})
}

func RespondJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}
