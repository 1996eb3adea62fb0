package routes

import (
	"codeassist/codeassist/controllers"
	httputils "codeassist/codeassist/utils/http"
	"encoding/json"
	"errors"
	"net/http"
)

// generic wrapper to reduce boilerplate
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			httputils.WriteError(w, statusForError(err, status), err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(res)
	}
}

// statusForError maps controller sentinels onto their HTTP codes; anything
// unrecognized keeps the handler's fallback status.
func statusForError(err error, fallback int) int {
	switch {
	case errors.Is(err, controllers.ErrUsernameTaken):
		return http.StatusBadRequest
	case errors.Is(err, controllers.ErrInvalidCredentials), errors.Is(err, controllers.ErrInvalidAPIKey):
		return http.StatusUnauthorized
	case errors.Is(err, controllers.ErrSessionNotFound):
		return http.StatusNotFound
	}
	return fallback
}
