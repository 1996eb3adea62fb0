package routes

import (
	"codeassist/codeassist/controllers"
	"codeassist/codeassist/utils/types"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(ctrl *controllers.AuthController) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		if strings.TrimSpace(req.Username) == "" {
			return nil, http.StatusBadRequest, errors.New("username is required")
		}
		res, err := ctrl.Register(r.Context(), req.Username)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return res, http.StatusOK, nil
	}))

	r.Post("/login", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		res, err := ctrl.Login(r.Context(), req.Username, req.APIKey)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return res, http.StatusOK, nil
	}))

	return r
}
