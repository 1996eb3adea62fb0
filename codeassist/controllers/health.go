package controllers

import (
	httputils "codeassist/codeassist/utils/http"
	"net/http"
)

type HealthController struct {
	Model string
}

func NewHealthController(model string) *HealthController {
	return &HealthController{Model: model}
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputils.WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"model":     h.Model,
		"framework": "chi + gorm",
	})
}
