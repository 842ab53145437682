package handlers

import (
	"net/http"

	"github.com/bensuskins/nutrition-hub/internal/services"
)

type CommunityHandler struct {
	service *services.CommunityService
}

func NewCommunityHandler(service *services.CommunityService) *CommunityHandler {
	return &CommunityHandler{service: service}
}

func (handler *CommunityHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := handler.service.Report(r.Context())
	if err != nil {
		writeServiceError(w, err, "community report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
