package http

import (
	"net/http"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/service"
)

type VehicleHandler struct {
	vehicleSvc service.VehicleService
}

func NewVehicleHandler(vehicleSvc service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc}
}

type vehiclesResponse struct {
	Vehicles []domain.Vehicle `json:"vehicles"`
}

func (h *VehicleHandler) Search(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicleSvc.SearchAvailable(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehiclesResponse{Vehicles: vehicles})
}
