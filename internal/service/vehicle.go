package service

import (
	"context"
	"strings"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func (s *vehicleService) SearchAvailable(ctx context.Context, query string) ([]domain.Vehicle, error) {
	return s.vehicleRepo.SearchAvailable(ctx, strings.TrimSpace(query))
}
