package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/logger"
	"evrental-backend/internal/repository"
)

type inventoryService struct {
	vehicleRepo repository.VehicleRepository
}

func NewInventoryService(vehicleRepo repository.VehicleRepository) InventoryService {
	return &inventoryService{vehicleRepo: vehicleRepo}
}

// LoadFromCSV reads a file with header
// model_name,range_km,price_per_day,status and upserts each row keyed by
// model name. Bad rows are skipped with a log line; the load continues.
func (s *inventoryService) LoadFromCSV(ctx context.Context, path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening inventory file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("reading inventory header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"model_name", "range_km", "price_per_day", "status"} {
		if _, ok := cols[required]; !ok {
			return 0, 0, fmt.Errorf("inventory file is missing column %q", required)
		}
	}

	created, updated := 0, 0
	line := 1
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		line++

		vehicle, err := parseVehicleRow(record, cols)
		if err != nil {
			logger.Warn("skipping inventory row", "line", line, "error", err)
			continue
		}

		wasCreated, err := s.vehicleRepo.UpsertByModelName(ctx, vehicle)
		if err != nil {
			return created, updated, fmt.Errorf("upserting %q: %w", vehicle.ModelName, err)
		}
		if wasCreated {
			created++
		} else {
			updated++
		}
	}

	logger.Info("inventory load finished", "created", created, "updated", updated)
	return created, updated, nil
}

func parseVehicleRow(record []string, cols map[string]int) (*domain.Vehicle, error) {
	field := func(name string) string {
		idx := cols[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	modelName := field("model_name")
	if modelName == "" {
		return nil, fmt.Errorf("empty model_name")
	}

	rangeKM, err := strconv.ParseInt(field("range_km"), 10, 32)
	if err != nil || rangeKM < 0 {
		return nil, fmt.Errorf("invalid range_km %q", field("range_km"))
	}

	price, err := strconv.ParseFloat(field("price_per_day"), 64)
	if err != nil || price < 0 {
		return nil, fmt.Errorf("invalid price_per_day %q", field("price_per_day"))
	}

	status := field("status")
	if !domain.ValidVehicleStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	return &domain.Vehicle{
		ModelName:        modelName,
		RangeKM:          int32(rangeKM),
		PricePerDayCents: int32(math.Round(price * 100)),
		Status:           domain.VehicleStatus(status),
	}, nil
}
