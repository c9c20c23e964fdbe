package domain

import "fmt"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusRented      VehicleStatus = "RENTED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
)

type Vehicle struct {
	ID               int32         `json:"id"`
	ModelName        string        `json:"model_name"`
	RangeKM          int32         `json:"range_km"`
	PricePerDayCents int32         `json:"price_per_day_cents"`
	Status           VehicleStatus `json:"status"`
	CreatedOn        string        `json:"created_on"`
}

// PriceDisplay renders the daily price in dollars for user-facing text.
func (v *Vehicle) PriceDisplay() string {
	return fmt.Sprintf("$%d.%02d", v.PricePerDayCents/100, v.PricePerDayCents%100)
}

func ValidVehicleStatus(s string) bool {
	switch VehicleStatus(s) {
	case VehicleStatusAvailable, VehicleStatusRented, VehicleStatusMaintenance:
		return true
	}
	return false
}
