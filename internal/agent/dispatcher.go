package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/logger"
	"evrental-backend/internal/repository"
)

// Dispatcher executes the model-invokable operations. Every operation
// returns a string observation; failures resolve to descriptive error
// strings so the agent loop can feed them back to the model. Nothing raises
// past this boundary.
type Dispatcher struct {
	users        repository.UserRepository
	profiles     repository.ProfileRepository
	vehicles     repository.VehicleRepository
	transactions repository.TransactionRepository
	now          func() time.Time
}

func NewDispatcher(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	vehicles repository.VehicleRepository,
	transactions repository.TransactionRepository,
) *Dispatcher {
	return &Dispatcher{
		users:        users,
		profiles:     profiles,
		vehicles:     vehicles,
		transactions: transactions,
		now:          time.Now,
	}
}

// Dispatch routes a tool invocation by name. Unknown names are reported
// back to the model as an observation, not an error.
func (d *Dispatcher) Dispatch(ctx context.Context, userID int32, name string, args map[string]any) string {
	log := logger.WithService("dispatcher").With("tool", name, "user_id", userID)
	log.Debug("dispatching tool call")

	switch name {
	case ToolOnboardUser:
		return d.onboardUser(ctx, userID, args)
	case ToolSearchVehicles:
		return d.searchVehicles(ctx, args)
	case ToolCreateDraftTransaction:
		return d.createDraftTransaction(ctx, userID, args)
	case ToolCancelTransaction:
		return d.cancelTransaction(ctx, args)
	default:
		return fmt.Sprintf("Error: unknown tool '%s'.", name)
	}
}

func (d *Dispatcher) onboardUser(ctx context.Context, userID int32, args map[string]any) string {
	fullName := getStringArg(args, "full_name")
	nickname := getStringArg(args, "nickname")
	licenseID := getStringArg(args, "license_id")
	phone := getStringArg(args, "phone")

	var missing []string
	if fullName == "" {
		missing = append(missing, "full_name")
	}
	if nickname == "" {
		missing = append(missing, "nickname")
	}
	if licenseID == "" {
		missing = append(missing, "license_id")
	}
	if len(missing) > 0 {
		return fmt.Sprintf("Error: missing required fields: %s. Ask the user for them.", strings.Join(missing, ", "))
	}

	if _, err := d.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "Error: User not found."
		}
		return fmt.Sprintf("Error: could not load user: %v", err)
	}

	profile := &domain.UserProfile{
		UserID:    userID,
		FullName:  fullName,
		Nickname:  nickname,
		LicenseID: licenseID,
		Phone:     phone,
	}
	if err := d.profiles.Upsert(ctx, profile); err != nil {
		return fmt.Sprintf("Error: could not save profile: %v", err)
	}

	return fmt.Sprintf("User %s (Nickname: %s) onboarded successfully with License ID: %s.", fullName, nickname, licenseID)
}

func (d *Dispatcher) searchVehicles(ctx context.Context, args map[string]any) string {
	query := getStringArg(args, "query")

	vehicles, err := d.vehicles.SearchAvailable(ctx, query)
	if err != nil {
		return fmt.Sprintf("Error: could not search inventory: %v", err)
	}
	if len(vehicles) == 0 {
		return "No available cars found matching your criteria."
	}

	lines := make([]string, 0, len(vehicles))
	for i := range vehicles {
		v := &vehicles[i]
		lines = append(lines, fmt.Sprintf("ID: %d | Model: %s | Range: %dkm | Price: %s", v.ID, v.ModelName, v.RangeKM, v.PriceDisplay()))
	}
	return strings.Join(lines, "\n")
}

func (d *Dispatcher) createDraftTransaction(ctx context.Context, userID int32, args map[string]any) string {
	vehicleQuery := getStringArg(args, "vehicle_query")
	if vehicleQuery == "" {
		return "Error: missing required field: vehicle_query."
	}

	txnType := domain.TransactionTypeTestDrive
	if t := getStringArg(args, "type"); t != "" {
		if !domain.ValidTransactionType(t) {
			return fmt.Sprintf("Error: unknown transaction type '%s'. Use TEST_DRIVE or PURCHASE.", t)
		}
		txnType = domain.TransactionType(t)
	}

	appointment := d.now()
	if dateStr := getStringArg(args, "date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Sprintf("Error: could not parse date '%s'. Use YYYY-MM-DD.", dateStr)
		}
		appointment = parsed
	}

	profile, err := d.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		// Lazy profile creation mirrors onboarding-less bookings.
		profile = &domain.UserProfile{UserID: userID}
		if err := d.profiles.Upsert(ctx, profile); err != nil {
			return fmt.Sprintf("Error: could not create profile: %v", err)
		}
	} else if err != nil {
		return fmt.Sprintf("Error: could not load profile: %v", err)
	}

	vehicle, err := d.vehicles.FirstAvailableByName(ctx, vehicleQuery)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Sprintf("Error: Could not find an available car matching '%s'.", vehicleQuery)
	}
	if err != nil {
		return fmt.Sprintf("Error: could not search inventory: %v", err)
	}

	txn := &domain.Transaction{
		ProfileID:       profile.ID,
		VehicleID:       vehicle.ID,
		Type:            txnType,
		Status:          domain.TransactionStatusDraft,
		AppointmentDate: appointment,
	}
	if err := d.transactions.Create(ctx, txn); err != nil {
		return fmt.Sprintf("Error creating draft: %v", err)
	}

	payload := DraftPayload{
		Message:       fmt.Sprintf("I have created a draft request for the %s.", vehicle.ModelName),
		TransactionID: txn.ID,
		Meta:          DraftCreatedMeta,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("Error creating draft: %v", err)
	}
	return string(encoded)
}

func (d *Dispatcher) cancelTransaction(ctx context.Context, args map[string]any) string {
	id, ok := getIntArg(args, "transaction_id")
	if !ok {
		return "Error: missing required field: transaction_id."
	}

	txn, err := d.transactions.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return "Error: Transaction not found."
	}
	if err != nil {
		return fmt.Sprintf("Error: could not load transaction: %v", err)
	}

	if txn.Status == domain.TransactionStatusCancelled {
		return fmt.Sprintf("Transaction %d is already cancelled.", id)
	}
	if !txn.Status.CanTransition(domain.TransactionStatusCancelled) {
		return fmt.Sprintf("Error: transaction %d cannot be cancelled from status %s.", id, txn.Status)
	}
	if err := d.transactions.UpdateStatus(ctx, id, domain.TransactionStatusCancelled); err != nil {
		return fmt.Sprintf("Error: could not cancel transaction: %v", err)
	}
	return fmt.Sprintf("Transaction %d has been cancelled.", id)
}
