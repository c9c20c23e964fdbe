package domain

import "time"

type TransactionType string

const (
	TransactionTypeTestDrive TransactionType = "TEST_DRIVE"
	TransactionTypePurchase  TransactionType = "PURCHASE"
)

type TransactionStatus string

const (
	TransactionStatusDraft     TransactionStatus = "DRAFT"
	TransactionStatusConfirmed TransactionStatus = "CONFIRMED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

type Transaction struct {
	ID              int32             `json:"id"`
	ProfileID       int32             `json:"profile_id"`
	VehicleID       int32             `json:"vehicle_id"`
	Vehicle         *Vehicle          `json:"vehicle,omitempty"` // Populated when fetching transaction details
	Type            TransactionType   `json:"type"`
	Status          TransactionStatus `json:"status"`
	AppointmentDate time.Time         `json:"appointment_date"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedOn       time.Time         `json:"updated_on"`
}

// CanTransition reports whether a status change is allowed. Transitions are
// monotone: a DRAFT may be confirmed or cancelled, a CONFIRMED transaction
// may only be cancelled, and CANCELLED is terminal.
func (s TransactionStatus) CanTransition(to TransactionStatus) bool {
	switch s {
	case TransactionStatusDraft:
		return to == TransactionStatusConfirmed || to == TransactionStatusCancelled
	case TransactionStatusConfirmed:
		return to == TransactionStatusCancelled
	default:
		return false
	}
}

func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusConfirmed || s == TransactionStatusCancelled
}

func ValidTransactionType(t string) bool {
	switch TransactionType(t) {
	case TransactionTypeTestDrive, TransactionTypePurchase:
		return true
	}
	return false
}
