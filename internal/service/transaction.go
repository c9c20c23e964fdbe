package service

import (
	"context"
	"errors"
	"fmt"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/logger"
	"evrental-backend/internal/repository"
)

type transactionService struct {
	txnRepo     repository.TransactionRepository
	profileRepo repository.ProfileRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
}

func NewTransactionService(
	txnRepo repository.TransactionRepository,
	profileRepo repository.ProfileRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) TransactionService {
	return &transactionService{
		txnRepo:     txnRepo,
		profileRepo: profileRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
	}
}

func (s *transactionService) Confirm(ctx context.Context, userID, txnID int32) (*domain.Transaction, error) {
	txn, err := s.ownedTransaction(ctx, userID, txnID)
	if err != nil {
		return nil, err
	}

	if txn.Status.Terminal() {
		return nil, ErrAlreadyFinal
	}
	if !txn.Status.CanTransition(domain.TransactionStatusConfirmed) {
		return nil, ErrAlreadyFinal
	}

	if err := s.txnRepo.UpdateStatus(ctx, txnID, domain.TransactionStatusConfirmed); err != nil {
		return nil, fmt.Errorf("confirming transaction %d: %w", txnID, err)
	}
	txn.Status = domain.TransactionStatusConfirmed
	s.attachVehicle(ctx, txn)

	logger.Info("transaction confirmed", "transaction_id", txnID, "user_id", userID)
	s.notifyConfirmation(ctx, userID, txn)
	return txn, nil
}

func (s *transactionService) Cancel(ctx context.Context, userID, txnID int32) (*domain.Transaction, error) {
	txn, err := s.ownedTransaction(ctx, userID, txnID)
	if err != nil {
		return nil, err
	}

	if txn.Status == domain.TransactionStatusCancelled {
		// Cancelling twice is a no-op; the terminal state never changes.
		s.attachVehicle(ctx, txn)
		return txn, nil
	}
	if !txn.Status.CanTransition(domain.TransactionStatusCancelled) {
		return nil, ErrAlreadyFinal
	}

	if err := s.txnRepo.UpdateStatus(ctx, txnID, domain.TransactionStatusCancelled); err != nil {
		return nil, fmt.Errorf("cancelling transaction %d: %w", txnID, err)
	}
	txn.Status = domain.TransactionStatusCancelled
	s.attachVehicle(ctx, txn)

	logger.Info("transaction cancelled", "transaction_id", txnID, "user_id", userID)
	return txn, nil
}

func (s *transactionService) List(ctx context.Context, userID int32) ([]domain.Transaction, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	for i := range txns {
		s.attachVehicle(ctx, &txns[i])
	}
	return txns, nil
}

// ownedTransaction loads a transaction and verifies the caller owns it. A
// foreign caller gets ErrForbidden and no state is touched.
func (s *transactionService) ownedTransaction(ctx context.Context, userID, txnID int32) (*domain.Transaction, error) {
	txn, err := s.txnRepo.GetByID(ctx, txnID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, txn.ProfileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != userID {
		return nil, ErrForbidden
	}
	return txn, nil
}

func (s *transactionService) attachVehicle(ctx context.Context, txn *domain.Transaction) {
	if vehicle, err := s.vehicleRepo.GetByID(ctx, txn.VehicleID); err == nil {
		txn.Vehicle = vehicle
	}
}

func (s *transactionService) notifyConfirmation(ctx context.Context, userID int32, txn *domain.Transaction) {
	if s.emailSvc == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user.Email == "" {
		return
	}
	modelName := ""
	if txn.Vehicle != nil {
		modelName = txn.Vehicle.ModelName
	}
	if err := s.emailSvc.SendBookingConfirmation(ctx, user.Email, user.Username, modelName, txn.ID); err != nil {
		logger.Warn("failed to send confirmation email", "transaction_id", txn.ID, "error", err)
	}
}
