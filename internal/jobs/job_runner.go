package jobs

import (
	"context"
	"errors"

	"evrental-backend/internal/config"
	"evrental-backend/internal/logger"
	"evrental-backend/internal/repository"
	"evrental-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	users        repository.UserRepository
	profiles     repository.ProfileRepository
	vehicles     repository.VehicleRepository
	transactions repository.TransactionRepository
	chats        repository.ChatRepository
	inventory    service.InventoryService
	email        service.EmailService
	config       *config.Config
}

func NewJobRunner(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	vehicles repository.VehicleRepository,
	transactions repository.TransactionRepository,
	chats repository.ChatRepository,
	inventory service.InventoryService,
	email service.EmailService,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		users:        users,
		profiles:     profiles,
		vehicles:     vehicles,
		transactions: transactions,
		chats:        chats,
		inventory:    inventory,
		email:        email,
		config:       cfg,
	}
}

// Config exposes the runner's configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// SyncInventory re-runs the CSV bulk load when a data file is configured.
func (jr *JobRunner) SyncInventory() {
	jr.runWithRecovery("SyncInventory", func() {
		path := jr.config.Inventory.DataFile
		if path == "" {
			logger.Debug("no inventory data file configured, skipping sync")
			return
		}
		created, updated, err := jr.inventory.LoadFromCSV(context.Background(), path)
		if err != nil {
			logger.Error("Failed to sync inventory", "error", err)
			return
		}
		logger.Info("Inventory synced", "created", created, "updated", updated)
	})
}

// PurgeStaleGuestSessions deletes guest chat sessions idle past the
// configured retention.
func (jr *JobRunner) PurgeStaleGuestSessions() {
	jr.runWithRecovery("PurgeStaleGuestSessions", func() {
		deleted, err := jr.chats.DeleteStaleGuestSessions(context.Background(), jr.config.Scheduler.GuestSessionIdleDays)
		if err != nil {
			logger.Error("Failed to purge stale guest sessions", "error", err)
			return
		}
		logger.Info("Purged stale guest sessions", "count", deleted)
	})
}

// SendDraftReminders emails owners of DRAFT transactions older than the
// configured age. Guests and users without email are skipped.
func (jr *JobRunner) SendDraftReminders() {
	jr.runWithRecovery("SendDraftReminders", func() {
		ctx := context.Background()

		drafts, err := jr.transactions.ListDraftsOlderThan(ctx, jr.config.Scheduler.DraftReminderAgeHours)
		if err != nil {
			logger.Error("Failed to list stale drafts", "error", err)
			return
		}

		sent := 0
		for i := range drafts {
			txn := &drafts[i]

			profile, err := jr.profiles.GetByID(ctx, txn.ProfileID)
			if err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					logger.Error("Failed to load profile for draft", "transaction_id", txn.ID, "error", err)
				}
				continue
			}
			user, err := jr.users.GetByID(ctx, profile.UserID)
			if err != nil || user.Email == "" {
				continue
			}

			modelName := "requested vehicle"
			if vehicle, err := jr.vehicles.GetByID(ctx, txn.VehicleID); err == nil {
				modelName = vehicle.ModelName
			}

			if err := jr.email.SendDraftReminder(ctx, user.Email, user.Username, modelName, txn.ID); err != nil {
				logger.Error("Failed to send draft reminder", "transaction_id", txn.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Draft reminders sent", "count", sent, "stale_drafts", len(drafts))
	})
}
