package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/repository"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (profile_id, vehicle_id, type, status, appointment_date, created_at, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, t.ProfileID, t.VehicleID, t.Type, t.Status, t.AppointmentDate, t.CreatedAt, t.UpdatedOn).Scan(&t.ID)
}

func (r *transactionRepository) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	query := `SELECT id, profile_id, vehicle_id, type, status, appointment_date, created_at, updated_on
	          FROM transactions WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.ProfileID, &t.VehicleID, &t.Type, &t.Status, &t.AppointmentDate, &t.CreatedAt, &t.UpdatedOn)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id int32, status domain.TransactionStatus) error {
	query := `UPDATE transactions SET status = $1, updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *transactionRepository) ListByProfile(ctx context.Context, profileID int32) ([]domain.Transaction, error) {
	query := `SELECT id, profile_id, vehicle_id, type, status, appointment_date, created_at, updated_on
	          FROM transactions WHERE profile_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *transactionRepository) ListDraftsOlderThan(ctx context.Context, hours int) ([]domain.Transaction, error) {
	query := `SELECT id, profile_id, vehicle_id, type, status, appointment_date, created_at, updated_on
	          FROM transactions WHERE status = $1 AND created_at < $2 ORDER BY created_at ASC`
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)
	rows, err := r.db.QueryContext(ctx, query, domain.TransactionStatusDraft, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.ProfileID, &t.VehicleID, &t.Type, &t.Status, &t.AppointmentDate, &t.CreatedAt, &t.UpdatedOn); err != nil {
			return nil, fmt.Errorf("scanning transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
