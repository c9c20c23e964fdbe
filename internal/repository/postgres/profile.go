package postgres

import (
	"context"
	"database/sql"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Upsert(ctx context.Context, p *domain.UserProfile) error {
	query := `INSERT INTO user_profiles (user_id, full_name, nickname, license_id, phone)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id) DO UPDATE
	          SET full_name = EXCLUDED.full_name,
	              nickname = EXCLUDED.nickname,
	              license_id = EXCLUDED.license_id,
	              phone = CASE WHEN EXCLUDED.phone <> '' THEN EXCLUDED.phone ELSE user_profiles.phone END
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.UserID, p.FullName, p.Nickname, p.LicenseID, p.Phone).Scan(&p.ID)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int32) (*domain.UserProfile, error) {
	p := &domain.UserProfile{}
	query := `SELECT id, user_id, full_name, nickname, license_id, phone FROM user_profiles WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.FullName, &p.Nickname, &p.LicenseID, &p.Phone)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) GetByID(ctx context.Context, id int32) (*domain.UserProfile, error) {
	p := &domain.UserProfile{}
	query := `SELECT id, user_id, full_name, nickname, license_id, phone FROM user_profiles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.UserID, &p.FullName, &p.Nickname, &p.LicenseID, &p.Phone)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
