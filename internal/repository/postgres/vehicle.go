package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/repository"
)

// likeEscaper neutralizes LIKE wildcards so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) UpsertByModelName(ctx context.Context, v *domain.Vehicle) (bool, error) {
	query := `INSERT INTO vehicles (model_name, range_km, price_per_day_cents, status, created_on)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (model_name) DO UPDATE
	          SET range_km = EXCLUDED.range_km,
	              price_per_day_cents = EXCLUDED.price_per_day_cents,
	              status = EXCLUDED.status
	          RETURNING id, (xmax = 0)`
	var created bool
	err := r.db.QueryRowContext(ctx, query, v.ModelName, v.RangeKM, v.PricePerDayCents, v.Status, time.Now()).Scan(&v.ID, &created)
	return created, err
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, model_name, range_km, price_per_day_cents, status, created_on FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.ModelName, &v.RangeKM, &v.PricePerDayCents, &v.Status, &v.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) SearchAvailable(ctx context.Context, query string) ([]domain.Vehicle, error) {
	sqlQuery := `SELECT id, model_name, range_km, price_per_day_cents, status, created_on
	             FROM vehicles WHERE status = $1`
	args := []interface{}{domain.VehicleStatusAvailable}
	if query != "" {
		sqlQuery += ` AND model_name ILIKE '%' || $2 || '%'`
		args = append(args, likeEscaper.Replace(query))
	}
	sqlQuery += ` ORDER BY model_name ASC`

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.ModelName, &v.RangeKM, &v.PricePerDayCents, &v.Status, &v.CreatedOn); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *vehicleRepository) FirstAvailableByName(ctx context.Context, query string) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	sqlQuery := `SELECT id, model_name, range_km, price_per_day_cents, status, created_on
	             FROM vehicles
	             WHERE status = $1 AND model_name ILIKE '%' || $2 || '%'
	             ORDER BY id ASC LIMIT 1`
	err := r.db.QueryRowContext(ctx, sqlQuery, domain.VehicleStatusAvailable, likeEscaper.Replace(query)).Scan(&v.ID, &v.ModelName, &v.RangeKM, &v.PricePerDayCents, &v.Status, &v.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
