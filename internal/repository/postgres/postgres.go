package postgres

import (
	"database/sql"

	"evrental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ProfileRepository
	repository.VehicleRepository
	repository.TransactionRepository
	repository.ChatRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		UserRepository:        NewUserRepository(db),
		ProfileRepository:     NewProfileRepository(db),
		VehicleRepository:     NewVehicleRepository(db),
		TransactionRepository: NewTransactionRepository(db),
		ChatRepository:        NewChatRepository(db),
	}
}
