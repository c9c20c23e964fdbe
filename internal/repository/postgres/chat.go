package postgres

import (
	"context"
	"database/sql"
	"time"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/repository"
)

type chatRepository struct {
	db *sql.DB
}

func NewChatRepository(db *sql.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateSession(ctx context.Context, s *domain.ChatSession) error {
	query := `INSERT INTO chat_sessions (id, user_id, created_on, updated_on) VALUES ($1, $2, $3, $4)`
	now := time.Now()
	s.CreatedOn = now
	s.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query, s.ID, s.UserID, s.CreatedOn, s.UpdatedOn)
	return err
}

func (r *chatRepository) GetSession(ctx context.Context, id string) (*domain.ChatSession, error) {
	s := &domain.ChatSession{}
	query := `SELECT id, user_id, created_on, updated_on FROM chat_sessions WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.UserID, &s.CreatedOn, &s.UpdatedOn)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *chatRepository) TouchSession(ctx context.Context, id string) error {
	query := `UPDATE chat_sessions SET updated_on = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *chatRepository) AppendMessage(ctx context.Context, m *domain.ChatMessage) error {
	query := `INSERT INTO chat_messages (session_id, role, text, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	if m.CreatedOn.IsZero() {
		m.CreatedOn = time.Now()
	}
	return r.db.QueryRowContext(ctx, query, m.SessionID, m.Role, m.Text, m.CreatedOn).Scan(&m.ID)
}

func (r *chatRepository) ListMessages(ctx context.Context, sessionID string, limit int32) ([]domain.ChatMessage, error) {
	query := `SELECT id, session_id, role, text, created_on FROM (
	              SELECT id, session_id, role, text, created_on
	              FROM chat_messages WHERE session_id = $1
	              ORDER BY id DESC LIMIT $2
	          ) AS recent ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Text, &m.CreatedOn); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *chatRepository) DeleteStaleGuestSessions(ctx context.Context, idleDays int) (int64, error) {
	// Messages cascade via the schema's FK.
	query := `DELETE FROM chat_sessions
	          WHERE updated_on < $1
	            AND user_id IN (SELECT id FROM users WHERE is_guest = true)`
	cutoff := time.Now().AddDate(0, 0, -idleDays)
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
