package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ChatMessage is one exchange with the cooking assistant.
type ChatMessage struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"-"`
	Message   string    `db:"message" json:"message"`
	Response  string    `db:"response" json:"response"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ChatRepository persists assistant conversations.
type ChatRepository interface {
	Insert(ctx context.Context, userID uuid.UUID, message, response string) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]ChatMessage, error)
}

type chatRepo struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) Insert(ctx context.Context, userID uuid.UUID, message, response string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, user_id, message, response)
		VALUES ($1, $2, $3, $4)`, uuid.New(), userID, message, response)
	if err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

func (r *chatRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	messages := []ChatMessage{}
	err := r.db.SelectContext(ctx, &messages, `
		SELECT * FROM chat_messages WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	return messages, nil
}
