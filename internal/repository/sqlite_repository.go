package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"omnichat/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	query := "INSERT INTO conversations (id, title, provider, model, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, conv.ID, conv.Title, conv.Provider, conv.Model, conv.CreatedAt, conv.UpdatedAt)
	return err
}

// AppendMessage inserts the message and bumps the conversation timestamp in
// one transaction, so the sidebar ordering can never drift from the
// transcript.
func (r *sqliteRepository) AppendMessage(ctx context.Context, conversationID string, msg *model.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := "INSERT INTO messages (id, conversation_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)"
	if _, err := tx.ExecContext(ctx, insertQuery, msg.ID, conversationID, msg.Role, msg.Content, msg.CreatedAt); err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}

	updateQuery := "UPDATE conversations SET updated_at = ? WHERE id = ?"
	if _, err := tx.ExecContext(ctx, updateQuery, time.Now().UTC(), conversationID); err != nil {
		return fmt.Errorf("could not update conversation timestamp: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRepository) UpdateConversationTitle(ctx context.Context, conversationID, title string) error {
	query := "UPDATE conversations SET title = ? WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, title, conversationID)
	return err
}

func (r *sqliteRepository) ListConversations(ctx context.Context) ([]model.Conversation, error) {
	query := "SELECT id, title, provider, model, created_at, updated_at FROM conversations ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []model.Conversation
	for rows.Next() {
		var conv model.Conversation
		if err := rows.Scan(&conv.ID, &conv.Title, &conv.Provider, &conv.Model, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, err
		}
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}

func (r *sqliteRepository) GetMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	query := "SELECT id, role, content, created_at FROM messages WHERE conversation_id = ? ORDER BY created_at ASC, rowid ASC"
	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *sqliteRepository) GetSetting(ctx context.Context, key string) (string, error) {
	query := "SELECT value FROM settings WHERE key = ?"
	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *sqliteRepository) SetSetting(ctx context.Context, key, value string) error {
	query := "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value"
	_, err := r.db.ExecContext(ctx, query, key, value)
	return err
}
