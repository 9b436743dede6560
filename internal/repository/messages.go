package repository

import (
	"context"
	"time"

	"github.com/haylex-sistemas/haylex/backend/internal/domain"
)

func (r *Repository) CreateMessage(message *domain.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO messages (sender_id, recipient_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, is_read, created_at
	`

	args := []any{message.SenderID, message.RecipientID, message.Body}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&message.ID, &message.IsRead, &message.CreatedAt); err != nil {
		return err
	}

	return nil
}

// GetMessagesByUserID devuelve los mensajes donde el usuario es remitente o
// destinatario, del más reciente al más antiguo.
func (r *Repository) GetMessagesByUserID(userID int64) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, sender_id, recipient_id, body, is_read, created_at
		FROM messages
		WHERE sender_id = $1 OR recipient_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		message := &domain.Message{}
		dst := []any{&message.ID, &message.SenderID, &message.RecipientID, &message.Body, &message.IsRead, &message.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

// MarkMessageRead es idempotente: marcar un mensaje ya leído no cambia nada.
// El filtro por destinatario impide que el remitente marque mensajes ajenos.
func (r *Repository) MarkMessageRead(messageID int64, recipientID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE messages SET is_read = TRUE
		WHERE id = $1 AND recipient_id = $2
	`

	if _, err := r.dbpool.ExecContext(ctx, query, messageID, recipientID); err != nil {
		return err
	}

	return nil
}

// MarkAllMessagesRead marca como leídos todos los mensajes pendientes del
// destinatario. Se invoca al listar la bandeja.
func (r *Repository) MarkAllMessagesRead(recipientID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE messages SET is_read = TRUE
		WHERE recipient_id = $1 AND is_read = FALSE
	`

	if _, err := r.dbpool.ExecContext(ctx, query, recipientID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CountUnreadMessages(recipientID int64) (int64, error) {
	var count int64

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT COUNT(*) FROM messages
		WHERE recipient_id = $1 AND is_read = FALSE
	`

	if err := r.dbpool.QueryRowContext(ctx, query, recipientID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
