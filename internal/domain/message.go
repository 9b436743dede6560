package domain

import (
	"strings"
	"time"
)

type Message struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"senderID"`
	RecipientID int64     `json:"recipientID"`
	Body        string    `json:"body"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewMessage arma un mensaje nuevo recortando los espacios del cuerpo.
// Un cuerpo en blanco devuelve ErrEmptyMessage.
func NewMessage(senderID int64, recipientID int64, body string) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	return &Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
	}, nil
}
