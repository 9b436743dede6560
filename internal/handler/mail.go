package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/haylex-sistemas/haylex/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publishMail encola una notificación de correo para que el worker la envíe.
func (h *Handler) publishMail(mailMessage domain.MailMessage) error {
	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}
