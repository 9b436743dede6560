package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/haylex-sistemas/haylex/backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

func unreadCountKey(userID int64) string {
	return fmt.Sprintf("unread_count_%d", userID)
}

func (h *Handler) invalidateUnreadCount(ctx context.Context, userID int64) error {
	return h.redisClient.Del(ctx, unreadCountKey(userID)).Err()
}

// markMessagesRead marca como leídos, sobre la lista ya cargada, los mensajes
// dirigidos al destinatario.
func markMessagesRead(messages []*domain.Message, recipientID int64) {
	for _, message := range messages {
		if message.RecipientID == recipientID {
			message.IsRead = true
		}
	}
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		RecipientID int64  `json:"recipientID" validate:"required"`
		Body        string `json:"body"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	message, err := domain.NewMessage(myInfo.ID, req.RecipientID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage):
			h.errorResponse(w, r, "El mensaje no puede estar vacío")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	recipient, err := h.repository.GetUserByID(message.RecipientID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "El destinatario no existe")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.CreateMessage(message); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// El contador cacheado del destinatario queda obsoleto tras cada escritura
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	if err := h.invalidateUnreadCount(ctx, recipient.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "new_message",
		To:   recipient.Email,
		Data: domain.NewMessageMailData{
			FullName:   recipient.FullName,
			SenderName: myInfo.FullName,
		},
	}

	if err := h.publishMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Mensaje enviado", message)
}

// GetMyMessages devuelve la bandeja completa (enviados y recibidos, del más
// reciente al más antiguo) y marca como leídos los mensajes pendientes
// dirigidos al usuario.
func (h *Handler) GetMyMessages(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	messages, err := h.repository.GetMessagesByUserID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.MarkAllMessagesRead(myInfo.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// La respuesta debe reflejar la marca recién aplicada sin releer la bandeja
	markMessagesRead(messages, myInfo.ID)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	if err := h.invalidateUnreadCount(ctx, myInfo.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Mensajes obtenidos", messages)
}

func (h *Handler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	messageIDParam := chi.URLParam(r, "id")
	messageID, err := strconv.ParseInt(messageIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID de mensaje inválido")
		return
	}

	if err := h.repository.MarkMessageRead(messageID, myInfo.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	if err := h.invalidateUnreadCount(ctx, myInfo.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Mensaje marcado como leído", nil)
}

// GetUnreadCount consulta primero el contador cacheado en redis y solo va a
// la base de datos cuando no hay valor cacheado.
func (h *Handler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	cached, err := h.redisClient.Get(ctx, unreadCountKey(myInfo.ID)).Result()
	if err == nil {
		count, parseErr := strconv.ParseInt(cached, 10, 64)
		if parseErr == nil {
			h.successResponse(w, r, "Mensajes sin leer contados", count)
			return
		}
	} else if !errors.Is(err, redis.Nil) {
		h.internalServerError(w, r, err)
		return
	}

	count, err := h.repository.CountUnreadMessages(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.redisClient.Set(ctx, unreadCountKey(myInfo.ID), count, time.Duration(h.config.Redis.UnreadCountTTL)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Mensajes sin leer contados", count)
}
