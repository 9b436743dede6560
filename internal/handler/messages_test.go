package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haylex-sistemas/haylex/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSendMessageRejectsBlankBody(t *testing.T) {
	store := &fakeStore{users: map[int64]*domain.User{2: {ID: 2}}}
	h := newTestHandler(t, store)

	sender := &domain.User{ID: 1, Username: "ana.garcia"}
	w := httptest.NewRecorder()
	r := requestWithUser(http.MethodPost, "/messages", `{"recipientID":2,"body":"   "}`, MyInfoCtx, sender)

	h.SendMessage(w, r)

	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "El mensaje no puede estar vacío", resp.Message)
	assert.Empty(t, store.messages)
}

func TestSendMessageRejectsUnknownRecipient(t *testing.T) {
	store := &fakeStore{users: map[int64]*domain.User{}}
	h := newTestHandler(t, store)

	sender := &domain.User{ID: 1, Username: "ana.garcia"}
	w := httptest.NewRecorder()
	r := requestWithUser(http.MethodPost, "/messages", `{"recipientID":99,"body":"Hola"}`, MyInfoCtx, sender)

	h.SendMessage(w, r)

	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "El destinatario no existe", resp.Message)
	assert.Empty(t, store.messages)
}

func TestMarkMessagesReadOnlyFlipsReceived(t *testing.T) {
	messages := []*domain.Message{
		{ID: 1, SenderID: 2, RecipientID: 1, Body: "Hola", IsRead: false},
		{ID: 2, SenderID: 1, RecipientID: 2, Body: "Respuesta", IsRead: false},
		{ID: 3, SenderID: 3, RecipientID: 1, Body: "Recordatorio", IsRead: true},
	}

	markMessagesRead(messages, 1)

	// Los recibidos quedan leídos en la respuesta; los enviados dependen del
	// destinatario y no se tocan
	assert.True(t, messages[0].IsRead)
	assert.False(t, messages[1].IsRead)
	assert.True(t, messages[2].IsRead)
}

func TestNewMessageTrimsBody(t *testing.T) {
	message, err := domain.NewMessage(1, 2, "  Hola  ")

	assert.NoError(t, err)
	assert.Equal(t, "Hola", message.Body)
}
