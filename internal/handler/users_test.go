package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	"github.com/haylex-sistemas/haylex/backend/internal/config"
	"github.com/haylex-sistemas/haylex/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore cubre solo los métodos que cada prueba necesita; los demás vienen
// de la interfaz embebida y no deben alcanzarse.
type fakeStore struct {
	Store

	admins   int
	users    map[int64]*domain.User
	deleted  []int64
	updated  []*domain.User
	messages []*domain.Message
}

func (s *fakeStore) CountAdmins() (int, error) {
	return s.admins, nil
}

func (s *fakeStore) DeleteUser(id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeStore) UpdateUser(user *domain.User) error {
	s.updated = append(s.updated, user)
	return nil
}

func (s *fakeStore) GetUserByID(id int64) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (s *fakeStore) CreateMessage(message *domain.Message) error {
	s.messages = append(s.messages, message)
	return nil
}

func newTestHandler(t *testing.T, store Store) *Handler {
	t.Helper()

	validate := validator.New(validator.WithRequiredStructEnabled())
	esLocale := es.New()
	uni := ut.New(esLocale, esLocale)
	trans, _ := uni.GetTranslator("es")
	require.NoError(t, es_translations.RegisterDefaultTranslations(validate, trans))

	return &Handler{
		validate:   validate,
		config:     &config.Config{},
		repository: store,
		translator: trans,
	}
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func requestWithUser(method string, target string, body string, key ContextKey, user *domain.User) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	return r.WithContext(context.WithValue(r.Context(), key, user))
}

func TestDeleteUserRefusesLastAdmin(t *testing.T) {
	store := &fakeStore{admins: 1}
	h := newTestHandler(t, store)

	admin := &domain.User{ID: 1, Username: "GERENCIA", Role: domain.RoleAdmin}
	w := httptest.NewRecorder()
	r := requestWithUser(http.MethodDelete, "/users/1", "", UserInfoCtx, admin)

	h.DeleteUser(w, r)

	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "No se puede eliminar al último administrador", resp.Message)
	assert.Empty(t, store.deleted)
}

func TestDeleteUserAllowsWithRemainingAdmins(t *testing.T) {
	store := &fakeStore{admins: 2}
	h := newTestHandler(t, store)

	admin := &domain.User{ID: 7, Username: "otro.admin", Role: domain.RoleAdmin}
	w := httptest.NewRecorder()
	r := requestWithUser(http.MethodDelete, "/users/7", "", UserInfoCtx, admin)

	h.DeleteUser(w, r)

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, []int64{7}, store.deleted)
}

func TestUpdateUserRefusesDemotingLastAdmin(t *testing.T) {
	store := &fakeStore{admins: 1}
	h := newTestHandler(t, store)

	admin := &domain.User{ID: 1, Username: "GERENCIA", Role: domain.RoleAdmin}
	w := httptest.NewRecorder()
	r := requestWithUser(http.MethodPatch, "/users/1", `{"role":"ejecutivo"}`, UserInfoCtx, admin)

	h.UpdateUser(w, r)

	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "No se puede degradar al último administrador", resp.Message)
	assert.Empty(t, store.updated)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
}

func TestUpdateUserDemotesWhenAnotherAdminRemains(t *testing.T) {
	store := &fakeStore{admins: 2}
	h := newTestHandler(t, store)

	admin := &domain.User{ID: 5, Username: "otro.admin", Role: domain.RoleAdmin}
	w := httptest.NewRecorder()
	r := requestWithUser(http.MethodPatch, "/users/5", `{"role":"ejecutivo"}`, UserInfoCtx, admin)

	h.UpdateUser(w, r)

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	require.Len(t, store.updated, 1)
	assert.Equal(t, domain.RoleExecutive, store.updated[0].Role)
}
