package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/markitup/markitup-api/internal/auth"
	"github.com/markitup/markitup-api/internal/logging"
	"github.com/markitup/markitup-api/internal/user"
)

// memStore is an in-memory Store for testing
type memStore struct {
	mu   sync.Mutex
	docs map[user.ID]*Settings
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[user.ID]*Settings)}
}

func (m *memStore) Get(ctx context.Context, userID user.ID) (*Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.docs[userID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *memStore) Upsert(ctx context.Context, userID user.ID, preferences map[string]any) (*Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &Settings{
		Preferences: preferences,
		UpdatedAt:   time.Now().UTC(),
	}
	m.docs[userID] = s
	copied := *s
	return &copied, nil
}

func doRequest(t *testing.T, handlerFunc http.HandlerFunc, method string, body any, userID user.ID) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, "/api/settings", &buf)
	if userID != "" {
		ctx := context.WithValue(req.Context(), auth.UserIDContextKey, userID)
		req = req.WithContext(ctx)
	}

	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func TestSettings_GetBeforeFirstWrite(t *testing.T) {
	handler := NewHandler(newMemStore(), logging.NewLogger(true))
	userID := user.ID(bson.NewObjectID().Hex())

	rec := doRequest(t, handler.Get, http.MethodGet, nil, userID)
	require.Equal(t, http.StatusOK, rec.Code)

	var view View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Empty(t, view.Preferences)
	assert.Empty(t, view.UpdatedAt)
}

func TestSettings_UpsertThenGet(t *testing.T) {
	store := newMemStore()
	handler := NewHandler(store, logging.NewLogger(true))
	userID := user.ID(bson.NewObjectID().Hex())

	rec := doRequest(t, handler.Update, http.MethodPut, UpdateRequest{
		Preferences: map[string]any{"theme": "dark", "language": "en"},
	}, userID)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler.Get, http.MethodGet, nil, userID)
	require.Equal(t, http.StatusOK, rec.Code)

	var view View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "dark", view.Preferences["theme"])
	assert.Equal(t, "en", view.Preferences["language"])
	assert.NotEmpty(t, view.UpdatedAt)
}

func TestSettings_OverwriteWholesale(t *testing.T) {
	store := newMemStore()
	handler := NewHandler(store, logging.NewLogger(true))
	userID := user.ID(bson.NewObjectID().Hex())

	rec := doRequest(t, handler.Update, http.MethodPut, UpdateRequest{
		Preferences: map[string]any{"theme": "dark", "language": "en"},
	}, userID)
	require.Equal(t, http.StatusOK, rec.Code)

	// Second write replaces the preferences wholesale; language is gone
	rec = doRequest(t, handler.Update, http.MethodPut, UpdateRequest{
		Preferences: map[string]any{"theme": "light"},
	}, userID)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler.Get, http.MethodGet, nil, userID)
	require.Equal(t, http.StatusOK, rec.Code)

	var view View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "light", view.Preferences["theme"])
	assert.NotContains(t, view.Preferences, "language")
}

func TestSettings_Unauthenticated(t *testing.T) {
	handler := NewHandler(newMemStore(), logging.NewLogger(true))

	rec := doRequest(t, handler.Get, http.MethodGet, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, handler.Update, http.MethodPut, UpdateRequest{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSettings_BadBody(t *testing.T) {
	handler := NewHandler(newMemStore(), logging.NewLogger(true))
	userID := user.ID(bson.NewObjectID().Hex())

	req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewBufferString("{not json"))
	req = req.WithContext(context.WithValue(req.Context(), auth.UserIDContextKey, userID))
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
