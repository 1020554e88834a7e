package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lingolink/avatar"
	"lingolink/chat"
	"lingolink/config"
	"lingolink/models"
)

const testAvatarURL = "https://example.com/avatar.png"

type noopUpserter struct{}

func (noopUpserter) UpsertIdentity(ctx context.Context, id chat.Identity) error { return nil }

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Environment:  "test",
		JWTSecret:    "test-secret",
		StreamKey:    "stream-key",
		StreamSecret: "stream-secret",
	}

	chatClient, err := chat.NewClient(cfg.StreamKey, cfg.StreamSecret)
	require.NoError(t, err)

	syncer := chat.NewSyncer(noopUpserter{}, zap.NewNop())
	go syncer.Run()
	t.Cleanup(syncer.Close)

	h := New(db, cfg, zap.NewNop(), avatar.Fixed(testAvatarURL), chatClient, syncer)
	return h, mock
}

// asUser stands in for the auth middleware in handler tests.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

func testUser(id string) *models.User {
	return &models.User{
		ID:          id,
		Email:       id + "@example.com",
		FullName:    "User " + id,
		Avatar:      testAvatarURL,
		IsOnboarded: true,
		CreatedAt:   time.Now(),
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "jwt" {
			return c
		}
	}
	return nil
}

func userRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "full_name", "avatar", "bio", "native_language",
		"learning_language", "location", "is_onboarded", "created_at",
	})
}

func edgeWithUserRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "requester_id", "status", "created_at", "updated_at",
		"u_id", "email", "full_name", "avatar", "bio", "native_language",
		"learning_language", "location", "is_onboarded", "created_at",
	})
}
