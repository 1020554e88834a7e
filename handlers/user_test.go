package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingolink/models"
)

func userRouter(h *Handler, userID string) *gin.Engine {
	r := gin.New()
	grp := r.Group("/api/users", asUser(testUser(userID)))
	grp.GET("", h.GetRecommendedUsers)
	grp.GET("/friends", h.GetFriends)
	return r
}

func TestGetRecommendedUsersExcludesEdges(t *testing.T) {
	h, mock := newTestHandler(t)
	r := userRouter(h, "u1")

	now := time.Now()
	mock.ExpectQuery("NOT EXISTS").
		WithArgs("u1", "u1", "u1").
		WillReturnRows(userRow().
			AddRow("u3", "u3@example.com", "Carol", testAvatarURL, "hi", "german", "english", "Berlin", true, now).
			AddRow("u4", "u4@example.com", "Dave", testAvatarURL, "hi", "italian", "english", "Rome", true, now))

	w := doJSON(t, r, http.MethodGet, "/api/users", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var users []models.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "Carol", users[0].FullName)
	assert.Equal(t, "Dave", users[1].FullName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecommendedUsersEmpty(t *testing.T) {
	h, mock := newTestHandler(t)
	r := userRouter(h, "u1")

	mock.ExpectQuery("NOT EXISTS").
		WithArgs("u1", "u1", "u1").
		WillReturnRows(userRow())

	w := doJSON(t, r, http.MethodGet, "/api/users", nil)

	require.Equal(t, http.StatusOK, w.Code)
	// an empty list, never null
	assert.Equal(t, "[]", w.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFriends(t *testing.T) {
	h, mock := newTestHandler(t)
	r := userRouter(h, "u1")

	now := time.Now()
	mock.ExpectQuery("e.status = 'accepted'").
		WithArgs("u1", "u1", "u1").
		WillReturnRows(userRow().
			AddRow("u2", "u2@example.com", "Bob", testAvatarURL, "hi", "french", "english", "Paris", true, now))

	w := doJSON(t, r, http.MethodGet, "/api/users/friends", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var friends []models.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &friends))
	require.Len(t, friends, 1)
	assert.Equal(t, "u2", friends[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStreamToken(t *testing.T) {
	h, _ := newTestHandler(t)
	r := gin.New()
	r.GET("/api/chat/token", asUser(testUser("u1")), h.GetStreamToken)

	w := doJSON(t, r, http.MethodGet, "/api/chat/token", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
}
