package player

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/learnhub/learnhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClientPush(t *testing.T) {
	var got domain.ProgressModel
	var cookie *http.Cookie
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/progress", r.URL.Path)
		cookie, _ = r.Cookie("app_token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, &Session{TokenName: "app_token", Token: "tok"}, nil)
	err := client.Push(context.Background(), &domain.ProgressModel{
		LessonID:       "l1",
		LessonTitle:    "Intro",
		WatchedSeconds: 42,
	})

	require.NoError(t, err)
	assert.Equal(t, "l1", got.LessonID)
	assert.Equal(t, float64(42), got.WatchedSeconds)
	require.NotNil(t, cookie)
	assert.Equal(t, "tok", cookie.Value)
}

func TestAPIClientPushRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, nil, nil)
	err := client.Push(context.Background(), &domain.ProgressModel{LessonID: "l1"})

	assert.Error(t, err)
}

func TestAPIClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode([]*domain.ProgressModel{
			{LessonID: "l1", WatchedSeconds: 30},
			{LessonID: "l2", WatchedSeconds: 600, Completed: true},
		})
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, &Session{TokenName: "app_token", Token: "tok"}, nil)
	records, err := client.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[1].Completed)
}
