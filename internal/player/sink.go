package player

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/learnhub/learnhub/internal/domain"
)

// Session caller identity for the client kit. Created on login, destroyed on
// logout, passed explicitly instead of living in package state.
type Session struct {
	TokenName string
	Token     string
}

// Sink receiving end of the cache's write-back pushes
type Sink interface {
	Push(ctx context.Context, record *domain.ProgressModel) error
	Fetch(ctx context.Context) ([]*domain.ProgressModel, error)
}

// APIClient Sink implementation over the progress HTTP endpoints
type APIClient struct {
	baseURL string
	session *Session
	client  *http.Client
}

var _ Sink = &APIClient{}

// NewAPIClient create a progress API client. client may be nil, in which case
// http.DefaultClient is used.
func NewAPIClient(baseURL string, session *Session, client *http.Client) *APIClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &APIClient{
		baseURL: baseURL,
		session: session,
		client:  client,
	}
}

// Push upsert one record through the write endpoint
func (ac *APIClient) Push(ctx context.Context, record *domain.ProgressModel) error {
	body, err := json.Marshal(record)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ac.baseURL+"/api/v1/progress", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	ac.attachSession(req)

	res, err := ac.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("push progress: unexpected status %d", res.StatusCode)
	}
	return nil
}

// Fetch read all records of the session owner through the read-all endpoint
func (ac *APIClient) Fetch(ctx context.Context) ([]*domain.ProgressModel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ac.baseURL+"/api/v1/progress", nil)
	if err != nil {
		return nil, err
	}
	ac.attachSession(req)

	res, err := ac.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch progress: unexpected status %d", res.StatusCode)
	}

	var records []*domain.ProgressModel
	if err := json.NewDecoder(res.Body).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func (ac *APIClient) attachSession(req *http.Request) {
	if ac.session != nil {
		req.AddCookie(&http.Cookie{Name: ac.session.TokenName, Value: ac.session.Token})
	}
}
