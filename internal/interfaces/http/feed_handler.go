package http

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/learnhub/learnhub/internal/domain"
	"github.com/learnhub/learnhub/internal/infrastructure/auth"
)

// FeedHandler live progress feed over websocket. The client sends a lesson id
// as a text message and receives the caller's current record for it, so an
// open dashboard can poll watch state without re-issuing HTTP reads.
type FeedHandler struct {
	progressUseCase domain.ProgressUseCase
	jwtUtil         *auth.JWTUtil
}

func NewFeedHandler(ProgressUseCase domain.ProgressUseCase, JWTUtil *auth.JWTUtil) *FeedHandler {
	return &FeedHandler{ProgressUseCase, JWTUtil}
}

// HandleProgressFeed one request/response exchange, the heartbeat wrapper
// loops it until the connection drops
func (fh *FeedHandler) HandleProgressFeed(c echo.Context, conn *websocket.Conn) error {
	claims := fh.jwtUtil.GetContextToken(c)
	if claims == nil {
		return conn.WriteControl(websocket.CloseMessage, nil, time.Now().Add(time.Second))
	}
	user := new(domain.UserModel)
	user.ID = claims.UID

	_, message, err := conn.ReadMessage()
	if err != nil {
		return err
	}
	// the upgrade request finished when goroutines took over, its context is
	// already cancelled
	record, err := fh.progressUseCase.GetLessonProgress(context.Background(), user, string(message))
	if err != nil {
		return err
	}
	return conn.WriteJSON(record)
}
