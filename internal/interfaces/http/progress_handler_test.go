package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/learnhub/learnhub/internal/domain"
	"github.com/learnhub/learnhub/internal/infrastructure/auth"
	"github.com/learnhub/learnhub/internal/infrastructure/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProgressUseCase captures the call and answers a canned record
type fakeProgressUseCase struct {
	saved   *domain.ProgressModel
	user    *domain.UserModel
	records []*domain.ProgressModel
	err     error
}

func (f *fakeProgressUseCase) SaveProgress(ctx context.Context, user *domain.UserModel, post *domain.ProgressModel) (*domain.ProgressModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.user = user
	f.saved = post
	post.UserID = user.ID
	return post, nil
}

func (f *fakeProgressUseCase) GetLessonProgress(ctx context.Context, user *domain.UserModel, lessonID string) (*domain.ProgressModel, error) {
	f.user = user
	for _, record := range f.records {
		if record.LessonID == lessonID {
			return record, nil
		}
	}
	return domain.ZeroProgress(user, lessonID), nil
}

func (f *fakeProgressUseCase) GetUserProgress(ctx context.Context, user *domain.UserModel) ([]*domain.ProgressModel, error) {
	f.user = user
	return f.records, nil
}

func newTestJWTUtil() *auth.JWTUtil {
	return auth.NewJWTUtil("HS256", "test-secret", "app_token", time.Hour)
}

func newProgressContext(t *testing.T, ju *auth.JWTUtil, method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	ju.SetContextToken(c, &auth.AppTokenClaims{UID: "u1", Name: "learner"})
	return c, rec
}

func TestHandleSaveProgress(t *testing.T) {
	uc := &fakeProgressUseCase{}
	ju := newTestJWTUtil()
	handler := NewProgressHandler(uc, ju, validate.NewValidator())

	c, rec := newProgressContext(t, ju, http.MethodPost, "/api/v1/progress",
		`{"lesson_id":"l1","lesson_title":"Intro","watched_seconds":42.5}`)

	require.NoError(t, handler.HandleSaveProgress(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", uc.user.ID)
	assert.Equal(t, float64(42.5), uc.saved.WatchedSeconds)

	var got domain.ProgressModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "l1", got.LessonID)
	assert.Equal(t, "Intro", got.LessonTitle)
}

func TestHandleSaveProgressMissingLessonID(t *testing.T) {
	ju := newTestJWTUtil()
	handler := NewProgressHandler(&fakeProgressUseCase{}, ju, validate.NewValidator())

	c, rec := newProgressContext(t, ju, http.MethodPost, "/api/v1/progress",
		`{"lesson_title":"Intro","watched_seconds":10}`)

	require.NoError(t, handler.HandleSaveProgress(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSaveProgressNegativeSeconds(t *testing.T) {
	ju := newTestJWTUtil()
	handler := NewProgressHandler(&fakeProgressUseCase{}, ju, validate.NewValidator())

	c, rec := newProgressContext(t, ju, http.MethodPost, "/api/v1/progress",
		`{"lesson_id":"l1","watched_seconds":-5}`)

	require.NoError(t, handler.HandleSaveProgress(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSaveProgressMalformedBody(t *testing.T) {
	ju := newTestJWTUtil()
	handler := NewProgressHandler(&fakeProgressUseCase{}, ju, validate.NewValidator())

	c, rec := newProgressContext(t, ju, http.MethodPost, "/api/v1/progress",
		`{"lesson_id":`)

	require.NoError(t, handler.HandleSaveProgress(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleSaveProgressConflict(t *testing.T) {
	ju := newTestJWTUtil()
	uc := &fakeProgressUseCase{err: domain.ErrProgressConflict}
	handler := NewProgressHandler(uc, ju, validate.NewValidator())

	c, rec := newProgressContext(t, ju, http.MethodPost, "/api/v1/progress",
		`{"lesson_id":"l1","watched_seconds":10}`)

	require.NoError(t, handler.HandleSaveProgress(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleGetLessonProgressZeroDefault(t *testing.T) {
	ju := newTestJWTUtil()
	handler := NewProgressHandler(&fakeProgressUseCase{}, ju, validate.NewValidator())

	c, rec := newProgressContext(t, ju, http.MethodGet, "/api/v1/progress/l9", "")
	c.SetParamNames("lesson_id")
	c.SetParamValues("l9")

	require.NoError(t, handler.HandleGetLessonProgress(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got domain.ProgressModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "l9", got.LessonID)
	assert.Equal(t, float64(0), got.WatchedSeconds)
	assert.False(t, got.Completed)
}

func TestHandleGetLessonProgressEmptyParam(t *testing.T) {
	ju := newTestJWTUtil()
	handler := NewProgressHandler(&fakeProgressUseCase{}, ju, validate.NewValidator())

	c, rec := newProgressContext(t, ju, http.MethodGet, "/api/v1/progress/", "")
	c.SetParamNames("lesson_id")
	c.SetParamValues("")

	require.NoError(t, handler.HandleGetLessonProgress(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetUserProgressEmptySlice(t *testing.T) {
	ju := newTestJWTUtil()
	handler := NewProgressHandler(&fakeProgressUseCase{}, ju, validate.NewValidator())

	c, rec := newProgressContext(t, ju, http.MethodGet, "/api/v1/progress", "")

	require.NoError(t, handler.HandleGetUserProgress(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
