package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/learnhub/learnhub/internal/domain"
	"github.com/learnhub/learnhub/internal/infrastructure/auth"
	"github.com/learnhub/learnhub/internal/infrastructure/validate"
)

// ProgressHandler watch-progress endpoints
type ProgressHandler struct {
	progressUseCase domain.ProgressUseCase
	jwtUtil         *auth.JWTUtil
	validator       validate.Validator
}

func NewProgressHandler(
	ProgressUseCase domain.ProgressUseCase,
	JWTUtil *auth.JWTUtil,
	Validator validate.Validator,
) *ProgressHandler {
	handler := &ProgressHandler{ProgressUseCase, JWTUtil, Validator}
	return handler
}

// HandleSaveProgress upsert the caller's watch state for one lesson. Every
// playback sample that triggers a save lands here, there is no batching.
func (ph *ProgressHandler) HandleSaveProgress(c echo.Context) (err error) {
	ju := ph.jwtUtil

	post := new(domain.ProgressModel)
	if err = c.Bind(&post); err != nil {
		internal := err.(*echo.HTTPError).Internal
		return c.JSON(http.StatusUnprocessableEntity,
			NewRESTStandardError(http.StatusUnprocessableEntity, internal.Error()))
	}

	// validation
	if err := ph.validator.Struct(post); err != nil {
		return c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "Failed to validate fields", err))
	}

	claims := ju.GetContextToken(c)
	user := new(domain.UserModel)
	user.ID = claims.UID

	record, err := ph.progressUseCase.SaveProgress(c.Request().Context(), user, post)
	if err != nil {
		if err == domain.ErrProgressKeyRequired {
			return c.JSON(http.StatusBadRequest, NewRESTStandardError(http.StatusBadRequest, err.Error()))
		}
		if err == domain.ErrProgressConflict {
			return c.JSON(http.StatusConflict, NewRESTStandardError(http.StatusConflict, err.Error()))
		}
		return err
	}
	return c.JSON(http.StatusOK, record)
}

// HandleGetLessonProgress point read, answers the zero-value default when the
// learner has no progress yet
func (ph *ProgressHandler) HandleGetLessonProgress(c echo.Context) (err error) {
	ju := ph.jwtUtil
	lessonID := c.Param("lesson_id")

	if err := ph.validator.Empty("lesson_id", lessonID); err != nil {
		return c.JSON(http.StatusBadRequest, NewRESTValidationError(http.StatusBadRequest, "Failed to validate params", err))
	}

	claims := ju.GetContextToken(c)
	user := new(domain.UserModel)
	user.ID = claims.UID

	record, err := ph.progressUseCase.GetLessonProgress(c.Request().Context(), user, lessonID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

// HandleGetUserProgress all records of the caller, no guaranteed order
func (ph *ProgressHandler) HandleGetUserProgress(c echo.Context) (err error) {
	ju := ph.jwtUtil

	claims := ju.GetContextToken(c)
	user := new(domain.UserModel)
	user.ID = claims.UID

	records, err := ph.progressUseCase.GetUserProgress(c.Request().Context(), user)
	if err != nil {
		return err
	}
	if records == nil {
		records = []*domain.ProgressModel{}
	}
	return c.JSON(http.StatusOK, records)
}
