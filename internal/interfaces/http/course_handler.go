package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/learnhub/learnhub/internal/domain"
	"github.com/learnhub/learnhub/internal/infrastructure/auth"
)

// CourseHandler course lesson list and resume endpoints
type CourseHandler struct {
	courseUseCase domain.CourseUseCase
	jwtUtil       *auth.JWTUtil
}

func NewCourseHandler(CourseUseCase domain.CourseUseCase, JWTUtil *auth.JWTUtil) *CourseHandler {
	handler := &CourseHandler{CourseUseCase, JWTUtil}
	return handler
}

// HandleGetCourseLessons flattened lesson list with the caller's watch state
// and unlock decisions
func (ch *CourseHandler) HandleGetCourseLessons(c echo.Context) (err error) {
	ju := ch.jwtUtil

	claims := ju.GetContextToken(c)
	user := new(domain.UserModel)
	user.ID = claims.UID

	lessons, err := ch.courseUseCase.GetCourseLessons(c.Request().Context(), user, c.Param("course_id"))
	if err != nil {
		if err == domain.ErrNoSuchCourse {
			return c.JSON(http.StatusNotFound, NewRESTStandardError(http.StatusNotFound, err.Error()))
		}
		return err
	}
	return c.JSON(http.StatusOK, lessons)
}

// HandleGetResumeLesson where the learner should pick the course back up
func (ch *CourseHandler) HandleGetResumeLesson(c echo.Context) (err error) {
	ju := ch.jwtUtil

	claims := ju.GetContextToken(c)
	user := new(domain.UserModel)
	user.ID = claims.UID

	resume, err := ch.courseUseCase.GetResumeLesson(c.Request().Context(), user, c.Param("course_id"))
	if err != nil {
		if err == domain.ErrNoSuchCourse {
			return c.JSON(http.StatusNotFound, NewRESTStandardError(http.StatusNotFound, err.Error()))
		}
		return err
	}
	if resume == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, resume)
}
