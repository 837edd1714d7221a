package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/learnhub/learnhub/internal/domain"
	"github.com/learnhub/learnhub/internal/infrastructure/auth"
	"github.com/learnhub/learnhub/internal/infrastructure/validate"
)

type StatsHandler struct {
	statsUseCase domain.StatsUseCase
	validator    validate.Validator
	jwtUtil      *auth.JWTUtil
}

func NewStatsHandler(
	StatsUseCase domain.StatsUseCase,
	JWTUtil *auth.JWTUtil,
	Validator validate.Validator,
) *StatsHandler {
	handler := &StatsHandler{StatsUseCase, Validator, JWTUtil}
	return handler
}

func (sh *StatsHandler) HandleGetWatchTime(c echo.Context) (err error) {
	su := sh.statsUseCase
	ju := sh.jwtUtil
	ts := c.QueryParam("ts")
	claims := ju.GetContextToken(c)
	user := new(domain.UserModel)
	user.ID = claims.UID

	// validation
	if err := sh.validator.Empty("ts", ts); err != nil {
		return c.JSON(http.StatusBadRequest, NewRESTValidationError(http.StatusBadRequest, "Failed to validate params", err))
	}
	at, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewRESTValidationError(http.StatusBadRequest, "Failed to validate params", []*validate.FieldError{{
			Domain: "ts",
			Reason: fmt.Sprintf("ts must be in RFC3339 layout, %s", err.Error()),
		}}))
	}

	watchTime, err := su.GetUserWatchTime(c.Request().Context(), user, &at)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, watchTime)
}
