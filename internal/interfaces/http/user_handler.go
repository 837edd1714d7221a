package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/learnhub/learnhub/internal/domain"
	"github.com/learnhub/learnhub/internal/infrastructure/auth"
	"github.com/learnhub/learnhub/internal/infrastructure/driver"
	"github.com/learnhub/learnhub/internal/infrastructure/validate"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler user related operations
type UserHandler struct {
	JWTUtil        *auth.JWTUtil
	UserRepository domain.UserRepository
	KVStore        driver.KeyValueDB
	UserUseCase    domain.UserUseCase
	Validator      validate.Validator
	MaximumRetry   int
}

// NewUserHandler create an user controller instance
func NewUserHandler(
	JWTUtil *auth.JWTUtil,
	UserRepository domain.UserRepository,
	KVStore driver.KeyValueDB,
	UserUseCase domain.UserUseCase,
	MaximumRetry int,
	Validator validate.Validator,
) *UserHandler {
	handler := &UserHandler{
		JWTUtil:        JWTUtil,
		UserUseCase:    UserUseCase,
		Validator:      Validator,
		KVStore:        KVStore,
		UserRepository: UserRepository,
		MaximumRetry:   MaximumRetry,
	}
	return handler
}

// HandleSignIn ...
func (uh *UserHandler) HandleSignIn(c echo.Context) (err error) {
	ju := uh.JWTUtil
	repo := uh.UserRepository

	// parse body
	post := new(domain.UserModel)
	if err = c.Bind(&post); err != nil {
		internal := err.(*echo.HTTPError).Internal
		return c.JSON(http.StatusUnprocessableEntity,
			NewRESTStandardError(http.StatusUnprocessableEntity, internal.Error()))
	}
	post.Email = post.Username

	ctx := c.Request().Context()
	user, err := repo.FindByCredential(ctx, post)
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(http.StatusUnauthorized, NewRESTStandardError(http.StatusUnauthorized, domain.ErrNoSuchUser.Error()))
	}
	if user.LoginRetry >= uh.MaximumRetry {
		return c.JSON(http.StatusForbidden, NewRESTStandardError(http.StatusForbidden, domain.ErrUserTooManyRetry.Error()))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(post.Password)); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			user.LoginRetry++
			repo.UpdateUser(ctx, user)
			return c.JSON(http.StatusUnauthorized, NewRESTStandardError(http.StatusUnauthorized, domain.ErrNoSuchUser.Error()))
		}
		return err
	}

	// reset retry number
	user.LoginRetry = 0
	if err := repo.UpdateUser(ctx, user); err != nil {
		return err
	}
	// issue JWT
	tokenStr, err := ju.GenerateTokenStr(user)
	if err != nil {
		return err
	}
	ju.SetClientToken(c, tokenStr)
	return nil
}

// HandleSignUp ...
func (uh *UserHandler) HandleSignUp(c echo.Context) (err error) {
	UserUseCase := uh.UserUseCase
	post := new(domain.UserModel)

	if err = c.Bind(&post); err != nil {
		internal := err.(*echo.HTTPError).Internal
		return c.JSON(http.StatusUnprocessableEntity,
			NewRESTStandardError(http.StatusUnprocessableEntity, internal.Error()))
	}

	// validation
	if err := uh.Validator.Struct(post); err != nil {
		return c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "Failed to validate fields", err))
	}

	// hash password
	if password, err := bcrypt.GenerateFromPassword([]byte(post.Password), bcrypt.MinCost); err == nil {
		post.Password = string(password)
	} else {
		return c.JSON(http.StatusUnprocessableEntity,
			NewRESTStandardError(http.StatusUnprocessableEntity, "Failed to create user"))
	}

	// register
	_, err = UserUseCase.SignUp(c.Request().Context(), post)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicatedUser) {
			return c.JSON(http.StatusConflict, NewRESTStandardError(http.StatusConflict, err.Error()))
		}
		return err
	}
	return
}

// HandleSignOut ...
func (uh *UserHandler) HandleSignOut(c echo.Context) (err error) {
	ju := uh.JWTUtil
	kv := uh.KVStore

	if tokenStr, err := ju.ExtractToken(c); err == nil {
		if token, err := ju.Validate(tokenStr); err == nil {
			ju.ClearClientToken(c)
			return kv.SetEX(tokenStr, "", token.TimeRemaining())
		}
		return c.NoContent(http.StatusUnauthorized)
	}
	return nil
}

// HandleUserExists ...
func (uh *UserHandler) HandleUserExists(c echo.Context) (err error) {
	UserUseCase := uh.UserUseCase
	post := new(domain.UserModel)
	post.Username = c.QueryParam("username")
	post.Email = c.QueryParam("email")

	if err := uh.Validator.AllEmpty([]string{"username", "email"}, post.Username, post.Email); err != nil {
		return c.JSON(http.StatusBadRequest, NewRESTValidationError(http.StatusBadRequest, "Failed to validate params", []*validate.FieldError{err}))
	}

	existing, err := UserUseCase.Exists(c.Request().Context(), post)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, existing)
}
