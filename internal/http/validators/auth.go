package validators

import (
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
)

const minPasswordLength = 6

type SignUpFields struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
}

func ValidateSignUp(r SignUpFields) error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email address")
	}
	if len(r.Password) < minPasswordLength {
		return echo.NewHTTPError(http.StatusBadRequest, "password must be at least 6 characters")
	}
	if r.Password != r.ConfirmPassword {
		return echo.NewHTTPError(http.StatusBadRequest, "passwords do not match")
	}
	if len(r.FullName) < 2 {
		return echo.NewHTTPError(http.StatusBadRequest, "full name must be at least 2 characters")
	}
	return nil
}

type SignInFields struct {
	Email    string
	Password string
}

func ValidateSignIn(r SignInFields) error {
	if r.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	if r.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	return nil
}
