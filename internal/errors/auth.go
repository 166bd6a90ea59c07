package errors

import "net/http"

var ErrDuplicateUser = &Exception{
	Message:    "a user with this email already exists",
	StatusCode: http.StatusConflict,
}

var ErrInvalidCredentials = &Exception{
	Message:    "invalid email or password",
	StatusCode: http.StatusUnauthorized,
}

var ErrSessionExpired = &Exception{
	Message:    "session is expired or invalid",
	StatusCode: http.StatusUnauthorized,
}
