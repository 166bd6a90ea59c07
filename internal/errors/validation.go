package errors

import "net/http"

var ErrTitleRequired = &Exception{
	Message:    "title is required",
	StatusCode: http.StatusBadRequest,
}

var ErrTitleTooLong = &Exception{
	Message:    "title must be at most 100 characters",
	StatusCode: http.StatusBadRequest,
}

var ErrDescriptionTooLong = &Exception{
	Message:    "description must be at most 500 characters",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidPriority = &Exception{
	Message:    "priority must be one of low, medium, high",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidStatus = &Exception{
	Message:    "status must be one of todo, in_progress, completed",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidEmail = &Exception{
	Message:    "invalid email address",
	StatusCode: http.StatusBadRequest,
}

var ErrPasswordTooShort = &Exception{
	Message:    "password must be at least 6 characters",
	StatusCode: http.StatusBadRequest,
}
