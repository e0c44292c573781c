package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidRole        = errors.New("role must be admin, hr or employee")
	ErrInvalidStatus      = errors.New("invalid employment status")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrUnauthorized       = errors.New("unauthorized to access this employee")
)
