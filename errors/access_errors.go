// errors/access_errors.go
package errors

import "errors"

var (
	ErrDuplicatePermissionID = errors.New("duplicate permission id in catalog")
	ErrInvalidPermissionData = errors.New("invalid permission data")
	ErrPermissionNotFound    = errors.New("permission not found")

	ErrProfileNotFound      = errors.New("permission profile not found")
	ErrInvalidAccessRequest = errors.New("invalid access request")

	ErrDatabaseOperation = errors.New("database operation failed")
	ErrInternalServer    = errors.New("internal server error")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)
