package apperror

import "net/http"

// Access control
var (
	ErrUnauthenticated = New(http.StatusUnauthorized, "please login to access this resource", ErrUnauthorized)
	ErrInvalidToken    = New(http.StatusUnauthorized, "invalid or expired token", ErrUnauthorized)
	ErrNotOwner        = New(http.StatusForbidden, "you do not own this resource", ErrForbidden)
	ErrRoleNotAllowed  = New(http.StatusForbidden, "your role cannot perform this action", ErrForbidden)
)

// Identity
var (
	ErrMissingField       = New(http.StatusBadRequest, "please fill all the fields", ErrInvalidInput)
	ErrDuplicateUser      = New(http.StatusBadRequest, "user already exists with this email", ErrConflict)
	ErrInvalidCredentials = New(http.StatusBadRequest, "incorrect email, password or role", ErrUnauthorized)
	ErrUserNotFound       = New(http.StatusNotFound, "user not found", ErrNotFound)
)

// Companies
var (
	ErrMissingName      = New(http.StatusBadRequest, "company name is required", ErrInvalidInput)
	ErrDuplicateCompany = New(http.StatusBadRequest, "company already exists", ErrConflict)
	ErrCompanyNotFound  = New(http.StatusNotFound, "company not found", ErrNotFound)
)

// Jobs
var (
	ErrMissingJobID = New(http.StatusBadRequest, "job id is required", ErrInvalidInput)
	ErrJobNotFound  = New(http.StatusNotFound, "job not found", ErrNotFound)
	ErrNoJobsFound  = New(http.StatusNotFound, "no jobs found", ErrNotFound)

	ErrSearchUnavailable = New(http.StatusServiceUnavailable, "job search is unavailable right now", ErrInternal)
)

// Applications
var (
	ErrDuplicateApplication = New(http.StatusBadRequest, "you have already applied for this job", ErrConflict)
	ErrApplicationNotFound  = New(http.StatusNotFound, "application not found", ErrNotFound)
	ErrStatusRequired       = New(http.StatusBadRequest, "status is required", ErrInvalidInput)
	ErrInvalidStatus        = New(http.StatusBadRequest, "status must be one of pending, accepted, rejected", ErrInvalidInput)
)

// Notifications
var (
	ErrNotificationNotFound = New(http.StatusNotFound, "notification not found", ErrNotFound)
)
