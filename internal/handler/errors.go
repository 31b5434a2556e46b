package handler

import "errors"

var (
	errNotAuthorized = errors.New("user is not authorized")
	errNoAccess      = errors.New("no access")
	errInvalidPostID = errors.New("invalid post ID")
	errCSRFFailed    = errors.New("CSRF token missing or incorrect")
	errNoBearerToken = errors.New("bearer token required")
)
