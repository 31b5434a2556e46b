package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInternal           = errors.New("internal server error")
	ErrPostNotFound       = errors.New("post not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrAuthorNotFound     = errors.New("author not found")
	ErrNotPostAuthor      = errors.New("user is not the author of the post")
	ErrEmptyText          = errors.New("text must not be empty")
	ErrUnknownGroup       = errors.New("selected group does not exist")
	ErrGroupSlugTaken     = errors.New("group with this slug already exists")
	ErrInvalidSlug        = errors.New("slug may contain only latin letters, digits, hyphens and underscores")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidUsername    = errors.New("username may contain only letters, digits and @/./+/-/_ characters")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError carries per-field input errors.
type ValidationError struct {
	Fields map[string]error
}

func (e *ValidationError) add(field string, err error) {
	if e.Fields == nil {
		e.Fields = make(map[string]error)
	}
	e.Fields[field] = err
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Fields[field].Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
