package errorx

import (
	"errors"
	"fmt"
	"net/http"
)

type Code int

const (
	NotFound        Code = 100001
	SelfReference   Code = 100002
	Validation      Code = 100003
	Forbidden       Code = 100004
	Conflict        Code = 100005
	Unauthenticated Code = 100006
	Internal        Code = 100007
)

var codeNames = map[Code]string{
	NotFound:        "not_found",
	SelfReference:   "self_reference",
	Validation:      "validation",
	Forbidden:       "forbidden",
	Conflict:        "conflict",
	Unauthenticated: "unauthenticated",
	Internal:        "internal",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// HTTPStatus maps an error kind onto the status the API layer renders.
func (c Code) HTTPStatus() int {
	switch c {
	case NotFound:
		return http.StatusNotFound
	case SelfReference, Validation:
		return http.StatusBadRequest
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	case Unauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Code    Code
	Message string
}

func (e Error) Error() string {
	return e.Message
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

// Unknown is returned when a store failure must not leak to the caller.
var Unknown = Error{Code: Internal, Message: "Request failed"}

// As extracts an errorx.Error from err's chain.
func As(err error) (Error, bool) {
	var e Error
	if errors.As(err, &e) {
		return e, true
	}
	return Error{}, false
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
