// file: internals/features/registrations/service/errors.go
package service

import (
	"errors"
	"net/http"
)

// Kind adalah taksonomi error inti registrasi. Controller memetakan Kind → HTTP.
type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindForbidden     Kind = "forbidden"
	KindValidation    Kind = "validation_failed"
	KindWindowNotOpen Kind = "window_not_open"
	KindWindowClosed  Kind = "window_closed"
	KindConflict      Kind = "conflict"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindWindowNotOpen, KindWindowClosed:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errNotFound(msg string) error      { return &Error{Kind: KindNotFound, Message: msg} }
func errForbidden(msg string) error     { return &Error{Kind: KindForbidden, Message: msg} }
func errValidation(msg string) error    { return &Error{Kind: KindValidation, Message: msg} }
func errWindowNotOpen(msg string) error { return &Error{Kind: KindWindowNotOpen, Message: msg} }
func errWindowClosed(msg string) error  { return &Error{Kind: KindWindowClosed, Message: msg} }
func errConflict(msg string) error      { return &Error{Kind: KindConflict, Message: msg} }

// AsError meng-unwrap *Error; dipakai controller untuk memetakan status.
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
