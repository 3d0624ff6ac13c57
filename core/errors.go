package core

import (
	"errors"
	"fmt"
)

var (
	ErrHighlightFailed = errors.New("syntax highlighting failed")
	ErrCopyFailed      = errors.New("failed to copy code")
)

type ErrorId int

const (
	ErrHighlightFailedId ErrorId = iota
	ErrCopyFailedId
	ErrReloadFailedId
	// ErrNotificationId marks failures reported by message only.
	ErrNotificationId
)

func (id ErrorId) String() string {
	switch id {
	case ErrHighlightFailedId:
		return "highlight"
	case ErrCopyFailedId:
		return "copy"
	case ErrReloadFailedId:
		return "reload"
	case ErrNotificationId:
		return "notification"
	}
	return fmt.Sprintf("error(%d)", int(id))
}

type Error struct {
	id  ErrorId
	err error
}

func NewError(id ErrorId, err error) *Error {
	return &Error{id: id, err: err}
}

func (e *Error) ID() ErrorId {
	return e.id
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %v", e.id, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}
