package core

import (
	"errors"
	"fmt"
	"log"
)

type Signal any

type MessageSignal struct {
	message string
}

func (m MessageSignal) Value() string {
	return m.message
}

type ErrorSignal Error

func (e ErrorSignal) Value() (id ErrorId, err error) {
	return e.id, e.err
}

// Message returns the text shown to the user for the failure.
func (e ErrorSignal) Message() string {
	switch e.id {
	case ErrCopyFailedId:
		return CopyFailedMessage
	case ErrReloadFailedId:
		return fmt.Sprintf("%s: %v", ReloadFailedMessage, e.err)
	}
	return e.err.Error()
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(message string)
	Failure(message string)
}

// ErrorDispatcher is implemented by notifiers that forward failures along
// with their ErrorId.
type ErrorDispatcher interface {
	DispatchError(id ErrorId, err error)
}

// SignalNotifier dispatches notifications as signals on a buffered channel
// for a UI to consume. Dispatching never blocks.
type SignalNotifier struct {
	updateSignal chan Signal
}

func NewSignalNotifier(size int) *SignalNotifier {
	return &SignalNotifier{updateSignal: make(chan Signal, max(1, size))}
}

func (n *SignalNotifier) Success(message string) {
	n.DispatchSignal(MessageSignal{message})
}

func (n *SignalNotifier) Failure(message string) {
	n.DispatchError(ErrNotificationId, errors.New(message))
}

func (n *SignalNotifier) DispatchError(id ErrorId, err error) {
	n.DispatchSignal(ErrorSignal{id: id, err: err})
}

func (n *SignalNotifier) DispatchSignal(signal Signal) {
	select {
	case n.updateSignal <- signal:
	default:
		log.Println("Channel is full, unable to send notification signal")
	}
}

func (n *SignalNotifier) GetUpdateSignalChan() <-chan Signal {
	return n.updateSignal
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}

func (NopNotifier) Failure(string) {}
