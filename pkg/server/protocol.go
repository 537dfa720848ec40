package server

import (
	"github.com/vango-dev/formkit/internal/errors"
	"github.com/vango-dev/formkit/pkg/features/form"
)

// Client message types.
const (
	EventInput  = "input"
	EventChange = "change"
	EventBlur   = "blur"
	EventSubmit = "submit"
	EventReset  = "reset"

	// EventSet writes Values without going through a rendered handler.
	EventSet = "set"
)

// Server message types.
const (
	MessageRender = "render"
	MessageError  = "error"
)

// ClientMessage is a browser event.
type ClientMessage struct {
	Type string `json:"type"`

	// HID is the handler id of the element that fired the event.
	HID string `json:"hid,omitempty"`

	// Value is the element value for input and change.
	Value any `json:"value,omitempty"`

	// Values are written by EventSet.
	Values form.Values `json:"values,omitempty"`
}

// ServerMessage answers every client message.
type ServerMessage struct {
	Type string `json:"type"`

	// Seq counts messages sent on the connection, starting at 1.
	Seq uint64 `json:"seq"`

	// HTML is the rendered form for MessageRender.
	HTML string `json:"html,omitempty"`

	// Errors are the current field errors.
	Errors form.Errors `json:"errors,omitempty"`

	// Valid reports whether no field has an error.
	Valid bool `json:"valid"`

	// Outcome is set on the reply to a submit.
	Outcome string `json:"outcome,omitempty"`

	// Code and Message describe a MessageError.
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// errorMessage builds a MessageError from a registered error code.
func errorMessage(code, detail string) ServerMessage {
	msg := ServerMessage{Type: MessageError, Code: code, Message: detail}
	if tmpl, ok := errors.GetTemplate(code); ok {
		msg.Message = tmpl.Message + ": " + detail
	}
	return msg
}
