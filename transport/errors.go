// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package transport

import (
	"errors"
	"fmt"
)

// Kind classifies a failed backend interaction. Callers branch on Kind
// instead of inspecting status codes or error strings.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not-found"
	KindConflict     Kind = "conflict"
	KindTimeout      Kind = "timeout"
	KindNetwork      Kind = "network"
	KindServer       Kind = "server"
)

// Error is the normalized failure returned by every transport call.
// Message is the server-provided human-readable message when one exists,
// otherwise a generic description. Status is 0 for timeout/network errors
// where no response was received.
type Error struct {
	Kind    Kind
	Message string
	Status  int
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsKind reports whether err is a transport Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == kind
}

// KindOf returns the kind of a transport error, or KindServer for
// anything unrecognized.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindServer
}

// Message returns the human-readable message of a transport error, or the
// plain error text for anything else.
func Message(err error) string {
	var te *Error
	if errors.As(err, &te) {
		return te.Message
	}
	return err.Error()
}
