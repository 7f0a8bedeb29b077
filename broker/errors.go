// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package broker

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a launch failure.
type Kind int

const (
	// KindInvalidRequest: the request is incomplete or its identity does
	// not suit the configured switcher. Retrying the same request fails
	// the same way.
	KindInvalidRequest Kind = iota + 1

	// KindResourceExhaustion: the host ran out of pipes, descriptors,
	// or memory. Retrying later may succeed.
	KindResourceExhaustion

	// KindSecurityConfiguration: the broker could not restrict handle
	// inheritance or build the process access descriptor.
	KindSecurityConfiguration

	// KindAuthentication: the host rejected the credentials.
	KindAuthentication

	// KindProcessCreation: the OS refused to create the process, or it
	// exited with a failure status inside the liveness window.
	KindProcessCreation
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid request"
	case KindResourceExhaustion:
		return "resource exhaustion"
	case KindSecurityConfiguration:
		return "security configuration"
	case KindAuthentication:
		return "authentication"
	case KindProcessCreation:
		return "process creation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error implements error so that a Kind can serve as an errors.Is
// target.
func (k Kind) Error() string { return k.String() + " failed" }

// Retryable reports whether the same request may succeed later.
func (k Kind) Retryable() bool { return k == KindResourceExhaustion }

// Sentinels for errors.Is.
var (
	ErrInvalidRequest        error = KindInvalidRequest
	ErrResourceExhaustion    error = KindResourceExhaustion
	ErrSecurityConfiguration error = KindSecurityConfiguration
	ErrAuthentication        error = KindAuthentication
	ErrProcessCreation       error = KindProcessCreation
)

// Error is the failure returned by every Launcher operation.
type Error struct {
	Kind Kind

	// Op names the launch stage that failed: build, pipes, authorize,
	// spawn, or liveness.
	Op string

	// Code is the OS error code or the child's exit status, or 0.
	Code int

	// Message is the human-readable diagnostic for Code, if any.
	Message string

	Err error
}

func (e *Error) Error() string {
	var builder strings.Builder
	builder.WriteString(e.Kind.Error())
	if e.Op != "" {
		builder.WriteString(" during ")
		builder.WriteString(e.Op)
	}
	if e.Message != "" {
		builder.WriteString(": ")
		builder.WriteString(e.Message)
	}
	if e.Code != 0 {
		fmt.Fprintf(&builder, " (code %d)", e.Code)
	}
	if e.Err != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Err.Error())
	}
	return builder.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the Kind sentinels.
func (e *Error) Is(target error) bool {
	kind, ok := target.(Kind)
	return ok && kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var launchErr *Error
	if errors.As(err, &launchErr) {
		return launchErr.Kind
	}
	return 0
}

func invalidRequest(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Op: "build", Message: fmt.Sprintf(format, args...)}
}

// classify returns err unchanged when it is already an *Error, and
// otherwise wraps it with kind and op.
func classify(err error, kind Kind, op string) *Error {
	var launchErr *Error
	if errors.As(err, &launchErr) {
		if launchErr.Op == "" {
			launchErr.Op = op
		}
		return launchErr
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
