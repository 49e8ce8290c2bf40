// Package autostart registers and deregisters the application as a program
// launched at user login.
package autostart

import "errors"

// ErrUnsupported is returned on platforms without a login-item mechanism
// this application knows how to drive.
var ErrUnsupported = errors.New("run-at-login registration is not supported on this platform")

// Registrar manages the per-user run-at-login registration. Existence of the
// registration is the sole signal of "enabled"; implementations query the OS
// live on every call and keep no in-memory cache, since external tools may
// change the registration at any time.
type Registrar interface {
	// Enabled reports whether the registration currently exists.
	Enabled() (bool, error)

	// Set creates or removes the registration. Idempotent: enabling when
	// already enabled rewrites the entry, disabling when absent succeeds.
	Set(enabled bool) error
}

// New returns the registrar for the current platform.
func New() Registrar {
	return newRegistrar()
}
