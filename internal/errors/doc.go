// Package errors defines the error types and sentinel errors used across
// the tool server.
//
// This package is internal; the public API re-exports these types from the
// root toolserver package.
package errors
