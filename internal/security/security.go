// Package security holds input-hygiene checks applied at trust boundaries.
package security

import (
	"fmt"
	"strings"

	errs "github.com/wagiedev/mcp-toolserver-go/internal/errors"
)

const maxToolNameLength = 255

// ValidateToolName checks that a tool name is safe to use as a registry key
// and in client-visible metadata: non-empty, bounded, and restricted to
// alphanumerics, underscores, dashes, and slashes (namespaced tools).
func ValidateToolName(name string) error {
	if name == "" {
		return errs.ErrEmptyToolName
	}

	if len(name) > maxToolNameLength {
		return fmt.Errorf("tool name exceeds %d bytes", maxToolNameLength)
	}

	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("tool name contains null bytes")
	}

	for _, r := range name {
		if !isNameRune(r) {
			return fmt.Errorf("tool name contains invalid character %q", r)
		}
	}

	return nil
}

// CheckMessageSize rejects inbound payloads above the configured bound.
func CheckMessageSize(size, max int) error {
	if max > 0 && size > max {
		return fmt.Errorf("message size %d exceeds maximum %d", size, max)
	}

	return nil
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z',
		r >= 'A' && r <= 'Z',
		r >= '0' && r <= '9',
		r == '_', r == '-', r == '/':
		return true
	default:
		return false
	}
}
