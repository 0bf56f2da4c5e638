package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	require.EqualError(t, &DuplicateToolError{Name: "echo"}, `tool "echo" already registered`)
	require.EqualError(t, &ToolNotFoundError{Name: "ghost"}, `tool "ghost" not found`)
	require.EqualError(t, &NoSchemaError{Tool: "echo"}, `no schema registered for tool "echo"`)
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")

	for _, err := range []error{
		&SchemaCompileError{Tool: "t", Err: cause},
		&ValidationError{Tool: "t", Err: cause},
		&ToolExecutionError{Tool: "t", Err: cause},
	} {
		require.ErrorIs(t, err, cause)
		require.Contains(t, err.Error(), "root cause")
	}
}

func TestMarkerInterface(t *testing.T) {
	var tse ToolServerError = &ToolNotFoundError{Name: "x"}
	require.True(t, tse.IsToolServerError())

	// Plain errors stay outside the marker interface.
	var other ToolServerError
	require.False(t, errors.As(fmt.Errorf("plain"), &other))
}
