package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	errs "github.com/wagiedev/mcp-toolserver-go/internal/errors"
)

func TestValidateToolName(t *testing.T) {
	t.Run("accepts plain and namespaced names", func(t *testing.T) {
		for _, name := range []string{"echo", "tail", "my_tool", "ns/tool", "v2-tool", "T0"} {
			require.NoError(t, ValidateToolName(name), name)
		}
	})

	t.Run("rejects empty name with sentinel", func(t *testing.T) {
		require.ErrorIs(t, ValidateToolName(""), errs.ErrEmptyToolName)
	})

	t.Run("rejects overlong name", func(t *testing.T) {
		require.Error(t, ValidateToolName(strings.Repeat("a", 256)))
		require.NoError(t, ValidateToolName(strings.Repeat("a", 255)))
	})

	t.Run("rejects null bytes", func(t *testing.T) {
		require.Error(t, ValidateToolName("echo\x00"))
	})

	t.Run("rejects shell metacharacters and spaces", func(t *testing.T) {
		for _, name := range []string{"a b", "a;b", "a|b", "a$b", "../etc", "a.b"} {
			require.Error(t, ValidateToolName(name), name)
		}
	})
}

func TestCheckMessageSize(t *testing.T) {
	require.NoError(t, CheckMessageSize(100, 100))
	require.Error(t, CheckMessageSize(101, 100))
	// Zero max disables the bound.
	require.NoError(t, CheckMessageSize(1<<30, 0))
}
