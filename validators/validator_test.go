package validators

import (
	"strings"
	"testing"

	"github.com/anonto42/socialconnect/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func TestVarContentLimits(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Var("content", "hi", "required,max=200"))

	err := v.Var("content", "", "required,max=200")
	require.True(t, errorx.Is(err, errorx.Validation))
	require.Equal(t, "content cannot be empty", err.Error())

	err = v.Var("content", strings.Repeat("a", 201), "required,max=200")
	require.True(t, errorx.Is(err, errorx.Validation))
	require.Equal(t, "content must be 200 characters or less", err.Error())

	// max counts runes, not bytes
	require.NoError(t, v.Var("content", strings.Repeat("é", 200), "required,max=200"))
}

func TestValidateStruct(t *testing.T) {
	type req struct {
		Category string `validate:"omitempty,oneof=general question"`
	}
	v := NewValidator()
	require.NoError(t, v.Validate(req{}))

	err := v.Validate(req{Category: "poll"})
	require.True(t, errorx.Is(err, errorx.Validation))
	require.Contains(t, err.Error(), "category must be one of")
}
