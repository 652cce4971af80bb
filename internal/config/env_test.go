package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStringFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "fallback", GetString("RIPPLESCOPE_UNSET_KEY", "fallback"))

	t.Setenv("RIPPLESCOPE_TEST_STRING", "value")
	assert.Equal(t, "value", GetString("RIPPLESCOPE_TEST_STRING", "fallback"))
}

func TestGetIntParsesOrFallsBack(t *testing.T) {
	assert.Equal(t, 7, GetInt("RIPPLESCOPE_UNSET_INT", 7))

	t.Setenv("RIPPLESCOPE_TEST_INT", "42")
	assert.Equal(t, 42, GetInt("RIPPLESCOPE_TEST_INT", 7))

	t.Setenv("RIPPLESCOPE_TEST_INT", "not-a-number")
	assert.Equal(t, 7, GetInt("RIPPLESCOPE_TEST_INT", 7))
}

func TestGetBoolParsesOrFallsBack(t *testing.T) {
	assert.False(t, GetBool("RIPPLESCOPE_UNSET_BOOL", false))

	t.Setenv("RIPPLESCOPE_TEST_BOOL", "true")
	assert.True(t, GetBool("RIPPLESCOPE_TEST_BOOL", false))
}

func TestMustGetStringPanicsWhenUnset(t *testing.T) {
	assert.Panics(t, func() { MustGetString("RIPPLESCOPE_DEFINITELY_UNSET") })
}
