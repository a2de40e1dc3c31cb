package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *RouteError
		expected string
	}{
		{
			name:     "message only",
			err:      &RouteError{Code: ErrCodeValidation, Message: "invalid input"},
			expected: "invalid input",
		},
		{
			name:     "with domain",
			err:      &RouteError{Code: ErrCodeNotFound, Message: "route not found", Domain: "t1.cyzor.local"},
			expected: "route t1.cyzor.local: route not found",
		},
		{
			name:     "with underlying error",
			err:      &RouteError{Code: ErrCodeConfig, Message: "failed to load", Err: fmt.Errorf("file not found")},
			expected: "failed to load: file not found",
		},
		{
			name: "with domain and underlying error",
			err: &RouteError{
				Code:    ErrCodeIO,
				Message: "failed to enable",
				Domain:  "t1.cyzor.local",
				Err:     fmt.Errorf("permission denied"),
			},
			expected: "route t1.cyzor.local: failed to enable: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestRouteError_Unwrap(t *testing.T) {
	underlying := fmt.Errorf("underlying error")
	err := &RouteError{Code: ErrCodeIO, Message: "wrapped", Err: underlying}
	assert.Same(t, underlying, err.Unwrap())

	noWrap := &RouteError{Code: ErrCodeValidation, Message: "no underlying"}
	assert.Nil(t, noWrap.Unwrap())
}

func TestRouteError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		target   error
		expected bool
	}{
		{"matches sentinel by code", &RouteError{Code: ErrCodeReload, Message: "custom"}, ErrReloadFailed, true},
		{"different code", &RouteError{Code: ErrCodeReload}, ErrConfigTestFailed, false},
		{"non-RouteError target", &RouteError{Code: ErrCodeNotFound}, fmt.Errorf("plain"), false},
		{"wrapped with fmt", fmt.Errorf("setup: %w", NotFound("x")), ErrRouteNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.Is(tt.err, tt.target))
		})
	}
}

func TestConstructors(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		err := NotFound("a.cyzor.local")
		assert.True(t, Is(err, ErrRouteNotFound))
		assert.Contains(t, err.Error(), "a.cyzor.local")
	})

	t.Run("Validation", func(t *testing.T) {
		err := Validation("domain cannot be empty")
		assert.True(t, Is(err, ErrInvalidInput))
		assert.Equal(t, "domain cannot be empty", err.Error())
	})

	t.Run("Usage", func(t *testing.T) {
		assert.True(t, Is(Usage("missing args"), ErrUsage))
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := fmt.Errorf("exit status 1")
		err := Wrap(ErrCodeConfigTest, "nginx -t failed", cause)
		assert.True(t, Is(err, ErrConfigTestFailed))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("WrapDomain", func(t *testing.T) {
		cause := fmt.Errorf("read-only file system")
		err := WrapDomain(ErrCodeIO, "t1.cyzor.local", "failed to write config", cause)
		assert.True(t, Is(err, ErrWriteFailed))
		assert.Equal(t, "route t1.cyzor.local: failed to write config: read-only file system", err.Error())
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeReload, CodeOf(fmt.Errorf("x: %w", Wrap(ErrCodeReload, "r", nil))))
	assert.Equal(t, ErrCodeInternal, CodeOf(fmt.Errorf("plain")))

	var re *RouteError
	assert.True(t, As(Usage("u"), &re))
	assert.Equal(t, ErrCodeUsage, re.Code)
}
