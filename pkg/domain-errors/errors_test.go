package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("nil error stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("cause is reachable through errors.Is", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, CodeUnavailable, "load rules")
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "load rules: connection refused", err.Error())
	})
}

func TestHasCode(t *testing.T) {
	err := New(CodeNotFound, "person not found")
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeInternal))

	wrapped := fmt.Errorf("evaluate: %w", err)
	assert.True(t, HasCode(wrapped, CodeNotFound), "code survives fmt wrapping")

	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	assert.False(t, HasCode(nil, CodeInternal))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeValidation, CodeOf(New(CodeValidation, "bad date")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}
