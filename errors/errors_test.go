package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrapf(ErrMissingGold, "mention %d", 7)

	assert.True(t, Is(err, ErrMissingGold))
	assert.False(t, Is(err, ErrInvalidGold))
	assert.Contains(t, err.Error(), "mention 7")
	assert.Contains(t, err.Error(), "no gold entity")
}

func TestWithHint(t *testing.T) {
	err := WithHint(ErrUnknownFeature, "check classifier.features")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "check classifier.features", hints[0])
	assert.True(t, Is(err, ErrUnknownFeature))
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func TestAssertionFailure(t *testing.T) {
	err := AssertionFailedf("entity %d is retired", 3)

	assert.True(t, HasAssertionFailure(err))
	assert.Contains(t, err.Error(), "entity 3 is retired")
	assert.False(t, HasAssertionFailure(ErrNotFound))
}

func TestNotFound(t *testing.T) {
	err := NewNotFoundError("model %s", "abc")

	assert.True(t, IsNotFoundError(err))
	assert.Contains(t, err.Error(), "model abc")
	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(ErrNotTrained))
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
}
