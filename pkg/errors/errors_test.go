package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	err := Clone(ErrValidation, "title required")
	wrapped := fmt.Errorf("add assignment: %w", err)

	got := FromError(wrapped)
	assert.Equal(t, ErrValidation.Code, got.Code)
	assert.Equal(t, "title required", got.Message)

	plain := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(Clone(ErrValidation, "bad date")))
	assert.Equal(t, 0, ExitCode(Clone(ErrMissingCapability, "charts disabled")))
	assert.Equal(t, 0, ExitCode(Clone(ErrNoData, "no graded assignments")))
	assert.Equal(t, 1, ExitCode(Wrap(errors.New("disk full"), ErrStorage.Code, ErrStorage.Status, "write failed")))
	assert.Equal(t, 1, ExitCode(errors.New("unknown")))
}

func TestHasCodeWalksNestedErrors(t *testing.T) {
	inner := Clone(ErrConstraint, "foreign key")
	outer := Wrap(inner, ErrStorage.Code, ErrStorage.Status, "insert failed")

	assert.True(t, IsConstraint(outer))
	assert.False(t, IsValidation(outer))
}
