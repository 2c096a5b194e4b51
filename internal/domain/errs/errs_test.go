package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	err := InvalidArgument("page size must be positive, got %d", 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, "invalid argument: page size must be positive, got 0", err.Error())

	assert.ErrorIs(t, IntegrityViolation("tie"), ErrIntegrityViolation)
}

func TestStorage_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage("list holdings", cause)

	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "storage unavailable: failed to list holdings: connection refused", err.Error())
	assert.NoError(t, Storage("noop", nil))
}
