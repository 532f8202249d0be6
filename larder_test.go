package larder_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/larder"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := larder.Errorf(larder.ENOTFOUND, "recipe %q not found", "pasta")

	assert.Equal(t, larder.ENOTFOUND, larder.ErrorCode(err))
	assert.Equal(t, "recipe \"pasta\" not found", larder.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading dataset: %w", larder.Errorf(larder.EINVALID, "bad shape"))

	assert.Equal(t, larder.EINVALID, larder.ErrorCode(err))
	assert.Equal(t, "bad shape", larder.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, larder.EINTERNAL, larder.ErrorCode(err))
	assert.Equal(t, "Internal error.", larder.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, larder.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, larder.ErrorMessage(nil))
}
