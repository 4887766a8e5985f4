package pagevec_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/pagevec"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := pagevec.Errorf(pagevec.EFETCH, "HTTP %d for %s", 404, "https://example.com/")

	assert.Equal(t, pagevec.EFETCH, pagevec.ErrorCode(err))
	assert.Equal(t, "HTTP 404 for https://example.com/", pagevec.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("batch 3: %w", pagevec.Errorf(pagevec.EINVALID, "bad row"))

	assert.Equal(t, pagevec.EINVALID, pagevec.ErrorCode(err))
	assert.Equal(t, "bad row", pagevec.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("boom")

	assert.Equal(t, pagevec.EINTERNAL, pagevec.ErrorCode(err))
	assert.Equal(t, "Internal error.", pagevec.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagevec.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagevec.ErrorMessage(nil))
}
