package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsCodeAndOverridesMessage(t *testing.T) {
	clone := Clone(ErrNotFound, "student not found")

	assert.Equal(t, ErrNotFound.Code, clone.Code)
	assert.Equal(t, http.StatusNotFound, clone.Status)
	assert.Equal(t, "student not found", clone.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
}

func TestHasCodeDistinguishesInconsistentData(t *testing.T) {
	miss := Clone(ErrNotFound, "student not found")
	broken := Clone(ErrDataInconsistent, "seat missing")

	assert.True(t, HasCode(miss, ErrNotFound.Code))
	assert.False(t, HasCode(miss, ErrDataInconsistent.Code))
	assert.True(t, HasCode(fmt.Errorf("resolve: %w", broken), ErrDataInconsistent.Code))
	assert.False(t, HasCode(errors.New("plain"), ErrNotFound.Code))
}

func TestFromErrorWrapsUnknownErrors(t *testing.T) {
	appErr := FromError(errors.New("boom"))

	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Nil(t, FromError(nil))
}
