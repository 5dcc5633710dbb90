package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_UnwrapsChain(t *testing.T) {
	err := fmt.Errorf("create post: %w", NotFound("category %d not found", 7))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "create post: category 7 not found", err.Error())
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Nil(t, FieldsOf(errors.New("boom")))
}

func TestUpstreamIO_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := UpstreamIO("upload photo", cause)

	assert.Equal(t, KindUpstreamIO, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "upload photo: connection reset", err.Error())
}

func TestValidation_Fields(t *testing.T) {
	err := Validation("invalid user", map[string]string{"email": "invalid"})

	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, map[string]string{"email": "invalid"}, FieldsOf(err))
}
