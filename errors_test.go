package vfsh

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "No such file or directory", NewError(NotFound, "/x").Error())
	assert.Equal(t, "custom", Errorf(InvalidArgument, "custom").Error())
	assert.Equal(t, "File exists", (&Error{Kind: AlreadyExists}).Error())
}

func TestError_Is(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", NewError(NotADirectory, "/a"))

	assert.ErrorIs(t, err, ErrNotADirectory)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, NotADirectory, KindOf(err))
	assert.Equal(t, UnknownKind, KindOf(errors.New("plain")))
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := &Error{Kind: ParseError, Msg: "bad quote", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrParse)
}

func TestErrorKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "AlreadyExists", AlreadyExists.String())
	assert.Equal(t, "Unknown", ErrorKind(200).String())
}
