package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnresolvedOperand(t *testing.T) {
	err := UnresolvedOperand("add2", 3)
	assert.Equal(t, ErrUnresolvedOperand, err.Code)
	assert.Equal(t, StageRegalloc, err.Stage)
	assert.Contains(t, err.Error(), "add2")
	assert.Contains(t, err.Error(), "node 3")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(UnsupportedInstruction("f", "x86", 2, "add"), cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "boom")
}

func TestFormatIncludesCode(t *testing.T) {
	out := Format(InvalidTarget("sparc"))
	assert.Contains(t, out, ErrInvalidTarget)
	assert.Contains(t, out, "sparc")
}
