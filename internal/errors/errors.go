package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Stage names the pipeline phase that raised a CodegenError, so a caller
// can tell a spill-allocator failure from a lowering failure at a glance.
type Stage string

const (
	StageDCE       Stage = "dce"
	StageLifetime  Stage = "lifetime"
	StageRegalloc  Stage = "regalloc"
	StageSelect    Stage = "select"
	StageDisasm    Stage = "disasm"
	StageDecompile Stage = "decompile"
	StageEntry     Stage = "entry"
	StageValidate  Stage = "validate"
)

// CodegenError is a structured, fatal compilation error. No pass ever
// returns a partial Compilation: a CodegenError always replaces, never
// accompanies, a successful result.
type CodegenError struct {
	Code     string
	Stage    Stage
	Function string
	Message  string
	Cause    error
}

func (e *CodegenError) Error() string {
	loc := e.Function
	if loc == "" {
		loc = "<module>"
	}
	msg := fmt.Sprintf("[%s] %s in %s: %s", e.Code, e.Stage, loc, e.Message)
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *CodegenError) Unwrap() error { return e.Cause }

func newErr(code string, stage Stage, function, message string, args ...any) *CodegenError {
	return &CodegenError{Code: code, Stage: stage, Function: function, Message: fmt.Sprintf(message, args...)}
}

// UnresolvedOperand reports an operand referencing a value no prior node
// in fn produced — a dangling reference, fatal to the allocator.
func UnresolvedOperand(function string, nodeIndex int) *CodegenError {
	return newErr(ErrUnresolvedOperand, StageRegalloc, function,
		"node %d references a value with no producing node", nodeIndex)
}

// UnallocatedOperand reports a decompiled instruction operand that is
// neither a previously-written allocation, an immediate, nor a valid
// argument-passing location — the decompile-side counterpart to
// UnresolvedOperand.
func UnallocatedOperand(function string, nodeIndex int) *CodegenError {
	return newErr(ErrUnresolvedOperand, StageDecompile, function,
		"node %d references an allocation with no known producer, constant, or argument binding", nodeIndex)
}

// UnsupportedOpcode reports a selector with no lowering pattern for op on
// the given target.
func UnsupportedOpcode(function, target string, nodeIndex int, op fmt.Stringer) *CodegenError {
	return newErr(ErrUnsupportedOpcode, StageSelect, function,
		"no lowering pattern for opcode %s at node %d on target %s", op, nodeIndex, target)
}

// UnsupportedInstruction reports a decompiler that found no disassembly
// pattern matching the instruction window starting at index.
func UnsupportedInstruction(function, target string, index int, mnemonic string) *CodegenError {
	return newErr(ErrUnsupportedInstruction, StageDisasm, function,
		"no disassembly pattern matches %q at instruction %d on target %s", mnemonic, index, target)
}

// EmptyFunction reports disassembly invoked against a function with no
// instructions.
func EmptyFunction(function string) *CodegenError {
	return newErr(ErrEmptyFunction, StageDisasm, function, "disassembly invoked with no instructions")
}

// TypeMismatch reports a binary arithmetic node whose operands carry
// different TypeMetadata.
func TypeMismatch(function string, nodeIndex int, lhs, rhs fmt.Stringer) *CodegenError {
	return newErr(ErrTypeMismatch, StageValidate, function,
		"node %d: operand types differ (%s vs %s)", nodeIndex, lhs, rhs)
}

// InvalidTarget reports compilation requested for an architecture with no
// registered backend.
func InvalidTarget(arch string) *CodegenError {
	return newErr(ErrInvalidTarget, StageEntry, "", "no backend registered for target %q", arch)
}

// Wrap attaches a cause to a CodegenError, using pkg/errors so the cause
// chain survives the decompiler's multi-step walk (disassemble ->
// de-allocate -> extract types) with a stack trace attached at the
// deepest wrap point, the same idiom the teacher's older call sites use
// pkg/errors for.
func Wrap(err *CodegenError, cause error) *CodegenError {
	err.Cause = pkgerrors.Wrap(cause, string(err.Stage))
	return err
}
