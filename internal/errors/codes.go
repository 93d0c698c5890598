// Package errors defines the codegen error taxonomy: every fatal
// condition a pass in the pipeline can raise, each carrying an error code
// and enough context to identify the offending node or instruction.
//
// Error code ranges mirror the teacher's own code-space convention
// (internal/errors/codes.go upstream), re-homed on pipeline stages instead
// of language semantics:
//
//	G0001-G0009: register/spill allocator errors
//	G0010-G0019: instruction selector errors
//	G0020-G0029: decompiler errors
//	G0030-G0039: IR validation errors
//	G0040-G0049: compilation entry errors
package errors

const (
	// G0001: an operand references a value no prior node produced. Also
	// carried by the decompiler's UnallocatedOperand, the de-allocator's
	// counterpart of the same failure.
	ErrUnresolvedOperand = "G0001"

	// G0010: no lowering pattern matched an opcode for the target.
	ErrUnsupportedOpcode = "G0010"

	// G0020: no disassembly pattern matched at the current instruction
	// window.
	ErrUnsupportedInstruction = "G0020"

	// G0021: disassembly was invoked against an empty instruction list.
	ErrEmptyFunction = "G0021"

	// G0030: a binary arithmetic node's operands carry different types.
	ErrTypeMismatch = "G0030"

	// G0040: compilation was asked for an architecture with no backend.
	ErrInvalidTarget = "G0040"
)
