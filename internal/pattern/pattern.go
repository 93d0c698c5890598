// Package pattern implements the pattern DSL spec.md §4.4/§4.5 describes:
// a small, data-driven table coupling one IR opcode to one or more
// assembly templates, with kind predicates and boolean conditions on the
// selection side, and the symmetric matcher on the disassembly side.
//
// The source expands this table at compile time via a procedural macro
// (original_source/src/procmacro/*). spec.md §9 explicitly allows an
// implementation to mirror that with "a tagged data structure interpreted
// at runtime" instead — that is what this package is.
package pattern

import (
	"kodegen/internal/ir"
)

// OperandKind constrains what an operand or output position may bind to.
type OperandKind int

const (
	GeneralReg OperandKind = iota
	Memory
	Immediate
	Any
)

// Match reports whether allocation a satisfies this kind.
func (k OperandKind) Match(a ir.Allocation) bool {
	switch k {
	case GeneralReg:
		_, ok := a.(ir.Register)
		return ok
	case Memory:
		_, ok := a.(ir.Stack)
		return ok
	case Immediate:
		_, ok := a.(ir.Imm)
		return ok
	case Any:
		return true
	default:
		return false
	}
}

// templateOperandKind tags what a TemplateOperand refers to.
type templateOperandKind int

const (
	tplIn templateOperandKind = iota
	tplOut
	tplRegConst
	tplOutAliasIn
)

// TemplateOperand is one operand expression inside an assembly template:
// a reference to the i-th input, the output, or a fixed register
// constant.
type TemplateOperand struct {
	kind templateOperandKind
	idx  int
	reg  int
}

// In references the i-th matched input operand.
func In(i int) TemplateOperand { return TemplateOperand{kind: tplIn, idx: i} }

// Out references the node's output.
func Out() TemplateOperand { return TemplateOperand{kind: tplOut} }

// RegConst references a fixed, target-specific register id (e.g. the
// return-value register in a "mov return_reg, in1" template).
func RegConst(id int) TemplateOperand { return TemplateOperand{kind: tplRegConst, reg: id} }

// OutAliasIn references an operand slot that is simultaneously the node's
// output and its i-th input — the two-address "in1==out" / "in2==out"
// forms a two-operand ISA uses to fold a copy into the operation itself
// (e.g. x86-64 "add out, in2" when in1 already equals out). Disassembly
// binds both the output and input i from the single matched operand, so
// the instruction remains fully invertible despite the alias.
func OutAliasIn(i int) TemplateOperand { return TemplateOperand{kind: tplOutAliasIn, idx: i} }

// Template is one mnemonic plus its ordered operand expressions. A
// lowering pattern emits one AssemblyInst per Template, in declared
// order; a disassembly pattern matches one AssemblyInst per Template
// against the instruction window, in the same order.
type Template struct {
	Mnemonic string
	Operands []TemplateOperand
}

// Condition is a boolean predicate over a pattern's resolved input and
// output allocations, e.g. "input 1 equals the output".
type Condition func(ins []ir.Allocation, out ir.Allocation, hasOut bool) bool

// InEqualsOut requires the i-th input to resolve to the same Allocation
// as the output.
func InEqualsOut(i int) Condition {
	return func(ins []ir.Allocation, out ir.Allocation, hasOut bool) bool {
		return hasOut && ins[i] == out
	}
}

// InNotEqualsOut requires the i-th input to resolve to a different
// Allocation than the output.
func InNotEqualsOut(i int) Condition {
	return func(ins []ir.Allocation, out ir.Allocation, hasOut bool) bool {
		return !hasOut || ins[i] != out
	}
}

// InEqualsIn requires inputs i and j to resolve to the same Allocation.
func InEqualsIn(i, j int) Condition {
	return func(ins []ir.Allocation, out ir.Allocation, hasOut bool) bool {
		return ins[i] == ins[j]
	}
}

// InEqualsReg requires input i to already be the fixed register regID —
// the "operand already in return register" predicate spec.md §4.4 asks
// for on Ret's first pattern, where there is no output allocation to
// compare against.
func InEqualsReg(i, regID int, ty ir.TypeMetadata) Condition {
	want := ir.Register{ID: regID, Ty: ty}
	return func(ins []ir.Allocation, out ir.Allocation, hasOut bool) bool {
		return ins[i] == want
	}
}
