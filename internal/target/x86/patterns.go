package x86

import (
	"kodegen/internal/ir"
	"kodegen/internal/pattern"
)

var gpr = pattern.GeneralReg
var anyOut = pattern.Any

// selectTable is the x86-64 lowering pattern table, §4.4. Within each
// opcode's group, specific patterns are declared before the general one
// they fall back from, per the "first match wins" authoring contract.
var selectTable = []pattern.SelectPattern{
	// Add(reg, reg) -> reg, in1 == out: add out, in2.
	{
		Opcode: ir.OpAdd,
		Inputs: []pattern.OperandKind{gpr, gpr},
		Output: &gpr,
		Conditions: []pattern.Condition{
			pattern.InEqualsOut(0),
		},
		Templates: []pattern.Template{
			{Mnemonic: "add", Operands: []pattern.TemplateOperand{pattern.OutAliasIn(0), pattern.In(1)}},
		},
	},
	// Add(reg, reg) -> reg, in2 == out: add out, in1.
	{
		Opcode: ir.OpAdd,
		Inputs: []pattern.OperandKind{gpr, gpr},
		Output: &gpr,
		Conditions: []pattern.Condition{
			pattern.InEqualsOut(1),
		},
		Templates: []pattern.Template{
			{Mnemonic: "add", Operands: []pattern.TemplateOperand{pattern.OutAliasIn(1), pattern.In(0)}},
		},
	},
	// Add(reg, reg) -> reg, otherwise: lea out, [in1 + in2].
	{
		Opcode: ir.OpAdd,
		Inputs: []pattern.OperandKind{gpr, gpr},
		Output: &gpr,
		Conditions: []pattern.Condition{
			pattern.InNotEqualsOut(0),
			pattern.InNotEqualsOut(1),
		},
		Templates: []pattern.Template{
			{Mnemonic: "lea", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.In(0), pattern.In(1)}},
		},
	},

	// Sub(reg, reg) -> reg, in1 == out: sub out, in2.
	{
		Opcode: ir.OpSub,
		Inputs: []pattern.OperandKind{gpr, gpr},
		Output: &gpr,
		Conditions: []pattern.Condition{
			pattern.InEqualsOut(0),
		},
		Templates: []pattern.Template{
			{Mnemonic: "sub", Operands: []pattern.TemplateOperand{pattern.OutAliasIn(0), pattern.In(1)}},
		},
	},
	// Sub(reg, reg) -> reg, otherwise: mov out, in1; sub out, in2.
	{
		Opcode: ir.OpSub,
		Inputs: []pattern.OperandKind{gpr, gpr},
		Output: &gpr,
		Conditions: []pattern.Condition{
			pattern.InNotEqualsOut(0),
		},
		Templates: []pattern.Template{
			{Mnemonic: "mov", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.In(0)}},
			{Mnemonic: "sub", Operands: []pattern.TemplateOperand{pattern.OutAliasIn(0), pattern.In(1)}},
		},
	},

	// Copy(any) -> reg: mov out, in1. The pattern has no in1 == out
	// condition; when the two allocations coincide, the selector's
	// self-move elision drops the resulting "mov reg, reg", so such a
	// Copy emits no instruction.
	{
		Opcode: ir.OpCopy,
		Inputs: []pattern.OperandKind{anyOut},
		Output: &gpr,
		Templates: []pattern.Template{
			{Mnemonic: "mov", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.In(0)}},
		},
	},

	// Ret(reg), operand already in the return register: bare ret.
	{
		Opcode: ir.OpRet,
		Inputs: []pattern.OperandKind{gpr},
		Output: nil,
		Conditions: []pattern.Condition{
			pattern.InEqualsReg(0, RAX, ir.Int64),
		},
		Templates: []pattern.Template{
			{Mnemonic: "ret"},
		},
	},
	// Ret(any), otherwise: mov rax, in1; ret.
	{
		Opcode: ir.OpRet,
		Inputs: []pattern.OperandKind{anyOut},
		Output: nil,
		Templates: []pattern.Template{
			{Mnemonic: "mov", Operands: []pattern.TemplateOperand{pattern.RegConst(RAX), pattern.In(0)}},
			{Mnemonic: "ret"},
		},
	},

	// IntrinsicCall{GetStackPointer} -> reg: mov out, rsp.
	{
		Opcode:    ir.OpIntrinsicCall,
		Intrinsic: intrinsicPtr(ir.GetStackPointer),
		Inputs:    nil,
		Output:    &gpr,
		Templates: []pattern.Template{
			{Mnemonic: "mov", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.RegConst(RSP)}},
		},
	},
}

func intrinsicPtr(k ir.IntrinsicKind) *ir.IntrinsicKind { return &k }

// disasmTable is the symmetric inverse of selectTable (§4.5). The two
// aliasing Add/Sub select patterns collapse to one disasm entry each: any
// two-register "add"/"sub" is read back with the shared register bound to
// both the output and input-0 slot, which reconstructs a valid (if not
// byte-identical) Add/Sub node regardless of which select pattern
// produced it — Add and Sub are only ever selected with the written
// register as one of the two original operands, so this reading is always
// sound.
var disasmTable = pattern.SortedByLength([]pattern.DisasmPattern{
	{
		Opcode:    ir.OpAdd,
		Inputs:    []pattern.OperandKind{gpr, gpr},
		HasOutput: true,
		Output:    gpr,
		Templates: []pattern.Template{
			{Mnemonic: "add", Operands: []pattern.TemplateOperand{pattern.OutAliasIn(0), pattern.In(1)}},
		},
	},
	{
		Opcode:    ir.OpAdd,
		Inputs:    []pattern.OperandKind{gpr, gpr},
		HasOutput: true,
		Output:    gpr,
		Templates: []pattern.Template{
			{Mnemonic: "lea", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.In(0), pattern.In(1)}},
		},
	},
	{
		Opcode:    ir.OpSub,
		Inputs:    []pattern.OperandKind{gpr, gpr},
		HasOutput: true,
		Output:    gpr,
		Templates: []pattern.Template{
			{Mnemonic: "sub", Operands: []pattern.TemplateOperand{pattern.OutAliasIn(0), pattern.In(1)}},
		},
	},
	{
		Opcode:    ir.OpSub,
		Inputs:    []pattern.OperandKind{gpr, gpr},
		HasOutput: true,
		Output:    gpr,
		Templates: []pattern.Template{
			{Mnemonic: "mov", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.In(0)}},
			{Mnemonic: "sub", Operands: []pattern.TemplateOperand{pattern.OutAliasIn(0), pattern.In(1)}},
		},
	},
	{
		Opcode:    ir.OpCopy,
		Inputs:    []pattern.OperandKind{anyOut},
		HasOutput: true,
		Output:    gpr,
		Templates: []pattern.Template{
			{Mnemonic: "mov", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.In(0)}},
		},
	},
	{
		Opcode:    ir.OpRet,
		Inputs:    nil,
		HasOutput: false,
		Templates: []pattern.Template{
			{Mnemonic: "ret"},
		},
	},
	{
		Opcode:    ir.OpRet,
		Inputs:    []pattern.OperandKind{anyOut},
		HasOutput: false,
		Templates: []pattern.Template{
			{Mnemonic: "mov", Operands: []pattern.TemplateOperand{pattern.RegConst(RAX), pattern.In(0)}},
			{Mnemonic: "ret"},
		},
	},
	{
		Opcode:    ir.OpIntrinsicCall,
		Intrinsic: ir.GetStackPointer,
		Inputs:    nil,
		HasOutput: true,
		Output:    gpr,
		Templates: []pattern.Template{
			{Mnemonic: "mov", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.RegConst(RSP)}},
		},
	},
})

func (Backend) SelectTable() []pattern.SelectPattern { return selectTable }
func (Backend) DisasmTable() []pattern.DisasmPattern { return disasmTable }
