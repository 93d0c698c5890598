package riscv64

import (
	"kodegen/internal/ir"
	"kodegen/internal/pattern"
)

var gpr = pattern.GeneralReg
var anyOut = pattern.Any

// selectTable is the RISC-V64 lowering pattern table, §4.4. Like
// AArch64, RV64I's three-address ADD/SUB accept the destination aliasing
// either source operand directly, so one pattern per opcode suffices.
var selectTable = []pattern.SelectPattern{
	{
		Opcode: ir.OpAdd,
		Inputs: []pattern.OperandKind{gpr, gpr},
		Output: &gpr,
		Templates: []pattern.Template{
			{Mnemonic: "add", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.In(0), pattern.In(1)}},
		},
	},
	{
		Opcode: ir.OpSub,
		Inputs: []pattern.OperandKind{gpr, gpr},
		Output: &gpr,
		Templates: []pattern.Template{
			{Mnemonic: "sub", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.In(0), pattern.In(1)}},
		},
	},
	{
		Opcode: ir.OpCopy,
		Inputs: []pattern.OperandKind{anyOut},
		Output: &gpr,
		Templates: []pattern.Template{
			{Mnemonic: "mv", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.In(0)}},
		},
	},
	// Ret(reg), operand already in a0: bare ret.
	{
		Opcode: ir.OpRet,
		Inputs: []pattern.OperandKind{gpr},
		Output: nil,
		Conditions: []pattern.Condition{
			pattern.InEqualsReg(0, X10, ir.Int64),
		},
		Templates: []pattern.Template{
			{Mnemonic: "ret"},
		},
	},
	// Ret(any), otherwise: mv a0, in1; ret.
	{
		Opcode: ir.OpRet,
		Inputs: []pattern.OperandKind{anyOut},
		Output: nil,
		Templates: []pattern.Template{
			{Mnemonic: "mv", Operands: []pattern.TemplateOperand{pattern.RegConst(X10), pattern.In(0)}},
			{Mnemonic: "ret"},
		},
	},
	{
		Opcode:    ir.OpIntrinsicCall,
		Intrinsic: intrinsicPtr(ir.GetStackPointer),
		Inputs:    nil,
		Output:    &gpr,
		Templates: []pattern.Template{
			{Mnemonic: "mv", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.RegConst(SP)}},
		},
	},
}

func intrinsicPtr(k ir.IntrinsicKind) *ir.IntrinsicKind { return &k }

var disasmTable = pattern.SortedByLength([]pattern.DisasmPattern{
	{
		Opcode:    ir.OpAdd,
		Inputs:    []pattern.OperandKind{gpr, gpr},
		HasOutput: true,
		Output:    gpr,
		Templates: []pattern.Template{
			{Mnemonic: "add", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.In(0), pattern.In(1)}},
		},
	},
	{
		Opcode:    ir.OpSub,
		Inputs:    []pattern.OperandKind{gpr, gpr},
		HasOutput: true,
		Output:    gpr,
		Templates: []pattern.Template{
			{Mnemonic: "sub", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.In(0), pattern.In(1)}},
		},
	},
	{
		Opcode:    ir.OpCopy,
		Inputs:    []pattern.OperandKind{anyOut},
		HasOutput: true,
		Output:    gpr,
		Templates: []pattern.Template{
			{Mnemonic: "mv", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.In(0)}},
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
			{Mnemonic: "mv", Operands: []pattern.TemplateOperand{pattern.RegConst(X10), pattern.In(0)}},
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
			{Mnemonic: "mv", Operands: []pattern.TemplateOperand{pattern.Out(), pattern.RegConst(SP)}},
		},
	},
})

func (Backend) SelectTable() []pattern.SelectPattern { return selectTable }
func (Backend) DisasmTable() []pattern.DisasmPattern { return disasmTable }
