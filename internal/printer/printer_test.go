package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kodegen/internal/asm"
	"kodegen/internal/ir"
	"kodegen/internal/printer"
	"kodegen/internal/target"
	_ "kodegen/internal/target/arm64"
	_ "kodegen/internal/target/x86"
)

func TestPrintIdentityAdd(t *testing.T) {
	backend, ok := target.Lookup(target.X86)
	require.True(t, ok)

	comp := &asm.Compilation{
		TargetArch: "x86_64",
		Funcs: []asm.FuncAsm{
			{
				Name:       "identity_add",
				Visibility: ir.Public,
				Insts: []asm.AssemblyInst{
					{Opcode: "lea", Ops: []ir.Allocation{
						ir.Register{ID: 0, Ty: ir.Int64},
						ir.Register{ID: 7, Ty: ir.Int64},
						ir.Register{ID: 6, Ty: ir.Int64},
					}},
					{Opcode: "ret"},
				},
			},
		},
	}

	out := printer.Print(comp, backend)
	assert.Contains(t, out, ".text")
	assert.Contains(t, out, ".globl identity_add")
	assert.Contains(t, out, "identity_add:")
	assert.Contains(t, out, "lea rax, [rdi + rsi]")
	assert.Contains(t, out, "ret")
}

func TestPrintStackOperand(t *testing.T) {
	backend, ok := target.Lookup(target.X86)
	require.True(t, ok)

	comp := &asm.Compilation{
		Funcs: []asm.FuncAsm{
			{
				Name: "spiller",
				Insts: []asm.AssemblyInst{
					{Opcode: "mov", Ops: []ir.Allocation{ir.Stack{Slot: 1, Ty: ir.Int64}, ir.Register{ID: 0, Ty: ir.Int64}}},
				},
			},
		},
	}

	out := printer.Print(comp, backend)
	assert.Contains(t, out, "[rsp + 16]")
}

func TestPrintAarch64StackOperandUsesPreDecrementSyntax(t *testing.T) {
	backend, ok := target.Lookup(target.Aarch64)
	require.True(t, ok)

	comp := &asm.Compilation{
		Funcs: []asm.FuncAsm{
			{
				Name: "spiller",
				Insts: []asm.AssemblyInst{
					{Opcode: "mov", Ops: []ir.Allocation{ir.Stack{Slot: 1, Ty: ir.Int64}, ir.Register{ID: 0, Ty: ir.Int64}}},
				},
			},
		},
	}

	out := printer.Print(comp, backend)
	assert.Contains(t, out, "[sp, #-16]!")
}
