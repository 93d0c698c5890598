package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kodegen/internal/asm"
	"kodegen/internal/ir"
)

func addNode(out, in1, in2 ir.Allocation) *ir.AllocatedIrNode {
	return &ir.AllocatedIrNode{
		Opcode: ir.OpAdd,
		Ops:    []ir.Allocation{in1, in2},
		HasOut: true,
		Ty:     ir.Int64,
		Alloc:  out,
	}
}

func TestSelectFirstHonorsDeclaredOrder(t *testing.T) {
	rax := ir.Register{ID: 0, Ty: ir.Int64}
	rdi := ir.Register{ID: 7, Ty: ir.Int64}
	rsi := ir.Register{ID: 6, Ty: ir.Int64}
	reg := GeneralReg

	table := []SelectPattern{
		{
			Opcode:     ir.OpAdd,
			Inputs:     []OperandKind{GeneralReg, GeneralReg},
			Output:     &reg,
			Conditions: []Condition{InEqualsOut(0)},
			Templates:  []Template{{Mnemonic: "add", Operands: []TemplateOperand{OutAliasIn(0), In(1)}}},
		},
		{
			Opcode:    ir.OpAdd,
			Inputs:    []OperandKind{GeneralReg, GeneralReg},
			Output:    &reg,
			Templates: []Template{{Mnemonic: "lea", Operands: []TemplateOperand{Out(), In(0), In(1)}}},
		},
	}

	// in1 == out: the specific in1==out pattern must win over the
	// general fallback, even though both patterns structurally match.
	aliasing := addNode(rax, rax, rsi)
	p, ok := SelectFirst(table, aliasing)
	require.True(t, ok)
	assert.Equal(t, "add", p.Templates[0].Mnemonic)

	// Neither input aliases the output: only the general pattern matches.
	general := addNode(rax, rdi, rsi)
	p, ok = SelectFirst(table, general)
	require.True(t, ok)
	assert.Equal(t, "lea", p.Templates[0].Mnemonic)
}

func TestSelectFirstRejectsWrongOpcodeOrArity(t *testing.T) {
	reg := GeneralReg
	table := []SelectPattern{
		{
			Opcode:    ir.OpAdd,
			Inputs:    []OperandKind{GeneralReg, GeneralReg},
			Output:    &reg,
			Templates: []Template{{Mnemonic: "lea", Operands: []TemplateOperand{Out(), In(0), In(1)}}},
		},
	}

	sub := &ir.AllocatedIrNode{
		Opcode: ir.OpSub,
		Ops:    []ir.Allocation{ir.Register{ID: 0, Ty: ir.Int64}, ir.Register{ID: 1, Ty: ir.Int64}},
		HasOut: true,
		Alloc:  ir.Register{ID: 0, Ty: ir.Int64},
	}
	_, ok := SelectFirst(table, sub)
	assert.False(t, ok, "wrong opcode must never match")

	wrongArity := &ir.AllocatedIrNode{
		Opcode: ir.OpAdd,
		Ops:    []ir.Allocation{ir.Register{ID: 0, Ty: ir.Int64}},
		HasOut: true,
		Alloc:  ir.Register{ID: 0, Ty: ir.Int64},
	}
	_, ok = SelectFirst(table, wrongArity)
	assert.False(t, ok, "input count mismatch must never match")
}

func TestExpandSubstitutesOutAliasInAsOutput(t *testing.T) {
	rax := ir.Register{ID: 0, Ty: ir.Int64}
	rsi := ir.Register{ID: 6, Ty: ir.Int64}
	p := &SelectPattern{
		Templates: []Template{{Mnemonic: "add", Operands: []TemplateOperand{OutAliasIn(0), In(1)}}},
	}
	node := addNode(rax, rax, rsi)

	insts := p.Expand(node)
	require.Len(t, insts, 1)
	assert.Equal(t, "add", insts[0].Opcode)
	assert.Equal(t, []ir.Allocation{rax, rsi}, insts[0].Ops)
}

func TestDisasmPatternRoundTripsOutAliasIn(t *testing.T) {
	reg := GeneralReg
	p := DisasmPattern{
		Opcode:    ir.OpAdd,
		Inputs:    []OperandKind{GeneralReg, GeneralReg},
		HasOutput: true,
		Output:    reg,
		Templates: []Template{{Mnemonic: "add", Operands: []TemplateOperand{OutAliasIn(0), In(1)}}},
	}

	rax := ir.Register{ID: 0, Ty: ir.Int64}
	rsi := ir.Register{ID: 6, Ty: ir.Int64}
	insts := []asm.AssemblyInst{{Opcode: "add", Ops: []ir.Allocation{rax, rsi}}}

	node, n, ok := p.TryMatch(insts)
	require.True(t, ok)
	assert.Equal(t, 1, n)
	assert.Equal(t, rax, node.Alloc, "the aliased slot must resolve as the output")
	assert.Equal(t, []ir.Allocation{rax, rsi}, node.Ops, "input 0 must also resolve from the same aliased slot")
}

func TestMatchLongestFirstPrefersMultiInstructionIdiom(t *testing.T) {
	reg := GeneralReg
	table := SortedByLength([]DisasmPattern{
		{
			Opcode:    ir.OpCopy,
			Inputs:    []OperandKind{GeneralReg},
			HasOutput: true,
			Output:    reg,
			Templates: []Template{{Mnemonic: "mov", Operands: []TemplateOperand{Out(), In(0)}}},
		},
		{
			Opcode:    ir.OpRet,
			Inputs:    []OperandKind{GeneralReg},
			HasOutput: false,
			Templates: []Template{
				{Mnemonic: "mov", Operands: []TemplateOperand{RegConst(0), In(0)}},
				{Mnemonic: "ret"},
			},
		},
	})

	rax := ir.Register{ID: 0, Ty: ir.Int64}
	rdi := ir.Register{ID: 7, Ty: ir.Int64}
	insts := []asm.AssemblyInst{
		{Opcode: "mov", Ops: []ir.Allocation{rax, rdi}},
		{Opcode: "ret"},
	}

	node, n, ok := MatchLongestFirst(table, insts)
	require.True(t, ok)
	assert.Equal(t, 2, n, "the two-instruction ret idiom must win over the one-instruction mov prefix")
	assert.Equal(t, ir.OpRet, node.Opcode)
}

func TestMatchLongestFirstNoMatchReturnsFalse(t *testing.T) {
	table := []DisasmPattern{
		{Opcode: ir.OpRet, Templates: []Template{{Mnemonic: "ret"}}},
	}
	_, _, ok := MatchLongestFirst(table, []asm.AssemblyInst{{Opcode: "vpaddq"}})
	assert.False(t, ok)
}
