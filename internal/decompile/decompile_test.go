package decompile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kodegen/internal/asm"
	"kodegen/internal/decompile"
	"kodegen/internal/ir"
	"kodegen/internal/lifetime"
	"kodegen/internal/regalloc"
	"kodegen/internal/selector"
	"kodegen/internal/target"
	_ "kodegen/internal/target/x86"
)

func identityAddFunc() *ir.Function {
	fn := ir.NewFunction("identity_add", ir.Public, ir.Int64, ir.Int64)
	fn.SetReturnType(ir.Int64)
	sum := fn.Append(ir.NewNode(ir.OpAdd, ir.Int64, true,
		&ir.Arg{Num: 0, Ty: ir.Int64}, &ir.Arg{Num: 1, Ty: ir.Int64}))
	fn.Append(ir.NewNode(ir.OpRet, ir.Int64, false, ir.RefOf(sum)))
	return fn
}

func TestRoundTripIdentityAdd(t *testing.T) {
	backend, ok := target.Lookup(target.X86)
	require.True(t, ok)

	original := identityAddFunc()
	annotated := lifetime.Annotate(original)
	allocated, _, err := regalloc.Allocate(annotated, backend)
	require.NoError(t, err)
	insts, _, err := selector.Select(original.Name, allocated, backend, selector.Options{})
	require.NoError(t, err)

	disassembled, err := decompile.Disassemble(original.Name, insts, backend)
	require.NoError(t, err)

	reconstructed, err := decompile.Deallocate(original.Name, disassembled, backend)
	require.NoError(t, err)
	reconstructed = decompile.ExtractTypes(reconstructed)

	require.Len(t, reconstructed.Args, 2)
	assert.Equal(t, ir.Int64, reconstructed.Args[0])
	assert.Equal(t, ir.Int64, reconstructed.Args[1])
	assert.Equal(t, ir.Int64, reconstructed.ReturnType())

	require.Len(t, reconstructed.Body, 2)
	assert.Equal(t, ir.OpAdd, reconstructed.Body[0].Opcode)
	assert.Equal(t, ir.OpRet, reconstructed.Body[1].Opcode)

	// Recompiling the decompiled function must succeed and produce the
	// same instruction shape — the round-trip is semantic, not
	// necessarily byte-identical to the original selection.
	reannotated := lifetime.Annotate(reconstructed)
	reallocated, _, err := regalloc.Allocate(reannotated, backend)
	require.NoError(t, err)
	reinsts, _, err := selector.Select(reconstructed.Name, reallocated, backend, selector.Options{})
	require.NoError(t, err)
	assert.Equal(t, len(insts), len(reinsts))
}

func TestDisassembleEmptyFunctionIsFatal(t *testing.T) {
	backend, ok := target.Lookup(target.X86)
	require.True(t, ok)

	_, err := decompile.Disassemble("empty", nil, backend)
	require.Error(t, err)
}

func TestDisassembleUnsupportedInstructionIsFatal(t *testing.T) {
	backend, ok := target.Lookup(target.X86)
	require.True(t, ok)

	bogus := []asm.AssemblyInst{{Opcode: "vpaddq"}}
	_, err := decompile.Disassemble("weird", bogus, backend)
	require.Error(t, err)
}

func TestDeallocateUnallocatedStackSlotIsFatal(t *testing.T) {
	backend, ok := target.Lookup(target.X86)
	require.True(t, ok)

	// A non-negative Stack slot is a spill slot; unlike a negative
	// (argument) slot, nothing ever writes it in this node list, so it
	// resolves to neither a prior producer, an immediate, nor an
	// argument location.
	nodes := []*ir.AllocatedIrNode{
		{
			Opcode: ir.OpRet,
			Ops:    []ir.Allocation{ir.Stack{Slot: 3, Ty: ir.Int64}},
			HasOut: false,
		},
	}

	_, err := decompile.Deallocate("orphan", nodes, backend)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node 0")
}

func TestDeallocateTypeMismatchWrapsCause(t *testing.T) {
	backend, ok := target.Lookup(target.X86)
	require.True(t, ok)

	// Hand-crafted, not reachable through Disassemble against real
	// patterns: an Add whose two immediates carry different
	// TypeMetadata, the case the allocator itself can never produce.
	nodes := []*ir.AllocatedIrNode{
		{
			Opcode: ir.OpAdd,
			Ops: []ir.Allocation{
				ir.Imm{Value: 1, Ty: ir.Int64},
				ir.Imm{Value: 2, Ty: ir.TypeMetadata(1)},
			},
			HasOut: true,
			Alloc:  ir.Register{ID: 0, Ty: ir.Int64},
		},
	}

	_, err := decompile.Deallocate("mismatched", nodes, backend)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operand types differ")
	assert.ErrorContains(t, err, "resolved to")
}
