package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kodegen/internal/compiler"
	"kodegen/internal/ir"
	"kodegen/internal/target"
	_ "kodegen/internal/target/arm64"
	_ "kodegen/internal/target/riscv64"
	_ "kodegen/internal/target/x86"
)

func oneFuncModule(fn *ir.Function) *ir.Module {
	m := ir.NewModule()
	m.AddFunc(fn)
	return m
}

func TestCompileIdentityAddEmitsLea(t *testing.T) {
	fn := ir.NewFunction("identity_add", ir.Public, ir.Int64, ir.Int64)
	fn.SetReturnType(ir.Int64)
	sum := fn.Append(ir.NewNode(ir.OpAdd, ir.Int64, true, &ir.Arg{Num: 0, Ty: ir.Int64}, &ir.Arg{Num: 1, Ty: ir.Int64}))
	fn.Append(ir.NewNode(ir.OpRet, ir.Int64, false, ir.RefOf(sum)))

	comp, err := compiler.Compile(oneFuncModule(fn), compiler.Options{Target: target.X86})
	require.NoError(t, err)
	require.Len(t, comp.Funcs, 1)
	insts := comp.Funcs[0].Insts
	require.Len(t, insts, 2)
	assert.Equal(t, "lea", insts[0].Opcode)
	assert.Equal(t, "ret", insts[1].Opcode)
}

func TestCompileReturnOfSingleArgument(t *testing.T) {
	fn := ir.NewFunction("ret_arg", ir.Public, ir.Int64)
	fn.SetReturnType(ir.Int64)
	fn.Append(ir.NewNode(ir.OpRet, ir.Int64, false, &ir.Arg{Num: 0, Ty: ir.Int64}))

	comp, err := compiler.Compile(oneFuncModule(fn), compiler.Options{Target: target.X86})
	require.NoError(t, err)
	insts := comp.Funcs[0].Insts
	require.Len(t, insts, 2)
	assert.Equal(t, "mov", insts[0].Opcode)
	assert.Equal(t, "ret", insts[1].Opcode)
}

func TestCompileStackPointerIntrinsic(t *testing.T) {
	fn := ir.NewFunction("get_sp", ir.Public)
	fn.SetReturnType(ir.Int64)
	sp := fn.Append(ir.NewIntrinsic(ir.GetStackPointer, ir.Int64))
	fn.Append(ir.NewNode(ir.OpRet, ir.Int64, false, ir.RefOf(sp)))

	comp, err := compiler.Compile(oneFuncModule(fn), compiler.Options{Target: target.X86})
	require.NoError(t, err)
	insts := comp.Funcs[0].Insts
	require.Len(t, insts, 2)
	assert.Equal(t, "mov", insts[0].Opcode)
	assert.Equal(t, "ret", insts[1].Opcode)
}

func TestCompileDeadAddEliminatedMatchesScenarioTwo(t *testing.T) {
	withDeadAdd := ir.NewFunction("dead_add", ir.Public, ir.Int64, ir.Int64)
	withDeadAdd.SetReturnType(ir.Int64)
	withDeadAdd.Append(ir.NewNode(ir.OpAdd, ir.Int64, true, &ir.Arg{Num: 0, Ty: ir.Int64}, &ir.Arg{Num: 1, Ty: ir.Int64}))
	withDeadAdd.Append(ir.NewNode(ir.OpRet, ir.Int64, false, &ir.Arg{Num: 0, Ty: ir.Int64}))

	withoutDeadAdd := ir.NewFunction("ret_arg", ir.Public, ir.Int64)
	withoutDeadAdd.SetReturnType(ir.Int64)
	withoutDeadAdd.Append(ir.NewNode(ir.OpRet, ir.Int64, false, &ir.Arg{Num: 0, Ty: ir.Int64}))

	a, err := compiler.Compile(oneFuncModule(withDeadAdd), compiler.Options{Target: target.X86})
	require.NoError(t, err)
	b, err := compiler.Compile(oneFuncModule(withoutDeadAdd), compiler.Options{Target: target.X86})
	require.NoError(t, err)

	require.Equal(t, len(b.Funcs[0].Insts), len(a.Funcs[0].Insts))
	for i := range a.Funcs[0].Insts {
		assert.Equal(t, b.Funcs[0].Insts[i].Opcode, a.Funcs[0].Insts[i].Opcode)
	}
}

func TestCompileIdentityAddOnAarch64(t *testing.T) {
	fn := ir.NewFunction("identity_add", ir.Public, ir.Int64, ir.Int64)
	fn.SetReturnType(ir.Int64)
	sum := fn.Append(ir.NewNode(ir.OpAdd, ir.Int64, true, &ir.Arg{Num: 0, Ty: ir.Int64}, &ir.Arg{Num: 1, Ty: ir.Int64}))
	fn.Append(ir.NewNode(ir.OpRet, ir.Int64, false, ir.RefOf(sum)))

	comp, err := compiler.Compile(oneFuncModule(fn), compiler.Options{Target: target.Aarch64})
	require.NoError(t, err)
	insts := comp.Funcs[0].Insts
	require.Len(t, insts, 2)
	assert.Equal(t, "add", insts[0].Opcode)
	assert.Equal(t, "ret", insts[1].Opcode)
}

func TestCompileUnknownTargetIsInvalidTarget(t *testing.T) {
	fn := ir.NewFunction("f", ir.Public)
	fn.SetReturnType(ir.Int64)
	fn.Append(ir.NewNode(ir.OpRet, ir.Int64, false, &ir.ConstNum{Num: 0, Ty: ir.Int64}))

	_, err := compiler.Compile(oneFuncModule(fn), compiler.Options{Target: target.Arch(99)})
	require.Error(t, err)
}

func TestCompileIdentityAddOnRiscv64(t *testing.T) {
	fn := ir.NewFunction("identity_add", ir.Public, ir.Int64, ir.Int64)
	fn.SetReturnType(ir.Int64)
	sum := fn.Append(ir.NewNode(ir.OpAdd, ir.Int64, true, &ir.Arg{Num: 0, Ty: ir.Int64}, &ir.Arg{Num: 1, Ty: ir.Int64}))
	fn.Append(ir.NewNode(ir.OpRet, ir.Int64, false, ir.RefOf(sum)))

	comp, err := compiler.Compile(oneFuncModule(fn), compiler.Options{Target: target.Riscv64})
	require.NoError(t, err)
	insts := comp.Funcs[0].Insts
	require.Len(t, insts, 2)
	assert.Equal(t, "add", insts[0].Opcode)
	assert.Equal(t, "ret", insts[1].Opcode)
}

func TestDecompileRoundTripsIdentityAdd(t *testing.T) {
	fn := ir.NewFunction("identity_add", ir.Public, ir.Int64, ir.Int64)
	fn.SetReturnType(ir.Int64)
	sum := fn.Append(ir.NewNode(ir.OpAdd, ir.Int64, true, &ir.Arg{Num: 0, Ty: ir.Int64}, &ir.Arg{Num: 1, Ty: ir.Int64}))
	fn.Append(ir.NewNode(ir.OpRet, ir.Int64, false, ir.RefOf(sum)))

	comp, err := compiler.Compile(oneFuncModule(fn), compiler.Options{Target: target.X86})
	require.NoError(t, err)

	module, err := compiler.Decompile(comp, target.X86)
	require.NoError(t, err)
	require.Len(t, module.Funcs, 1)

	out := module.Funcs[0]
	require.Len(t, out.Args, 2)
	assert.Equal(t, ir.Int64, out.Args[0])
	assert.Equal(t, ir.Int64, out.Args[1])
	assert.Equal(t, ir.Int64, out.ReturnType())
	require.Len(t, out.Body, 2)
	assert.Equal(t, ir.OpAdd, out.Body[0].Opcode)
	assert.Equal(t, ir.OpRet, out.Body[1].Opcode)
}
