package decompile

import (
	"fmt"

	"kodegen/internal/errors"
	"kodegen/internal/ir"
	"kodegen/internal/target"
)

// Deallocate walks a disassembled node sequence (in order) rebuilding
// plain IrNodes, per spec.md §4.7 step 2. It maintains a map from
// Allocation to the IrOperand that last wrote it, so a later node's use
// of that allocation resolves to a shared Out reference rather than a
// fresh argument.
func Deallocate(function string, nodes []*ir.AllocatedIrNode, backend target.Backend) (*ir.Function, error) {
	fn := ir.NewFunction(function, ir.Public)

	written := make(map[ir.Allocation]ir.IrOperand, len(nodes))

	for idx, an := range nodes {
		ops := make([]ir.IrOperand, 0, len(an.Ops))

		// Ret with no operands is a use of the return-value register that
		// never appeared as a literal operand in the matched instruction.
		if an.Opcode == ir.OpRet && !an.HasOut && len(an.Ops) == 0 {
			retAlloc := ir.Register{ID: backend.ReturnValueReg(), Ty: ir.Int64}
			op, err := resolveOperand(function, idx, retAlloc, written, backend)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		}

		for _, alloc := range an.Ops {
			op, err := resolveOperand(function, idx, alloc, written, backend)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		}

		if (an.Opcode == ir.OpAdd || an.Opcode == ir.OpSub) && len(ops) == 2 {
			if lhs, rhs := ir.TypeOf(ops[0]), ir.TypeOf(ops[1]); lhs != rhs {
				// Reconstructed from an instruction stream the allocator
				// never produced itself (hand-assembled or corrupted), so
				// the mismatch is reported with the underlying cause
				// preserved across the walk rather than just asserted.
				cause := fmt.Errorf("operand 0 resolved to %s, operand 1 to %s", lhs, rhs)
				return nil, errors.Wrap(errors.TypeMismatch(function, idx, lhs, rhs), cause)
			}
		}

		ty := an.Ty
		if !an.HasOut && len(ops) > 0 {
			ty = ir.TypeOf(ops[0])
		}

		node := &ir.IrNode{Opcode: an.Opcode, Intrinsic: an.Intrinsic, Ops: ops, HasOut: an.HasOut, Ty: &ty}
		fn.Append(node)

		if an.HasOut {
			written[an.Alloc] = ir.RefOf(node)
		}
	}

	return fn, nil
}

// resolveOperand maps one Allocation to the IrOperand it represents: the
// most recent writer if any node produced it, an inline constant if it is
// an Imm, or the k-th function argument via the backend's calling
// convention — in that priority order, per spec.md §4.7 step 2.
func resolveOperand(function string, nodeIdx int, alloc ir.Allocation, written map[ir.Allocation]ir.IrOperand, backend target.Backend) (ir.IrOperand, error) {
	if op, ok := written[alloc]; ok {
		return op, nil
	}
	if imm, ok := alloc.(ir.Imm); ok {
		return &ir.ConstNum{Num: imm.Value, Ty: imm.Ty}, nil
	}
	if k, ok := backend.NumForArg(alloc); ok {
		return &ir.Arg{Num: k, Ty: allocType(alloc)}, nil
	}
	return nil, errors.UnallocatedOperand(function, nodeIdx)
}

func allocType(alloc ir.Allocation) ir.TypeMetadata {
	switch a := alloc.(type) {
	case ir.Register:
		return a.Ty
	case ir.Stack:
		return a.Ty
	case ir.Imm:
		return a.Ty
	default:
		return ir.Int64
	}
}
