// Package regalloc implements the linear, single-pass register/spill
// allocator of spec.md §4.3: one left-to-right walk over a DCE'd,
// lifetime-annotated function, binding every produced value and every
// argument use to a concrete ir.Allocation, with LIFO reuse of freed
// registers and stack slots.
package regalloc

import (
	"kodegen/internal/errors"
	"kodegen/internal/ir"
	"kodegen/internal/target"
)

// state carries the allocator's free lists and the value->allocation map
// across the single forward walk. Both free lists are simple LIFO stacks:
// the tail of the slice is the top.
type state struct {
	regFree    []int
	stackFree  []int
	nextSlot   int
	usedStack  bool
	valueAlloc map[*ir.IrNode]ir.Allocation
	backend    target.Backend
	fnName     string
}

// Allocate runs the linear allocator over fn (already DCE'd and
// lifetime-annotated) for the given backend, returning one
// AllocatedIrNode per IR node in program order and whether any stack slot
// was issued.
func Allocate(fn *ir.Function, backend target.Backend) ([]*ir.AllocatedIrNode, bool, error) {
	s := &state{
		regFree:    reversed(backend.AllGPR()),
		valueAlloc: make(map[*ir.IrNode]ir.Allocation, len(fn.Body)),
		backend:    backend,
		fnName:     fn.Name,
	}

	out := make([]*ir.AllocatedIrNode, 0, len(fn.Body))

	for idx, n := range fn.Body {
		an := &ir.AllocatedIrNode{
			Opcode:    n.Opcode,
			Intrinsic: n.Intrinsic,
			HasOut:    n.HasOut,
			Ty:        n.TypeOf(),
		}

		if n.HasOut {
			alloc := s.allocLocation(n.TypeOf())
			s.valueAlloc[n] = alloc
			an.Alloc = alloc
		}

		an.Ops = make([]ir.Allocation, len(n.Ops))
		for i, op := range n.Ops {
			inner, dropped := ir.Unwrap(op)
			alloc, err := s.resolve(inner, idx)
			if err != nil {
				return nil, false, err
			}
			an.Ops[i] = alloc
			if dropped {
				s.free(alloc)
			}
		}

		out = append(out, an)
	}

	return out, s.usedStack, nil
}

// allocLocation issues the next free register, or failing that the next
// free (or freshly minted) stack slot.
func (s *state) allocLocation(ty ir.TypeMetadata) ir.Allocation {
	if id, ok := pop(&s.regFree); ok {
		return ir.Register{ID: id, Ty: ty}
	}
	if slot, ok := pop(&s.stackFree); ok {
		s.usedStack = true
		return ir.Stack{Slot: slot, Ty: ty}
	}
	slot := s.nextSlot
	s.nextSlot++
	s.usedStack = true
	return ir.Stack{Slot: slot, Ty: ty}
}

// free returns alloc to the appropriate LIFO free list — registers to the
// register list, stack slots to the stack list — making it immediately
// reclaimable by a later node, per spec.md §4.3 step 4d.
func (s *state) free(alloc ir.Allocation) {
	switch a := alloc.(type) {
	case ir.Register:
		s.regFree = append(s.regFree, a.ID)
	case ir.Stack:
		s.stackFree = append(s.stackFree, a.Slot)
	default:
		// Imm/ConstUse never appear here: the annotator only Drop-wraps
		// Out operands, and this pass never produces a ConstUse.
	}
}

// resolve maps an (unwrapped) operand to a concrete Allocation: an Arg
// resolves through the backend's calling convention, a ConstNum becomes
// an immediate, and an Out looks up the value map — a miss is a dangling
// reference and therefore fatal (spec.md §4.3 "Failure").
func (s *state) resolve(op ir.IrOperand, nodeIdx int) (ir.Allocation, error) {
	switch o := op.(type) {
	case *ir.Arg:
		return s.backend.ArgLocation(o.Num, o.Ty), nil
	case *ir.ConstNum:
		return ir.Imm{Value: o.Num, Ty: o.Ty}, nil
	case *ir.Out:
		alloc, ok := s.valueAlloc[o.Node]
		if !ok {
			return nil, errors.UnresolvedOperand(s.fnName, nodeIdx)
		}
		return alloc, nil
	default:
		return nil, errors.UnresolvedOperand(s.fnName, nodeIdx)
	}
}

// pop removes and returns the top (last) element of a LIFO stack.
func pop(stack *[]int) (int, bool) {
	s := *stack
	if len(s) == 0 {
		return 0, false
	}
	top := s[len(s)-1]
	*stack = s[:len(s)-1]
	return top, true
}

// reversed returns ids with order reversed, so that pushing it onto a
// slice-as-stack and popping from the tail yields ids[0] first — i.e. the
// backend's declared register order is the allocator's pop order.
func reversed(ids []int) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}
