// Package lifetime implements the "dropper" — the annotator that rewrites
// a DCE'd function's operand list so the last reference to any produced
// value is wrapped in an ir.Drop. Everything downstream (the register
// allocator) treats a Drop as permission to recycle the value's storage
// once the instruction holding it has executed.
package lifetime

import "kodegen/internal/ir"

// Annotate walks fn (which must already have had DCE applied) and returns
// a new function whose operand slots carry ir.Drop wrappers on exactly the
// last consumer of every produced value, in program order.
//
// The algorithm is the two-pass count-then-rewrite walk spec.md §4.2
// specifies: first count every operand slot that references a given node,
// then walk forward decrementing that count, replacing an operand with a
// Drop the moment its count reaches zero.
func Annotate(fn *ir.Function) *ir.Function {
	clone := ir.CloneFunction(fn)

	remaining := countReferences(clone.Body)

	for _, n := range clone.Body {
		for i, op := range n.Ops {
			target := ir.OutNode(op)
			if target == nil {
				continue
			}
			remaining[target]--
			if remaining[target] == 0 {
				n.Ops[i] = &ir.Drop{Inner: op}
			}
		}
	}

	return clone
}

func countReferences(body []*ir.IrNode) map[*ir.IrNode]int {
	counts := make(map[*ir.IrNode]int, len(body))
	for _, n := range body {
		for _, op := range n.Ops {
			if target := ir.OutNode(op); target != nil {
				counts[target]++
			}
		}
	}
	return counts
}
