// Package opt implements dead-code elimination, the one IR-level
// optimization the core ships — every other optimization is explicitly
// out of scope (spec.md §1). Its shape (a named pass with an Apply method
// a pipeline can report progress for) is grounded on the teacher's
// OptimizationPipeline (internal/ir/optimizations.go upstream), minus the
// passes this domain doesn't have.
package opt

import "kodegen/internal/ir"

// DCE removes every node in fn whose value has no transitive consumer and
// that is not control-flow-critical. Node order is preserved among
// survivors. Running DCE twice is a no-op: once a node's consumers are all
// pruned, a second pass finds nothing new to prune.
func DCE(fn *ir.Function) *ir.Function {
	clone := ir.CloneFunction(fn)

	live := markLive(clone.Body)

	kept := clone.Body[:0:0]
	for _, n := range clone.Body {
		if live[n] {
			kept = append(kept, n)
		}
	}
	clone.Body = kept
	return clone
}

// markLive computes the transitive-closure liveness set: a node is live
// if it is control-flow-critical, or if it is referenced (directly or
// through a chain of otherwise-dead nodes) by a live node. This is the
// "safe re-derivation" spec.md §9 recommends over the source's untested
// use_count<=1 formula: remove iff use_count==0 and not critical.
func markLive(body []*ir.IrNode) map[*ir.IrNode]bool {
	live := make(map[*ir.IrNode]bool, len(body))
	var worklist []*ir.IrNode

	for _, n := range body {
		if n.Opcode.ControlFlowCritical() {
			if !live[n] {
				live[n] = true
				worklist = append(worklist, n)
			}
		}
	}

	for len(worklist) > 0 {
		n := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for _, op := range n.Ops {
			if target := ir.OutNode(op); target != nil && !live[target] {
				live[target] = true
				worklist = append(worklist, target)
			}
		}
	}

	return live
}

// Idempotent reports whether running DCE again on an already-DCE'd
// function would change anything. It is exposed for tests that assert the
// idempotence invariant (spec.md §8) without relying on deep-equality of
// cloned functions.
func Idempotent(fn *ir.Function) bool {
	return len(DCE(fn).Body) == len(fn.Body)
}
