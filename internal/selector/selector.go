// Package selector implements the pattern-driven instruction selector of
// spec.md §4.4: given a function's allocated IR and a target backend,
// lower each node to the assembly instructions its first matching
// pattern expands to.
package selector

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"kodegen/internal/asm"
	"kodegen/internal/errors"
	"kodegen/internal/ir"
	"kodegen/internal/pattern"
	"kodegen/internal/target"
)

// Options configures optional selector behavior.
type Options struct {
	// RichComments, when set, fills MetaInsts (parallel to the returned
	// instruction slice) with "node <index>: " plus a short description
	// of the source node (its opcode, or intrinsic label, and its output
	// allocation) on the first instruction each node expanded to, and ""
	// on every instruction after it within that same node's expansion.
	RichComments bool
}

// Select lowers every node of nodes (in program order) using backend's
// lowering pattern table, returning the flat instruction stream and,
// when Options.RichComments is set, a comment slice of the same length.
func Select(function string, nodes []*ir.AllocatedIrNode, backend target.Backend, opts Options) ([]asm.AssemblyInst, []string, error) {
	table := backend.SelectTable()
	var insts []asm.AssemblyInst
	var comments []string

	for idx, node := range nodes {
		p, ok := pattern.SelectFirst(table, node)
		if !ok {
			return nil, nil, errors.UnsupportedOpcode(function, backend.Name(), idx, stringerOf(node))
		}
		expanded := elideSelfMoves(p.Expand(node), backend)
		insts = append(insts, expanded...)
		if opts.RichComments {
			for i := range expanded {
				if i == 0 {
					comments = append(comments, fmt.Sprintf("node %d: %s", idx, describeNode(node)))
				} else {
					comments = append(comments, "")
				}
			}
		}
	}

	return insts, comments, nil
}

// elideSelfMoves drops any emitted plain-move instruction whose two
// operands already resolved to the same Allocation — a machine-code-level
// dead-code elimination mirroring the original's two-tier DCE (IR-level
// in internal/opt, lowering-artifact-level here), narrower than a general
// optimization pass since it only ever removes an instruction a lowering
// pattern itself introduced, never reorders or folds real arithmetic.
func elideSelfMoves(insts []asm.AssemblyInst, backend target.Backend) []asm.AssemblyInst {
	mnemonic := backend.MoveMnemonic()
	kept := insts[:0:0]
	for _, inst := range insts {
		if inst.Opcode == mnemonic && len(inst.Ops) == 2 && inst.Ops[0] == inst.Ops[1] {
			continue
		}
		kept = append(kept, inst)
	}
	return kept
}

type nodeStringer struct{ node *ir.AllocatedIrNode }

func (n nodeStringer) String() string { return describeNode(n.node) }

func stringerOf(node *ir.AllocatedIrNode) fmt.Stringer { return nodeStringer{node} }

func describeNode(node *ir.AllocatedIrNode) string {
	op := node.Opcode.String()
	if node.Opcode == ir.OpIntrinsicCall {
		// Rich comments tag intrinsics with a SCREAMING_SNAKE label
		// (e.g. GET_STACK_POINTER) so they stand out against the
		// lowercase opcode mnemonics in a -v dump.
		op = strcase.ToScreamingSnake(node.Intrinsic.String())
	}
	if node.HasOut {
		return fmt.Sprintf("%s -> %s", op, node.Alloc)
	}
	return op
}
