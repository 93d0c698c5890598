// Package decompile implements the inverse of compilation (spec.md
// §4.7): disassembling a backend's emitted AssemblyInst stream back into
// AllocatedIrNodes, de-allocating those into plain IrNodes, and
// extracting the reconstructed function's argument/return types.
package decompile

import (
	"kodegen/internal/asm"
	"kodegen/internal/errors"
	"kodegen/internal/ir"
	"kodegen/internal/pattern"
	"kodegen/internal/target"
)

// Disassemble repeatedly matches backend's disassembly pattern table
// against the head of insts, advancing by however many instructions each
// match consumed, until the stream is exhausted.
func Disassemble(function string, insts []asm.AssemblyInst, backend target.Backend) ([]*ir.AllocatedIrNode, error) {
	if len(insts) == 0 {
		return nil, errors.EmptyFunction(function)
	}

	table := backend.DisasmTable()
	var nodes []*ir.AllocatedIrNode
	remaining := insts

	for len(remaining) > 0 {
		node, n, ok := pattern.MatchLongestFirst(table, remaining)
		if !ok {
			return nil, errors.UnsupportedInstruction(function, backend.Name(), len(insts)-len(remaining), remaining[0].Opcode)
		}
		nodes = append(nodes, node)
		remaining = remaining[n:]
	}

	return nodes, nil
}
