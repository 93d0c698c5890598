package pattern

import (
	"kodegen/internal/asm"
	"kodegen/internal/ir"
)

// DisasmPattern is the symmetric inverse of a SelectPattern: it matches a
// window of AssemblyInst against an ordered list of templates and, on
// success, produces an AllocatedIrNode.
type DisasmPattern struct {
	Opcode    ir.IrOpcode
	Intrinsic ir.IntrinsicKind
	Inputs    []OperandKind
	HasOutput bool
	Output    OperandKind
	Templates []Template
}

// Len is the number of assembly instructions this pattern consumes on a
// match — the longest-first ordering in MatchLongestFirst relies on it.
func (p *DisasmPattern) Len() int { return len(p.Templates) }

// TryMatch attempts to match p against insts[0:len(p.Templates)]. On
// success it returns the reconstructed node and the number of
// instructions consumed (always len(p.Templates)).
func (p *DisasmPattern) TryMatch(insts []asm.AssemblyInst) (*ir.AllocatedIrNode, int, bool) {
	if len(insts) < len(p.Templates) {
		return nil, 0, false
	}

	ins := make([]ir.Allocation, len(p.Inputs))
	inSet := make([]bool, len(p.Inputs))
	var out ir.Allocation
	outSet := false

	for ti, tpl := range p.Templates {
		actual := insts[ti]
		if actual.Opcode != tpl.Mnemonic {
			return nil, 0, false
		}
		if len(actual.Ops) != len(tpl.Operands) {
			return nil, 0, false
		}
		for oi, to := range tpl.Operands {
			av := actual.Ops[oi]
			switch to.kind {
			case tplRegConst:
				reg, ok := av.(ir.Register)
				if !ok || reg.ID != to.reg {
					return nil, 0, false
				}
			case tplIn:
				if to.idx >= len(p.Inputs) {
					return nil, 0, false
				}
				if !p.Inputs[to.idx].Match(av) {
					return nil, 0, false
				}
				if inSet[to.idx] {
					if ins[to.idx] != av {
						return nil, 0, false
					}
				} else {
					ins[to.idx] = av
					inSet[to.idx] = true
				}
			case tplOut:
				if !p.HasOutput || !p.Output.Match(av) {
					return nil, 0, false
				}
				if outSet {
					if out != av {
						return nil, 0, false
					}
				} else {
					out = av
					outSet = true
				}
			case tplOutAliasIn:
				if !p.HasOutput || !p.Output.Match(av) {
					return nil, 0, false
				}
				if to.idx >= len(p.Inputs) || !p.Inputs[to.idx].Match(av) {
					return nil, 0, false
				}
				if outSet && out != av {
					return nil, 0, false
				}
				out, outSet = av, true
				if inSet[to.idx] && ins[to.idx] != av {
					return nil, 0, false
				}
				ins[to.idx], inSet[to.idx] = av, true
			}
		}
	}

	for _, set := range inSet {
		if !set {
			return nil, 0, false
		}
	}
	if p.HasOutput && !outSet {
		return nil, 0, false
	}

	node := &ir.AllocatedIrNode{
		Opcode:    p.Opcode,
		Intrinsic: p.Intrinsic,
		Ops:       ins,
		HasOut:    p.HasOutput,
	}
	if p.HasOutput {
		node.Alloc = out
		if reg, ok := out.(ir.Register); ok {
			node.Ty = reg.Ty
		}
	}
	return node, len(p.Templates), true
}

// MatchLongestFirst tries table entries ordered by descending template
// count (the caller is expected to have pre-sorted table that way — see
// SortedByLength) so multi-instruction idioms match before the
// single-instruction prefixes they contain, per spec.md §4.5.
func MatchLongestFirst(table []DisasmPattern, insts []asm.AssemblyInst) (*ir.AllocatedIrNode, int, bool) {
	for i := range table {
		if node, n, ok := table[i].TryMatch(insts); ok {
			return node, n, true
		}
	}
	return nil, 0, false
}

// SortedByLength returns table ordered by descending pattern length,
// stable on ties (preserving the declared order among same-length
// patterns, the same "first match wins" discipline as selection).
func SortedByLength(table []DisasmPattern) []DisasmPattern {
	out := make([]DisasmPattern, len(table))
	copy(out, table)
	// simple stable insertion sort: tables are small (a handful of
	// patterns per opcode), so this avoids pulling in sort.SliceStable
	// for a three-or-four-element table while staying obviously stable.
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && out[j-1].Len() < out[j].Len() {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}
