package pattern

import "kodegen/internal/ir"

// SelectPattern is a lowering pattern: one IR opcode, an ordered list of
// input-kind predicates, an optional output-kind predicate, zero or more
// conditions, and the assembly templates it expands to on a match.
type SelectPattern struct {
	Opcode     ir.IrOpcode
	Intrinsic  *ir.IntrinsicKind // non-nil narrows OpIntrinsicCall to one kind
	Inputs     []OperandKind
	Output     *OperandKind // nil means the node must have HasOut == false
	Conditions []Condition
	Templates  []Template
}

// Matches reports whether node satisfies every predicate and condition of
// this pattern.
func (p *SelectPattern) Matches(node *ir.AllocatedIrNode) bool {
	if node.Opcode != p.Opcode {
		return false
	}
	if p.Opcode == ir.OpIntrinsicCall && p.Intrinsic != nil && *p.Intrinsic != node.Intrinsic {
		return false
	}
	if len(node.Ops) != len(p.Inputs) {
		return false
	}
	for i, k := range p.Inputs {
		if !k.Match(node.Ops[i]) {
			return false
		}
	}
	if p.Output != nil {
		if !node.HasOut || !p.Output.Match(node.Alloc) {
			return false
		}
	} else if node.HasOut {
		return false
	}
	for _, cond := range p.Conditions {
		if !cond(node.Ops, node.Alloc, node.HasOut) {
			return false
		}
	}
	return true
}

// SelectFirst tries each pattern in table in order and returns the first
// match, mirroring spec.md §4.4's "first match wins" authoring contract:
// callers must order specific patterns before general ones.
func SelectFirst(table []SelectPattern, node *ir.AllocatedIrNode) (*SelectPattern, bool) {
	for i := range table {
		if table[i].Matches(node) {
			return &table[i], true
		}
	}
	return nil, false
}
