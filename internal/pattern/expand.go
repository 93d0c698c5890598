package pattern

import (
	"kodegen/internal/asm"
	"kodegen/internal/ir"
)

// Expand renders p's templates into concrete AssemblyInst values for a
// matched node, substituting In(i)/Out()/RegConst(id) template operands
// with the node's resolved allocations. Templates are emitted in
// declared order.
func (p *SelectPattern) Expand(node *ir.AllocatedIrNode) []asm.AssemblyInst {
	out := make([]asm.AssemblyInst, 0, len(p.Templates))
	for _, tpl := range p.Templates {
		out = append(out, asm.AssemblyInst{
			Opcode: tpl.Mnemonic,
			Ops:    resolveOperands(tpl.Operands, node.Ops, node.Alloc, regTyOf(node)),
		})
	}
	return out
}

func regTyOf(node *ir.AllocatedIrNode) ir.TypeMetadata {
	if node.HasOut {
		return node.Ty
	}
	if len(node.Ops) > 0 {
		return node.Ty
	}
	return ir.Int64
}

func resolveOperands(tplOps []TemplateOperand, ins []ir.Allocation, out ir.Allocation, ty ir.TypeMetadata) []ir.Allocation {
	resolved := make([]ir.Allocation, len(tplOps))
	for i, to := range tplOps {
		switch to.kind {
		case tplIn:
			resolved[i] = ins[to.idx]
		case tplOut, tplOutAliasIn:
			resolved[i] = out
		case tplRegConst:
			resolved[i] = ir.Register{ID: to.reg, Ty: ty}
		}
	}
	return resolved
}
