package decompile

import "kodegen/internal/ir"

// ExtractTypes scans fn's de-allocated body and fills in its Args and Ret
// fields, per spec.md §4.7 step 3: the largest argument index referenced
// sets the arity, every type encountered on an argument propagates to its
// slot, and the return type is the type of the operand passed to Ret.
func ExtractTypes(fn *ir.Function) *ir.Function {
	arity := 0
	types := make(map[int]ir.TypeMetadata)

	for _, n := range fn.Body {
		for _, op := range n.Ops {
			arg, ok := op.(*ir.Arg)
			if !ok {
				continue
			}
			if arg.Num+1 > arity {
				arity = arg.Num + 1
			}
			types[arg.Num] = arg.Ty
		}
		if n.Opcode == ir.OpRet && len(n.Ops) > 0 {
			fn.SetReturnType(ir.TypeOf(n.Ops[0]))
		}
	}

	args := make([]ir.TypeMetadata, arity)
	for i := range args {
		if ty, ok := types[i]; ok {
			args[i] = ty
		} else {
			args[i] = ir.Int64
		}
	}
	fn.Args = args

	return fn
}
