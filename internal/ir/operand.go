package ir

import "fmt"

// IrOperand is a tagged reference to something an IrNode reads: a function
// argument, an inline constant, the output of an earlier node (shared by
// identity), or a Drop wrapper marking the last use of a shared value.
//
// IrOperand is a closed sum type, following the same marker-interface shape
// the teacher uses for its AST node hierarchy (see ast.Expr): each variant
// implements isIrOperand and nothing else is allowed to.
type IrOperand interface {
	fmt.Stringer
	isIrOperand()
}

// Arg references the n-th parameter of the enclosing function.
type Arg struct {
	Num int
	Ty  TypeMetadata
}

func (*Arg) isIrOperand() {}

func (a *Arg) String() string {
	return fmt.Sprintf("arg%d", a.Num)
}

// ConstNum is an inline integer literal.
type ConstNum struct {
	Num int64
	Ty  TypeMetadata
}

func (*ConstNum) isIrOperand() {}

func (c *ConstNum) String() string {
	return fmt.Sprintf("%d", c.Num)
}

// Out is a shared reference to another node's output. Any number of
// operands may hold an Out pointing at the same *IrNode; identity of the
// pointee, not structural equality, is what makes them "the same value".
type Out struct {
	Node *IrNode
}

func (*Out) isIrOperand() {}

func (o *Out) String() string {
	return fmt.Sprintf("%%%p", o.Node)
}

// Drop wraps an operand whose use is the last use of the referenced value.
// Downstream passes (the register allocator) treat a Drop as permission to
// recycle the value's backing storage immediately after the instruction
// that holds it executes.
type Drop struct {
	Inner IrOperand
}

func (*Drop) isIrOperand() {}

func (d *Drop) String() string {
	return "drop(" + d.Inner.String() + ")"
}

// Unwrap strips a Drop wrapper if present, returning the inner operand and
// whether a Drop was present.
func Unwrap(op IrOperand) (inner IrOperand, dropped bool) {
	if d, ok := op.(*Drop); ok {
		return d.Inner, true
	}
	return op, false
}

// OutNode returns the node an operand (bare or Drop-wrapped) references,
// or nil if the operand is not an Out (e.g. an Arg or ConstNum).
func OutNode(op IrOperand) *IrNode {
	inner, _ := Unwrap(op)
	if out, ok := inner.(*Out); ok {
		return out.Node
	}
	return nil
}

// TypeOf returns the TypeMetadata an operand carries, unwrapping a Drop
// and following an Out to its producing node's own type — used by the
// decompiler's type extractor (spec.md §4.7 step 3).
func TypeOf(op IrOperand) TypeMetadata {
	inner, _ := Unwrap(op)
	switch o := inner.(type) {
	case *Arg:
		return o.Ty
	case *ConstNum:
		return o.Ty
	case *Out:
		return o.Node.TypeOf()
	default:
		return Int64
	}
}
