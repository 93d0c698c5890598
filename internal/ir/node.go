package ir

import "fmt"

// IrNode is one value-producing (or control-critical) operation in a
// function's linear body. HasOut is true iff the node produces a value
// that later operands may reference through an Out operand; a node with
// HasOut == false (Ret) must never appear inside an Out.
type IrNode struct {
	Opcode    IrOpcode
	Intrinsic IntrinsicKind // meaningful only when Opcode == OpIntrinsicCall
	Ops       []IrOperand
	HasOut    bool
	Ty        *TypeMetadata
}

func (n *IrNode) String() string {
	parts := make([]string, len(n.Ops))
	for i, op := range n.Ops {
		parts[i] = op.String()
	}
	op := n.Opcode.String()
	if n.Opcode == OpIntrinsicCall {
		op = fmt.Sprintf("intrinsic_call(%s)", n.Intrinsic)
	}
	out := ""
	if n.HasOut {
		out = fmt.Sprintf("%%%p = ", n)
	}
	return fmt.Sprintf("%s%s(%v)", out, op, parts)
}

// TypeOf returns the node's declared type, or Int64 if unset (the only
// type the current core supports).
func (n *IrNode) TypeOf() TypeMetadata {
	if n.Ty == nil {
		return Int64
	}
	return *n.Ty
}

// NewNode is a small constructor used by tests to build IrNodes without
// clients needing to reach into every field. It is
// not the IR builder API spec.md treats as an out-of-scope collaborator —
// it exists purely so this module's own passes and tests have literal IR
// to exercise, the same role kanso's test helpers play for its own IR
// (see internal/ir/ir_test.go in the teacher).
func NewNode(opcode IrOpcode, ty TypeMetadata, hasOut bool, ops ...IrOperand) *IrNode {
	t := ty
	return &IrNode{Opcode: opcode, Ops: ops, HasOut: hasOut, Ty: &t}
}

// NewIntrinsic builds an IntrinsicCall node of the given kind.
func NewIntrinsic(kind IntrinsicKind, ty TypeMetadata) *IrNode {
	t := ty
	return &IrNode{Opcode: OpIntrinsicCall, Intrinsic: kind, HasOut: true, Ty: &t}
}

// RefOf returns an Out operand referencing node n, the idiomatic way to
// pass n's value as an operand of a later node.
func RefOf(n *IrNode) *Out {
	return &Out{Node: n}
}

// Function represents one compilable unit: a name, an optional return
// type, a flat parameter list, a linear IR body in execution order, and a
// visibility that decides whether the emitted assembly gets a global
// directive.
type Function struct {
	Name       string
	Ret        *TypeMetadata
	Args       []TypeMetadata
	Body       []*IrNode
	Visibility Visibility
}

// NewFunction creates an empty function ready to have nodes appended via
// Append.
func NewFunction(name string, visibility Visibility, args ...TypeMetadata) *Function {
	return &Function{Name: name, Args: args, Visibility: visibility}
}

// Append adds a node to the end of the function body and returns it, so
// callers can chain construction: `ret := fn.Append(ir.NewNode(...))`.
func (f *Function) Append(n *IrNode) *IrNode {
	f.Body = append(f.Body, n)
	return n
}

// SetReturnType records the function's return type.
func (f *Function) SetReturnType(ty TypeMetadata) {
	t := ty
	f.Ret = &t
}

// ReturnType returns the function's return type, defaulting to Int64 when
// unset.
func (f *Function) ReturnType() TypeMetadata {
	if f.Ret == nil {
		return Int64
	}
	return *f.Ret
}

// Module is a compilation unit: an ordered set of functions, built
// imperatively and compiled once per target. Compiling a Module does not
// mutate its IR — the pipeline clones each function before running DCE
// (see CloneFunction).
type Module struct {
	Funcs []*Function
}

// NewModule creates an empty module.
func NewModule() *Module {
	return &Module{}
}

// AddFunc appends a function to the module and returns it.
func (m *Module) AddFunc(f *Function) *Function {
	m.Funcs = append(m.Funcs, f)
	return f
}
