// Package printer renders an asm.Compilation to the textual assembly
// spec.md §4.6 describes: a single code-section header, one global
// directive per public function, a label per function, one instruction
// per line in the backend's own operand syntax, and a constant-pool
// label per Constant.
package printer

import (
	"fmt"
	"strings"

	"kodegen/internal/asm"
	"kodegen/internal/ir"
	"kodegen/internal/target"
)

// printer accumulates output lines the way the teacher's own IR printer
// builds text: small write/writeLine helpers over a strings.Builder
// rather than repeated Sprintf concatenation.
type printer struct {
	out     strings.Builder
	backend target.Backend
}

func (p *printer) writeLine(s string) {
	p.out.WriteString(s)
	p.out.WriteByte('\n')
}

func (p *printer) write(format string, args ...any) {
	p.writeLine(fmt.Sprintf(format, args...))
}

// Print renders comp using backend's operand text forms.
func Print(comp *asm.Compilation, backend target.Backend) string {
	p := &printer{backend: backend}
	p.writeLine(".text")

	for _, fn := range comp.Funcs {
		if fn.Visibility == ir.Public {
			p.write("%s %s", backend.GlobalDirective(), fn.Name)
		}
	}

	for _, fn := range comp.Funcs {
		p.printFunc(fn)
	}

	return p.out.String()
}

func (p *printer) printFunc(fn asm.FuncAsm) {
	p.write("%s:", fn.Name)

	for i, inst := range fn.Insts {
		if i < len(fn.MetaInsts) && fn.MetaInsts[i] != "" {
			p.write("    # %s", fn.MetaInsts[i])
		}
		p.write("    %s", p.renderInst(inst))
	}

	for _, c := range fn.Constants {
		p.write("c%d:", c.ID)
		p.write("    .byte %s", byteList(c.Bytes))
	}
}

func (p *printer) renderInst(inst asm.AssemblyInst) string {
	if len(inst.Ops) == 0 {
		return inst.Opcode
	}
	// lea's address-form operand (out, [in1 + in2]) isn't a plain
	// comma-separated operand list like every other mnemonic here —
	// the x86 "otherwise" Add pattern relies on this literal bracket
	// syntax (spec.md §8 scenario 1: "lea rax, [rdi + rsi]").
	if inst.Opcode == "lea" && len(inst.Ops) == 3 {
		out := p.renderAllocation(inst.Ops[0])
		in1 := p.renderAllocation(inst.Ops[1])
		in2 := p.renderAllocation(inst.Ops[2])
		return fmt.Sprintf("lea %s, [%s + %s]", out, in1, in2)
	}
	parts := make([]string, len(inst.Ops))
	for i, op := range inst.Ops {
		parts[i] = p.renderAllocation(op)
	}
	return inst.Opcode + " " + strings.Join(parts, ", ")
}

func (p *printer) renderAllocation(alloc ir.Allocation) string {
	switch a := alloc.(type) {
	case ir.Register:
		return p.backend.RegisterName(a.ID)
	case ir.Imm:
		return p.backend.ImmediateText(a.Value)
	case ir.Stack:
		return p.backend.StackOperandText(stackByteOffset(a, p.backend))
	case ir.ConstUse:
		return fmt.Sprintf("c%d", a.ID)
	default:
		return "?"
	}
}

// stackByteOffset derives a Stack allocation's byte offset instead of a
// hard-coded width, per spec.md §9: a non-negative logical slot is a
// callee-frame spill slot (slot * word size * stack alignment, below the
// return address); a negative slot is a caller-frame stack argument,
// addressed upward from the return address in word-size increments.
func stackByteOffset(s ir.Stack, backend target.Backend) int {
	if s.Slot >= 0 {
		return s.Slot * backend.WordSize() * backend.StackAlignment()
	}
	return -s.Slot * backend.WordSize()
}

func byteList(bytes []byte) string {
	parts := make([]string, len(bytes))
	for i, b := range bytes {
		parts[i] = fmt.Sprintf("0x%02x", b)
	}
	return strings.Join(parts, ", ")
}
