// Package x86 implements the x86-64 System V backend: register file,
// calling convention, lowering/disassembly pattern tables, and the
// textual asm printer hooks, registered against internal/target at
// package init time.
package x86

// Register ids follow the architecture's own encoding order (rax=0 ...
// r15=15), the same "use the ISA's own numbering" approach the teacher
// takes for its opcode tables, so RegisterName is a flat lookup rather
// than a remapped one.
const (
	RAX = iota
	RCX
	RDX
	RBX
	RSP
	RBP
	RSI
	RDI
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
)

var registerNames = [...]string{
	RAX: "rax", RCX: "rcx", RDX: "rdx", RBX: "rbx",
	RSP: "rsp", RBP: "rbp", RSI: "rsi", RDI: "rdi",
	R8: "r8", R9: "r9", R10: "r10", R11: "r11",
	R12: "r12", R13: "r13", R14: "r14", R15: "r15",
}

// allGPR lists every general-purpose register except rsp, in the
// allocator's pop order: the return-value register first (it is never an
// argument register, so the common zero/one-argument case never collides
// with a live argument), then caller-saved scratch registers, then
// callee-saved registers, and the argument-passing registers last since
// those are the ones most likely to still be live when a node's output is
// allocated.
var allGPR = []int{RAX, R10, R11, RBX, RBP, R12, R13, R14, R15, RDI, RSI, RCX, RDX, R8, R9}

var callerSavedGPR = []int{RAX, RCX, RDX, RSI, RDI, R8, R9, R10, R11}

var calleeSavedGPR = []int{RBX, RBP, R12, R13, R14, R15}

// argRegs is the literal System V-labelled order spec.md §4.6 names for
// this core: RDI, RSI, RCX, RDX, R8, R9.
var argRegs = []int{RDI, RSI, RCX, RDX, R8, R9}
