// Package arm64 implements the AArch64 backend: register file, calling
// convention, lowering/disassembly pattern tables, and the asm printer
// hooks, registered against internal/target at package init time.
package arm64

// Register ids 0-28 are x0-x28; sp is a separate pseudo-id since it is
// never a general-purpose allocation target. x29 (frame pointer) and x30
// (link register) are excluded from the general-purpose set this core
// allocates from.
const (
	X0 = iota
	X1
	X2
	X3
	X4
	X5
	X6
	X7
	X8
	X9
	X10
	X11
	X12
	X13
	X14
	X15
	X16
	X17
	X18
	X19
	X20
	X21
	X22
	X23
	X24
	X25
	X26
	X27
	X28
)

const SP = 32

var registerNames = [...]string{
	X0: "x0", X1: "x1", X2: "x2", X3: "x3", X4: "x4", X5: "x5", X6: "x6", X7: "x7",
	X8: "x8", X9: "x9", X10: "x10", X11: "x11", X12: "x12", X13: "x13", X14: "x14", X15: "x15",
	X16: "x16", X17: "x17", X18: "x18", X19: "x19", X20: "x20", X21: "x21", X22: "x22", X23: "x23",
	X24: "x24", X25: "x25", X26: "x26", X27: "x27", X28: "x28",
}

// allGPR is the allocator's pop order: the return-value register x0
// first, so the first value a function produces lands where Ret reads
// it, then callee-saved registers, then non-argument caller-saved
// temporaries, and the remaining argument registers x1-x7 last. x0 is
// also argument register 0, so that first value takes x0 even when
// argument 0 is read again later.
var allGPR = []int{
	X0,
	X19, X20, X21, X22, X23, X24, X25, X26, X27, X28,
	X9, X10, X11, X12, X13, X14, X15, X16, X17,
	X1, X2, X3, X4, X5, X6, X7,
}

var callerSavedGPR = []int{X0, X1, X2, X3, X4, X5, X6, X7, X9, X10, X11, X12, X13, X14, X15, X16, X17}

var calleeSavedGPR = []int{X19, X20, X21, X22, X23, X24, X25, X26, X27, X28}

// argRegs is X0...X7, per spec.md §4.6.
var argRegs = []int{X0, X1, X2, X3, X4, X5, X6, X7}
