// Package riscv64 implements the RISC-V64 backend: register file,
// calling convention, lowering/disassembly pattern tables, and the asm
// printer hooks, registered against internal/target at package init
// time.
package riscv64

// Register ids follow the raw x-register numbering (x0-x31); zero (x0),
// ra (x1), sp (x2), gp (x3) and tp (x4) are excluded from the
// general-purpose set this core allocates from.
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
	X29
	X30
	X31
)

const (
	RA = X1
	SP = X2
	GP = X3
	TP = X4
)

var registerNames = [...]string{
	X0: "zero", X1: "ra", X2: "sp", X3: "gp", X4: "tp",
	X5: "t0", X6: "t1", X7: "t2",
	X8: "s0", X9: "s1",
	X10: "a0", X11: "a1", X12: "a2", X13: "a3", X14: "a4", X15: "a5", X16: "a6", X17: "a7",
	X18: "s2", X19: "s3", X20: "s4", X21: "s5", X22: "s6", X23: "s7", X24: "s8", X25: "s9", X26: "s10", X27: "s11",
	X28: "t3", X29: "t4", X30: "t5", X31: "t6",
}

// allGPR is the allocator's pop order: the return-value register a0
// first, as on AArch64, then saved registers, then non-argument
// temporaries, and the remaining argument registers a1-a7 last. a0 is
// also argument register 0, so the first value a function produces takes
// a0 even when argument 0 is read again later.
var allGPR = []int{
	X10,
	X8, X9, X18, X19, X20, X21, X22, X23, X24, X25, X26, X27,
	X5, X6, X7, X28, X29, X30, X31,
	X11, X12, X13, X14, X15, X16, X17,
}

var callerSavedGPR = []int{X5, X6, X7, X10, X11, X12, X13, X14, X15, X16, X17, X28, X29, X30, X31}

var calleeSavedGPR = []int{X8, X9, X18, X19, X20, X21, X22, X23, X24, X25, X26, X27}

// argRegs is A0...A7 (x10-x17), per spec.md §4.6.
var argRegs = []int{X10, X11, X12, X13, X14, X15, X16, X17}
