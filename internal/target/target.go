// Package target describes the per-architecture capability set the
// allocator, selector, decompiler and printer all consume: register file,
// calling convention, lowering/disassembly pattern tables and operand
// text forms. Each concrete backend (internal/target/x86, arm64,
// riscv64) implements Backend and registers itself into the package-level
// map each backend's own init() populates — a plain keyed-map lookup in
// the same spirit as the teacher's TypeRegistry
// (internal/types/registry.go upstream: a name-keyed map populated by
// explicit Add* calls rather than struct literals), just populated via
// init() instead of an explicit constructor call, since there is no
// single call site here to thread a constructed registry through.
package target

import (
	"fmt"
	"sort"

	"kodegen/internal/ir"
	"kodegen/internal/pattern"
)

// Arch enumerates the supported target architectures.
type Arch int

const (
	X86 Arch = iota
	Aarch64
	Riscv64
)

func (a Arch) String() string {
	switch a {
	case X86:
		return "x86_64"
	case Aarch64:
		return "aarch64"
	case Riscv64:
		return "riscv64"
	default:
		return fmt.Sprintf("arch(%d)", int(a))
	}
}

// Backend is the capability set a target architecture provides to the
// allocator, selector and decompiler. Implementations live under
// internal/target/<arch> and are registered via Register at package init
// time.
type Backend interface {
	Name() string
	Arch() Arch

	// AllGPR is the general-purpose register set available to the
	// allocator, excluding the stack pointer, in a deterministic order.
	AllGPR() []int
	CallerSavedGPR() []int
	CalleeSavedGPR() []int

	StackPointerReg() int
	ReturnValueReg() int

	// ArgLocation returns the calling-convention location of the index'th
	// integer argument.
	ArgLocation(index int, ty ir.TypeMetadata) ir.Allocation

	// NumForArg is the inverse of ArgLocation, used by the decompiler's
	// de-allocator. ok is false if alloc does not correspond to any
	// argument-passing location.
	NumForArg(alloc ir.Allocation) (index int, ok bool)

	// WordSize is the target's natural word size in bytes, used to derive
	// spill-slot byte width instead of hard-coding it (spec.md §9).
	WordSize() int

	// StackAlignment is the alignment factor (in words) applied on top of
	// WordSize when the printer computes a stack slot's byte offset.
	StackAlignment() int

	// RegisterName renders a register id to its target-specific
	// assembly-text name (e.g. "rax", "x0", "a0").
	RegisterName(id int) string

	// ImmediateText renders an immediate value to its target-specific
	// literal form (e.g. "0x2a", "#0x2a").
	ImmediateText(value int64) string

	// StackOperandText renders a byte offset to the target's addressing
	// syntax (e.g. "[rsp + 16]", "[sp, #-16]!").
	StackOperandText(byteOffset int) string

	// GlobalDirective is the target's global-visibility directive
	// keyword (".global" or ".globl").
	GlobalDirective() string

	// MoveMnemonic is the target's plain register-to-register move
	// instruction ("mov", "mv"), used by the selector's machine-code-level
	// peephole to elide a self-move a lowering pattern produced.
	MoveMnemonic() string

	// SelectTable is this target's lowering pattern table (§4.4), tried
	// in declaration order by the selector.
	SelectTable() []pattern.SelectPattern

	// DisasmTable is this target's disassembly pattern table (§4.5),
	// pre-sorted longest-first by the backend itself.
	DisasmTable() []pattern.DisasmPattern
}

var registry = map[Arch]Backend{}

// Register installs a Backend under its architecture. Concrete backends
// call this from an init() function.
func Register(b Backend) {
	registry[b.Arch()] = b
}

// Lookup returns the registered Backend for arch, or ok=false if no
// backend has been registered — the caller should surface
// errors.InvalidTarget.
func Lookup(arch Arch) (Backend, bool) {
	b, ok := registry[arch]
	return b, ok
}

// Registered returns the set of currently registered architectures, in a
// deterministic order, useful for tests that iterate "every target".
func Registered() []Arch {
	out := make([]Arch, 0, len(registry))
	for a := range registry {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
