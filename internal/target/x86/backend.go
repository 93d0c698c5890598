package x86

import (
	"fmt"

	"kodegen/internal/ir"
	"kodegen/internal/target"
)

// Backend is the x86-64 System V target.Backend implementation.
type Backend struct{}

func (Backend) Name() string      { return "x86_64" }
func (Backend) Arch() target.Arch { return target.X86 }

func (Backend) AllGPR() []int         { return append([]int(nil), allGPR...) }
func (Backend) CallerSavedGPR() []int { return append([]int(nil), callerSavedGPR...) }
func (Backend) CalleeSavedGPR() []int { return append([]int(nil), calleeSavedGPR...) }

func (Backend) StackPointerReg() int { return RSP }
func (Backend) ReturnValueReg() int  { return RAX }

// stackArgBase is the byte offset of the first stack-passed argument
// relative to rsp at function entry: one word for the return address
// pushed by call, replacing the source's unexplained magic constant.
func stackArgBase() int { return 8 }

func (Backend) ArgLocation(index int, ty ir.TypeMetadata) ir.Allocation {
	if index < len(argRegs) {
		return ir.Register{ID: argRegs[index], Ty: ty}
	}
	// Stack-passed arguments are addressed above the return address;
	// recorded as a negative logical slot so the printer (which also
	// renders the allocator's own non-negative spill slots) can tell the
	// two stack regions apart.
	return ir.Stack{Slot: -(index - len(argRegs) + 1), Ty: ty}
}

func (Backend) NumForArg(alloc ir.Allocation) (int, bool) {
	if r, ok := alloc.(ir.Register); ok {
		for i, id := range argRegs {
			if id == r.ID {
				return i, true
			}
		}
		return 0, false
	}
	if s, ok := alloc.(ir.Stack); ok && s.Slot < 0 {
		return -s.Slot - 1 + len(argRegs), true
	}
	return 0, false
}

func (Backend) WordSize() int       { return 8 }
func (Backend) StackAlignment() int { return 2 }

func (Backend) RegisterName(id int) string {
	if id >= 0 && id < len(registerNames) {
		return registerNames[id]
	}
	return fmt.Sprintf("r?%d", id)
}

func (Backend) ImmediateText(value int64) string {
	return fmt.Sprintf("%#x", value)
}

func (b Backend) StackOperandText(byteOffset int) string {
	if byteOffset < 0 {
		return fmt.Sprintf("[rsp - %d]", -byteOffset)
	}
	return fmt.Sprintf("[rsp + %d]", byteOffset)
}

func (Backend) GlobalDirective() string { return ".globl" }

func (Backend) MoveMnemonic() string { return "mov" }

func init() {
	target.Register(Backend{})
}
