package riscv64

import (
	"fmt"

	"kodegen/internal/ir"
	"kodegen/internal/target"
)

// Backend is the RISC-V64 target.Backend implementation.
type Backend struct{}

func (Backend) Name() string      { return "riscv64" }
func (Backend) Arch() target.Arch { return target.Riscv64 }

func (Backend) AllGPR() []int         { return append([]int(nil), allGPR...) }
func (Backend) CallerSavedGPR() []int { return append([]int(nil), callerSavedGPR...) }
func (Backend) CalleeSavedGPR() []int { return append([]int(nil), calleeSavedGPR...) }

func (Backend) StackPointerReg() int { return SP }
func (Backend) ReturnValueReg() int  { return X10 }

func (Backend) ArgLocation(index int, ty ir.TypeMetadata) ir.Allocation {
	if index < len(argRegs) {
		return ir.Register{ID: argRegs[index], Ty: ty}
	}
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
	return fmt.Sprintf("x?%d", id)
}

func (Backend) ImmediateText(value int64) string {
	return fmt.Sprintf("%#x", value)
}

func (Backend) StackOperandText(byteOffset int) string {
	return fmt.Sprintf("%d(sp)", byteOffset)
}

func (Backend) GlobalDirective() string { return ".globl" }

func (Backend) MoveMnemonic() string { return "mv" }

func init() {
	target.Register(Backend{})
}
