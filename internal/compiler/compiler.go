// Package compiler is the public entry point spec.md §4.6 describes:
// wiring DCE, lifetime annotation, register allocation and instruction
// selection into Compile, and disassembly, de-allocation and type
// extraction into Decompile.
package compiler

import (
	"io"
	"os"

	"kodegen/internal/asm"
	"kodegen/internal/decompile"
	"kodegen/internal/diag"
	"kodegen/internal/errors"
	"kodegen/internal/ir"
	"kodegen/internal/lifetime"
	"kodegen/internal/opt"
	"kodegen/internal/regalloc"
	"kodegen/internal/selector"
	"kodegen/internal/target"
)

// Options configures one Compile call.
type Options struct {
	Target       target.Arch
	RichComments bool
	Verbose      bool
	// Out receives verbose narration; defaults to os.Stderr when Verbose
	// is set and Out is nil.
	Out io.Writer
}

func (o Options) narrator() *diag.Narrator {
	out := o.Out
	if out == nil {
		out = os.Stderr
	}
	return &diag.Narrator{Out: out, Enabled: o.Verbose}
}

// Compile runs the full pipeline over every function in module for the
// requested target, never returning a partial Compilation alongside an
// error: a CodegenError at any function replaces the whole result.
func Compile(module *ir.Module, opts Options) (*asm.Compilation, error) {
	backend, ok := target.Lookup(opts.Target)
	if !ok {
		return nil, errors.InvalidTarget(opts.Target.String())
	}

	n := opts.narrator()
	out := &asm.Compilation{TargetArch: backend.Name()}

	for _, fn := range module.Funcs {
		n.Pass("dce: " + fn.Name)
		deadCodeEliminated := opt.DCE(fn)
		n.Applied("dce", len(deadCodeEliminated.Body) != len(fn.Body))

		n.Pass("lifetime: " + fn.Name)
		annotated := lifetime.Annotate(deadCodeEliminated)

		n.Pass("regalloc: " + fn.Name)
		allocated, usedStack, err := regalloc.Allocate(annotated, backend)
		if err != nil {
			return nil, err
		}
		if usedStack {
			n.Spill(fn.Name, -1)
		}

		n.Pass("select: " + fn.Name)
		insts, comments, err := selector.Select(fn.Name, allocated, backend, selector.Options{RichComments: opts.RichComments})
		if err != nil {
			return nil, err
		}

		out.Funcs = append(out.Funcs, asm.FuncAsm{
			Name:       fn.Name,
			Visibility: fn.Visibility,
			Insts:      insts,
			MetaInsts:  comments,
		})
	}

	return out, nil
}

// Decompile reconstructs a Module from compilation, assuming it was
// assembled for arch.
func Decompile(compilation *asm.Compilation, arch target.Arch) (*ir.Module, error) {
	backend, ok := target.Lookup(arch)
	if !ok {
		return nil, errors.InvalidTarget(arch.String())
	}

	module := ir.NewModule()

	for _, fn := range compilation.Funcs {
		nodes, err := decompile.Disassemble(fn.Name, fn.Insts, backend)
		if err != nil {
			return nil, err
		}
		reconstructed, err := decompile.Deallocate(fn.Name, nodes, backend)
		if err != nil {
			return nil, err
		}
		reconstructed.Visibility = fn.Visibility
		reconstructed = decompile.ExtractTypes(reconstructed)
		module.AddFunc(reconstructed)
	}

	return module, nil
}
