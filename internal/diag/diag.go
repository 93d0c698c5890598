// Package diag narrates pipeline progress the way the teacher's own
// optimization pipeline reports pass-by-pass progress, gated behind a
// Verbose flag so normal compilation stays silent.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Narrator writes pass-progress lines to an io.Writer when enabled.
type Narrator struct {
	Out     io.Writer
	Enabled bool
}

// Pass reports that a named pipeline stage is starting.
func (n *Narrator) Pass(name string) {
	if !n.Enabled || n.Out == nil {
		return
	}
	fmt.Fprintf(n.Out, "%s %s\n", color.CyanString("running"), name)
}

// Applied reports that a stage changed the IR (e.g. DCE removed dead
// nodes); ok=false prints "no changes needed" instead.
func (n *Narrator) Applied(name string, ok bool) {
	if !n.Enabled || n.Out == nil {
		return
	}
	if ok {
		fmt.Fprintf(n.Out, "  %s %s\n", color.GreenString("applied"), name)
		return
	}
	fmt.Fprintf(n.Out, "  %s\n", color.New(color.Faint).Sprint("no changes needed"))
}

// Spill warns that the allocator issued a stack slot for fn, highlighted
// since it affects the emitted frame.
func (n *Narrator) Spill(fn string, slot int) {
	if !n.Enabled || n.Out == nil {
		return
	}
	fmt.Fprintf(n.Out, "  %s %s: stack slot %d issued\n", color.YellowString("warn"), fn, slot)
}
