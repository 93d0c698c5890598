package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Format renders a CodegenError the way the teacher's ErrorReporter
// renders a CompilerError: a bold "error[CODE]" header followed by the
// message and, when present, the cause chain — but without source-text
// carets, since the core has no source text to point into (spec.md §6:
// "no persisted state ... or CLI surface").
func Format(err *CodegenError) string {
	bold := color.New(color.Bold, color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", bold(fmt.Sprintf("error[%s]", err.Code)), err.Message)
	fmt.Fprintf(&b, "  %s stage=%s function=%s\n", dim("-->"), err.Stage, orModule(err.Function))
	if err.Cause != nil {
		fmt.Fprintf(&b, "  %s caused by: %s\n", dim("note:"), err.Cause)
	}
	return b.String()
}

func orModule(function string) string {
	if function == "" {
		return "<module>"
	}
	return function
}
