package viz

import (
	"fmt"
	"strings"
)

// BlockDiagramDOT emits a Graphviz description of the unity negative
// feedback loop: reference into a summing junction, controller, plant, and
// the output fed back with a minus sign. The controller label may be empty
// for an open-loop diagram.
func BlockDiagramDOT(controller, plant string) string {
	var sb strings.Builder
	sb.WriteString("digraph control_loop {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, fontname=\"monospace\"];\n")
	sb.WriteString("  r [label=\"r(t)\", shape=plaintext];\n")
	sb.WriteString("  sum [label=\"+\", shape=circle, fixedsize=true, width=0.4];\n")
	if controller != "" {
		sb.WriteString(fmt.Sprintf("  C [label=%q];\n", controller))
	}
	sb.WriteString(fmt.Sprintf("  G [label=%q];\n", plant))
	sb.WriteString("  y [label=\"y(t)\", shape=plaintext];\n")
	sb.WriteString("  r -> sum;\n")
	if controller != "" {
		sb.WriteString("  sum -> C;\n")
		sb.WriteString("  C -> G;\n")
	} else {
		sb.WriteString("  sum -> G;\n")
	}
	sb.WriteString("  G -> y;\n")
	sb.WriteString("  y -> sum [label=\"-\", style=dashed];\n")
	sb.WriteString("}\n")
	return sb.String()
}
