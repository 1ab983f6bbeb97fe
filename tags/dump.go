package tags

import (
	"fmt"
	"strconv"
	"strings"
)

// treeWriter produces the indented textual form of a tag tree. It exists so
// the CLI dump and the tests share one deterministic rendering.
type treeWriter struct {
	w strings.Builder
}

func (tw *treeWriter) line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(&tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Dump renders nodes as indented text, one node per line, attributes inline.
func Dump(nodes []Node) string {
	tw := &treeWriter{}
	for _, n := range nodes {
		dumpNode(tw, 0, n)
	}
	return tw.w.String()
}

func dumpNode(tw *treeWriter, depth int, n Node) {
	if n.Leaf != nil {
		tw.line(depth, "run: %s font=%s size=%s", strconv.Quote(n.Leaf.Text), n.Leaf.Font, trimFloat(n.Leaf.Size))
		return
	}
	if n.Group == nil {
		tw.line(depth, "<empty node>")
		return
	}

	g := n.Group
	var sb strings.Builder
	sb.WriteString(g.Kind.String())
	if g.Lang != "" {
		fmt.Fprintf(&sb, " lang=%s", g.Lang)
	}
	writeSpanAttrs(&sb, g.Attrs)
	tw.line(depth, "%s", sb.String())

	for _, child := range g.Children {
		dumpNode(tw, depth+1, child)
	}
}

func writeSpanAttrs(sb *strings.Builder, a SpanAttrs) {
	if a.LineHeight != nil {
		fmt.Fprintf(sb, " line-height=%s", trimFloat(*a.LineHeight))
	}
	if a.BaselineShift != nil {
		fmt.Fprintf(sb, " baseline-shift=%s", trimFloat(*a.BaselineShift))
	}
	if a.Background != nil {
		fmt.Fprintf(sb, " background=%s", a.Background.Hex())
	}
	if a.DecoType != nil {
		fmt.Fprintf(sb, " deco=%s", a.DecoType.String())
	}
	if a.DecoColor != nil {
		fmt.Fprintf(sb, " deco-color=%s", a.DecoColor.Hex())
	}
	if a.DecoThickness != nil {
		fmt.Fprintf(sb, " deco-thickness=%s", trimFloat(*a.DecoThickness))
	}
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
