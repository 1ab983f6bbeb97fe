package tagging

import (
	"textag/tags"
)

// WrapNodes wraps children in one tag group per active axis. Span attributes
// (script, background, decoration) share a single innermost Span group,
// strong wraps around that, emphasis is outermost. The order is fixed so that
// equal styles always produce identical trees. An empty style returns the
// children untouched.
func (ra ResolvedAttrs) WrapNodes(children []tags.Node) []tags.Node {
	nodes := children

	if ra.Script != nil || ra.Background != nil || ra.Deco != nil {
		var attrs tags.SpanAttrs
		if ra.Script != nil {
			shift, lineHeight := ra.Script.BaselineShift, ra.Script.LineHeight
			attrs.BaselineShift = &shift
			attrs.LineHeight = &lineHeight
		}
		if ra.Background != nil {
			attrs.Background = ra.Background.Color
		}
		if ra.Deco != nil {
			decoType := ra.Deco.Kind.TagType()
			attrs.DecoType = &decoType
			attrs.DecoColor = ra.Deco.Color
			attrs.DecoThickness = ra.Deco.Thickness
		}
		nodes = []tags.Node{tags.SpanNode(attrs, nodes)}
	}
	if ra.Strong != nil && *ra.Strong {
		nodes = []tags.Node{tags.GroupNode(tags.KindStrong, nodes)}
	}
	if ra.Emph != nil && *ra.Emph {
		nodes = []tags.Node{tags.GroupNode(tags.KindEm, nodes)}
	}
	return nodes
}
