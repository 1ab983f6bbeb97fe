// Package tags defines the structural tag vocabulary the tagging phase
// produces: a small set of tag kinds, a tree of leaf and group nodes, and the
// optional span-level attributes accessibility consumers understand.
package tags

import "fmt"

// Kind identifies the semantic role of a tag group.
type Kind int

const (
	KindPart Kind = iota
	KindParagraph
	KindSpan
	KindStrong
	KindEm
)

func (k Kind) String() string {
	switch k {
	case KindPart:
		return "Part"
	case KindParagraph:
		return "P"
	case KindSpan:
		return "Span"
	case KindStrong:
		return "Strong"
	case KindEm:
		return "Em"
	default:
		// this should never happen
		panic(fmt.Sprintf("unknown tag kind %d", int(k)))
	}
}

// RGB is a flattened device color, the only color form the tag tree carries.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// DecoType is a text decoration style.
type DecoType int

const (
	DecoUnderline DecoType = iota
	DecoOverline
	DecoLineThrough
)

func (d DecoType) String() string {
	switch d {
	case DecoUnderline:
		return "Underline"
	case DecoOverline:
		return "Overline"
	case DecoLineThrough:
		return "LineThrough"
	default:
		// this should never happen
		panic(fmt.Sprintf("unknown decoration type %d", int(d)))
	}
}

// SpanAttrs are the optional attributes of a span group. Nil fields are
// omitted from output entirely, they are never defaulted.
type SpanAttrs struct {
	LineHeight    *float64
	BaselineShift *float64
	Background    *RGB
	DecoType      *DecoType
	DecoColor     *RGB
	DecoThickness *float64
}

func (a SpanAttrs) IsZero() bool {
	return a.LineHeight == nil && a.BaselineShift == nil && a.Background == nil &&
		a.DecoType == nil && a.DecoColor == nil && a.DecoThickness == nil
}

// Leaf is a reference to a single text run in the produced content.
type Leaf struct {
	Text string
	Font string
	Size float64
}

// Group is an inner node of the tag tree semantically labelling its children.
type Group struct {
	Kind     Kind
	Attrs    SpanAttrs // meaningful for KindSpan only
	Lang     string    // optional, set on the document part
	Children []Node
}

// Node is either a leaf or a group, never both.
type Node struct {
	Leaf  *Leaf
	Group *Group
}

func LeafNode(text, font string, size float64) Node {
	return Node{Leaf: &Leaf{Text: text, Font: font, Size: size}}
}

func GroupNode(kind Kind, children []Node) Node {
	return Node{Group: &Group{Kind: kind, Children: children}}
}

func SpanNode(attrs SpanAttrs, children []Node) Node {
	return Node{Group: &Group{Kind: KindSpan, Attrs: attrs, Children: children}}
}
