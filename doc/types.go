package doc

import (
	"github.com/google/uuid"
	"golang.org/x/text/language"

	"textag/css"
	"textag/tags"
)

// Type definitions for the formatted document model.

// Location uniquely identifies a formatting scope within one document. It is
// only ever compared for equality, never ordered.
type Location uuid.UUID

func NewLocation() Location {
	return Location(uuid.New())
}

func (l Location) String() string {
	return uuid.UUID(l).String()
}

// SpanKind discriminates inline content.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanStrong
	SpanEmphasis
	SpanSub
	SpanSup
	SpanHighlight
	SpanUnderline
	SpanOverline
	SpanStrike
	SpanStyled
)

func (k SpanKind) String() string {
	switch k {
	case SpanText:
		return "text"
	case SpanStrong:
		return "strong"
	case SpanEmphasis:
		return "emphasis"
	case SpanSub:
		return "sub"
	case SpanSup:
		return "sup"
	case SpanHighlight:
		return "highlight"
	case SpanUnderline:
		return "underline"
	case SpanOverline:
		return "overline"
	case SpanStrike:
		return "strike"
	case SpanStyled:
		return "styled"
	default:
		return "unknown"
	}
}

// Span is a piece of inline content. Text spans carry text and nothing else;
// formatting spans carry a Location, their kind specific attributes and
// children.
type Span struct {
	Kind SpanKind
	Loc  Location
	Ref  string // element path within the document, used in error messages
	Text string // SpanText only

	Color      *tags.RGB   // highlight background or decoration stroke color
	Thickness  *css.Length // decoration stroke thickness
	Shift      *css.Length // explicit baseline shift for sub/sup
	LineHeight *css.Length // explicit line height for sub/sup

	Font string      // SpanStyled: font switch, empty to inherit
	Size *css.Length // SpanStyled: size switch, nil to inherit

	Children []Span
}

// Paragraph is a block of inline content.
type Paragraph struct {
	Spans []Span
}

// EmbeddedFont is a font binary carried by the document.
type EmbeddedFont struct {
	Name string
	Data []byte
}

// Document is the parsed content model handed to the tagging phase.
type Document struct {
	Title      string
	Lang       language.Tag
	Paragraphs []Paragraph
	Fonts      []EmbeddedFont
}
