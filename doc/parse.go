package doc

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"textag/css"
	"textag/tags"
)

// XML parsing for the formatted document model. We want exhaustive parsing -
// it is not very effective but ensures full correctness and gives us detailed
// debug output for every attribute the tagging phase later depends on.

// ParseDocument walks the etree DOM and constructs the typed document model.
func ParseDocument(d *etree.Document, log *zap.Logger) (*Document, error) {
	if d == nil {
		return nil, fmt.Errorf("nil document")
	}
	if log == nil {
		log = zap.NewNop()
	}

	root := d.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	if root.Tag != "document" {
		return nil, fmt.Errorf("unexpected root element %q", root.Tag)
	}

	out := &Document{
		Lang: parseDocLang(root.SelectAttrValue("lang", ""), log),
	}

	for _, child := range root.ChildElements() {
		switch child.Tag {
		case "title":
			out.Title = strings.TrimSpace(child.Text())
		case "body":
			body, err := parseBody(child, log)
			if err != nil {
				return nil, fmt.Errorf("body: %w", err)
			}
			out.Paragraphs = append(out.Paragraphs, body...)
		case "binary":
			bin, err := parseBinary(child, log)
			if err != nil {
				return nil, fmt.Errorf("binary: %w", err)
			}
			out.Fonts = append(out.Fonts, bin)
		default:
			log.Warn("Unexpected tag in document, ignoring", zap.String("parent", root.Tag), zap.String("tag", child.Tag))
		}
	}

	return out, nil
}

func parseDocLang(in string, log *zap.Logger) language.Tag {
	lang := strings.TrimSpace(in)
	if len(lang) == 0 {
		return language.Und
	}
	tag, err := language.Parse(lang)
	if err != nil {
		log.Warn("Unable to parse document language, ignoring", zap.String("lang", lang), zap.Error(err))
		return language.Und
	}
	return tag
}

func parseBody(el *etree.Element, log *zap.Logger) ([]Paragraph, error) {
	var paras []Paragraph
	for i, child := range el.ChildElements() {
		switch child.Tag {
		case "p":
			ref := fmt.Sprintf("body/p[%d]", i+1)
			paras = append(paras, Paragraph{Spans: parseSpans(child, ref, log)})
		default:
			log.Warn("Unexpected tag in body, ignoring", zap.String("tag", child.Tag))
		}
	}
	return paras, nil
}

func parseBinary(el *etree.Element, _ *zap.Logger) (EmbeddedFont, error) {
	name := el.SelectAttrValue("name", "")
	if len(name) == 0 {
		return EmbeddedFont{}, fmt.Errorf("binary element without name")
	}
	data, err := base64.StdEncoding.DecodeString(strings.Map(dropSpace, el.Text()))
	if err != nil {
		return EmbeddedFont{}, fmt.Errorf("binary %q: %w", name, err)
	}
	return EmbeddedFont{Name: name, Data: data}, nil
}

func dropSpace(r rune) rune {
	if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
		return -1
	}
	return r
}

// parseSpans converts the mixed content of el into inline spans. Unknown
// elements do not interrupt processing - their content is inlined in place.
func parseSpans(el *etree.Element, ref string, log *zap.Logger) []Span {
	var spans []Span
	idx := 0
	for _, tok := range el.Child {
		switch node := tok.(type) {
		case *etree.CharData:
			if len(node.Data) == 0 {
				continue
			}
			spans = append(spans, Span{Kind: SpanText, Text: node.Data})
		case *etree.Element:
			idx++
			childRef := fmt.Sprintf("%s/%s[%d]", ref, node.Tag, idx)
			span, ok := parseFormatSpan(node, childRef, log)
			if !ok {
				log.Warn("Unknown inline tag, inlining content", zap.String("tag", node.Tag), zap.String("ref", childRef))
				spans = append(spans, parseSpans(node, childRef, log)...)
				continue
			}
			span.Children = parseSpans(node, childRef, log)
			spans = append(spans, span)
		}
	}
	return spans
}

func parseFormatSpan(el *etree.Element, ref string, log *zap.Logger) (Span, bool) {
	span := Span{Loc: NewLocation(), Ref: ref}
	switch el.Tag {
	case "strong", "b":
		span.Kind = SpanStrong
	case "emphasis", "em", "i":
		span.Kind = SpanEmphasis
	case "sub":
		span.Kind = SpanSub
		span.Shift = attrLength(el, "shift", log)
		span.LineHeight = attrLength(el, "line-height", log)
	case "sup":
		span.Kind = SpanSup
		span.Shift = attrLength(el, "shift", log)
		span.LineHeight = attrLength(el, "line-height", log)
	case "highlight":
		span.Kind = SpanHighlight
		span.Color = attrColor(el, "color", log)
	case "u", "underline":
		span.Kind = SpanUnderline
	case "overline":
		span.Kind = SpanOverline
	case "strike", "s":
		span.Kind = SpanStrike
	case "span":
		span.Kind = SpanStyled
		span.Font = el.SelectAttrValue("font", "")
		span.Size = attrLength(el, "size", log)
	default:
		return Span{}, false
	}

	switch span.Kind {
	case SpanUnderline, SpanOverline, SpanStrike:
		span.Color = attrColor(el, "color", log)
		span.Thickness = attrLength(el, "thickness", log)
	}
	return span, true
}

func attrLength(el *etree.Element, name string, log *zap.Logger) *css.Length {
	raw := el.SelectAttrValue(name, "")
	if len(raw) == 0 {
		return nil
	}
	l, ok := css.ParseLength(raw)
	if !ok {
		log.Debug("Unparsable length value, ignoring", zap.String("tag", el.Tag), zap.String("attr", name), zap.String("value", raw))
		return nil
	}
	return &l
}

func attrColor(el *etree.Element, name string, log *zap.Logger) *tags.RGB {
	raw := el.SelectAttrValue(name, "")
	if len(raw) == 0 {
		return nil
	}
	c, ok := css.ParseColor(raw)
	if !ok {
		log.Debug("Color value is not representable, dropping", zap.String("tag", el.Tag), zap.String("attr", name), zap.String("value", raw))
		return nil
	}
	return &c
}
