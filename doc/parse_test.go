package doc

import (
	"strings"
	"testing"

	"textag/css"
	"textag/tags"
)

func mustRead(t *testing.T, xml string) *Document {
	t.Helper()
	d, err := ReadDocument(strings.NewReader(xml), nil)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	return d
}

func TestParseBasicDocument(t *testing.T) {
	d := mustRead(t, `<?xml version="1.0"?>
<document lang="en">
  <title>Sample</title>
  <body>
    <p>plain <strong>bold <em>both</em></strong> tail</p>
  </body>
</document>`)

	if d.Title != "Sample" {
		t.Errorf("Title = %q", d.Title)
	}
	if d.Lang.String() != "en" {
		t.Errorf("Lang = %s", d.Lang)
	}
	if len(d.Paragraphs) != 1 {
		t.Fatalf("paragraphs = %d", len(d.Paragraphs))
	}

	spans := d.Paragraphs[0].Spans
	if len(spans) != 3 {
		t.Fatalf("top level spans = %d, want 3", len(spans))
	}
	if spans[0].Kind != SpanText || spans[0].Text != "plain " {
		t.Errorf("span[0] = %v %q", spans[0].Kind, spans[0].Text)
	}
	if spans[1].Kind != SpanStrong {
		t.Errorf("span[1] kind = %v", spans[1].Kind)
	}
	if len(spans[1].Children) != 2 || spans[1].Children[1].Kind != SpanEmphasis {
		t.Errorf("strong children = %+v", spans[1].Children)
	}
}

func TestParseSpanAttributes(t *testing.T) {
	d := mustRead(t, `<document><body>
    <p><highlight color="#ff0000">hot</highlight><u color="blue" thickness="0.5pt">under</u><sub shift="0.3em">s</sub></p>
  </body></document>`)

	spans := d.Paragraphs[0].Spans
	if len(spans) != 3 {
		t.Fatalf("spans = %d", len(spans))
	}

	hl := spans[0]
	if hl.Kind != SpanHighlight || hl.Color == nil || *hl.Color != (tags.RGB{R: 255}) {
		t.Errorf("highlight = %+v", hl)
	}

	u := spans[1]
	if u.Kind != SpanUnderline {
		t.Fatalf("kind = %v", u.Kind)
	}
	if u.Color == nil || *u.Color != (tags.RGB{B: 255}) {
		t.Errorf("underline color = %v", u.Color)
	}
	if u.Thickness == nil || *u.Thickness != (css.Length{Value: 0.5, Unit: css.UnitPt}) {
		t.Errorf("underline thickness = %v", u.Thickness)
	}

	sub := spans[2]
	if sub.Kind != SpanSub || sub.Shift == nil || sub.Shift.Value != 0.3 {
		t.Errorf("sub = %+v", sub)
	}
}

func TestParseHighlightWithoutColor(t *testing.T) {
	d := mustRead(t, `<document><body><p><highlight color="none">x</highlight></p></body></document>`)
	hl := d.Paragraphs[0].Spans[0]
	if hl.Kind != SpanHighlight || hl.Color != nil {
		t.Errorf("highlight without representable color = %+v", hl)
	}
}

func TestParseUnknownInlineTagInlinesContent(t *testing.T) {
	d := mustRead(t, `<document><body><p><widget>inner <strong>deep</strong></widget></p></body></document>`)
	spans := d.Paragraphs[0].Spans
	if len(spans) != 2 {
		t.Fatalf("spans = %+v", spans)
	}
	if spans[0].Kind != SpanText || spans[1].Kind != SpanStrong {
		t.Errorf("inlined content = %v %v", spans[0].Kind, spans[1].Kind)
	}
}

func TestParseLocationsDistinct(t *testing.T) {
	d := mustRead(t, `<document><body><p><strong>a</strong><strong>b</strong></p></body></document>`)
	spans := d.Paragraphs[0].Spans
	if spans[0].Loc == spans[1].Loc {
		t.Fatal("distinct scopes must get distinct locations")
	}
	if spans[0].Ref == "" || spans[0].Ref == spans[1].Ref {
		t.Errorf("refs = %q %q", spans[0].Ref, spans[1].Ref)
	}
}

func TestParseEmbeddedFontBinary(t *testing.T) {
	d := mustRead(t, `<document><body><p>t</p></body><binary name="custom">AAEAAAAA</binary></document>`)
	if len(d.Fonts) != 1 || d.Fonts[0].Name != "custom" || len(d.Fonts[0].Data) == 0 {
		t.Fatalf("fonts = %+v", d.Fonts)
	}
}

func TestParseRejectsWrongRoot(t *testing.T) {
	if _, err := ReadDocument(strings.NewReader(`<book/>`), nil); err == nil {
		t.Fatal("expected error for unexpected root element")
	}
}

func TestParseStyledSpan(t *testing.T) {
	d := mustRead(t, `<document><body><p><span font="mono" size="9pt">code</span></p></body></document>`)
	sp := d.Paragraphs[0].Spans[0]
	if sp.Kind != SpanStyled || sp.Font != "mono" || sp.Size == nil || sp.Size.Value != 9 {
		t.Fatalf("styled span = %+v", sp)
	}
}
