package tagging

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"textag/config"
	"textag/doc"
	"textag/fonts"
	"textag/tags"
)

// Walker drives the attribute stack over a parsed document and assembles the
// structure tag tree.
type Walker struct {
	attrs     *Attrs
	registry  *fonts.Registry
	standards config.StandardsConfig
	font      *fonts.Font
	size      float64
	log       *zap.Logger
}

func NewWalker(cfg *config.Config, registry *fonts.Registry, log *zap.Logger) *Walker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Walker{
		attrs:     NewAttrs(),
		registry:  registry,
		standards: cfg.Standards,
		font:      registry.Get(cfg.Document.Text.DefaultFont),
		size:      cfg.Document.Text.DefaultSize,
		log:       log.Named("tagging"),
	}
}

// Document tags a whole document, producing a single Part group with one
// Paragraph group per paragraph.
func (w *Walker) Document(d *doc.Document) (tags.Node, error) {
	for _, f := range d.Fonts {
		if _, err := w.registry.RegisterEmbedded(f.Name, f.Data); err != nil {
			w.log.Warn("ignoring embedded font", zap.String("name", f.Name), zap.Error(err))
		}
	}

	children := make([]tags.Node, 0, len(d.Paragraphs))
	for i := range d.Paragraphs {
		p, err := w.paragraph(&d.Paragraphs[i])
		if err != nil {
			return tags.Node{}, fmt.Errorf("tagging paragraph %d: %w", i+1, err)
		}
		children = append(children, p)
	}

	part := tags.GroupNode(tags.KindPart, children)
	if d.Lang != language.Und {
		part.Group.Lang = d.Lang.String()
	}
	return part, nil
}

func (w *Walker) paragraph(p *doc.Paragraph) (tags.Node, error) {
	nodes, err := w.spans(p.Spans, w.font, w.size)
	if err != nil {
		return tags.Node{}, err
	}
	return tags.GroupNode(tags.KindParagraph, nodes), nil
}

// spans processes a run of sibling spans. Formatting spans push their
// annotation, recurse into their children and pop on exit; the wrapping
// groups come from resolving the stack at each text run, not from the spans
// themselves, so identical styles merge no matter how they were nested in
// the source.
func (w *Walker) spans(spans []doc.Span, font *fonts.Font, size float64) ([]tags.Node, error) {
	var out []tags.Node
	for i := range spans {
		sp := &spans[i]

		if sp.Kind == doc.SpanText {
			resolved := w.attrs.Resolve(font, size)
			run := tags.LeafNode(sp.Text, font.Name(), size)
			out = append(out, resolved.WrapNodes([]tags.Node{run})...)
			continue
		}

		runFont, runSize := font, size
		pushed := true
		switch sp.Kind {
		case doc.SpanStrong:
			w.attrs.Push(sp, Strong())
		case doc.SpanEmphasis:
			w.attrs.Push(sp, Emph())
		case doc.SpanSub:
			w.attrs.PushScript(sp, fonts.ScriptSub, sp.Shift, sp.LineHeight)
		case doc.SpanSup:
			w.attrs.PushScript(sp, fonts.ScriptSuper, sp.Shift, sp.LineHeight)
		case doc.SpanHighlight:
			w.attrs.PushHighlight(sp, sp.Color)
		case doc.SpanUnderline, doc.SpanOverline, doc.SpanStrike:
			if err := w.attrs.PushDeco(w.standards, sp, decoKindOf(sp.Kind), DecoStroke{Color: sp.Color, Thickness: sp.Thickness}); err != nil {
				return nil, err
			}
		case doc.SpanStyled:
			pushed = false
			if sp.Font != "" {
				runFont = w.registry.Get(sp.Font)
			}
			if sp.Size != nil {
				runSize = sp.Size.At(size)
			}
		default:
			w.log.Warn("skipping span of unexpected kind", zap.Stringer("kind", sp.Kind), zap.String("ref", sp.Ref))
			pushed = false
		}

		children, err := w.spans(sp.Children, runFont, runSize)
		if err != nil {
			return nil, err
		}
		out = append(out, children...)

		if pushed && w.attrs.Pop(sp.Loc) {
			w.log.Debug("decoration scope closed", zap.String("ref", sp.Ref))
		}
	}
	return out, nil
}

func decoKindOf(kind doc.SpanKind) DecoKind {
	switch kind {
	case doc.SpanUnderline:
		return DecoUnderline
	case doc.SpanOverline:
		return DecoOverline
	default:
		return DecoStrike
	}
}
