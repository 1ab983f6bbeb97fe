package tagging

import (
	"textag/fonts"
	"textag/tags"
)

// ResolvedScript is the script decision with all lengths made absolute.
type ResolvedScript struct {
	BaselineShift float64
	LineHeight    float64
}

// Background is the highlight decision. A set decision with a nil Color
// records that a highlight is active but carries no representable fill.
type Background struct {
	Color *tags.RGB
}

// ResolvedDeco is the decoration decision.
type ResolvedDeco struct {
	Kind      DecoKind
	Color     *tags.RGB
	Thickness *float64
}

// ResolvedAttrs is the consolidated style of a text run: one decision per
// formatting axis, or nil when no annotation on that axis is active.
type ResolvedAttrs struct {
	Strong     *bool
	Emph       *bool
	Script     *ResolvedScript
	Background *Background
	Deco       *ResolvedDeco
}

// IsEmpty reports whether no axis carries a decision.
func (ra ResolvedAttrs) IsEmpty() bool {
	return ra.Strong == nil && ra.Emph == nil && ra.Script == nil && ra.Background == nil && ra.Deco == nil
}

func (ra ResolvedAttrs) allResolved() bool {
	return ra.Strong != nil && ra.Emph != nil && ra.Script != nil && ra.Background != nil && ra.Deco != nil
}

// resolveAttrs walks the stack from the most recently pushed entry down and
// takes the first decision seen on each axis, so the innermost annotation
// wins. Earlier entries on an already decided axis are skipped; once every
// axis is decided the rest of the stack cannot change the outcome.
func resolveAttrs(items []entry, font *fonts.Font, size float64) ResolvedAttrs {
	var ra ResolvedAttrs
	for i := len(items) - 1; i >= 0; i-- {
		switch attr := items[i].attr; attr.kind {
		case attrStrong:
			if ra.Strong == nil {
				v := true
				ra.Strong = &v
			}
		case attrEmph:
			if ra.Emph == nil {
				v := true
				ra.Emph = &v
			}
		case attrScript:
			if ra.Script == nil {
				ra.Script = resolveScript(attr.script, font, size)
			}
		case attrHighlight:
			if ra.Background == nil {
				ra.Background = &Background{Color: attr.highlight}
			}
		case attrDeco:
			if ra.Deco == nil {
				d := attr.deco
				rd := ResolvedDeco{Kind: d.Kind, Color: d.Stroke.Color}
				if d.Stroke.Thickness != nil {
					t := d.Stroke.Thickness.At(size)
					rd.Thickness = &t
				}
				ra.Deco = &rd
			}
		}

		if ra.allResolved() {
			break
		}
	}
	return ra
}

// resolveScript turns a script annotation into absolute offsets. Explicit
// baseline shifts are stored in CSS convention where positive shifts raise
// the text, while the output convention measures the offset of the baseline
// itself, hence the sign flip. Missing values fall back to font metrics.
func resolveScript(s Script, font *fonts.Font, size float64) *ResolvedScript {
	sm := font.Metrics().Script(s.Kind)

	shift := sm.VerticalOffset * size
	if s.BaselineShift != nil {
		shift = -s.BaselineShift.At(size)
	}
	lineHeight := sm.Height * size
	if s.LineHeight != nil {
		lineHeight = s.LineHeight.At(size)
	}
	return &ResolvedScript{BaselineShift: shift, LineHeight: lineHeight}
}
