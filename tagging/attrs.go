// Package tagging compiles the formatting annotations of a document into an
// accessibility structure-tag tree. The central piece is the attribute stack:
// an ordered log of active formatting scopes which is pushed and popped while
// walking the document and resolved into one consolidated style per text run.
package tagging

import (
	"fmt"

	"textag/config"
	"textag/css"
	"textag/doc"
	"textag/fonts"
	"textag/tags"
)

// DecoKind is a decoration style as it appears on the attribute stack.
type DecoKind int

const (
	DecoUnderline DecoKind = iota
	DecoOverline
	DecoStrike
)

func (k DecoKind) String() string {
	switch k {
	case DecoUnderline:
		return "underline"
	case DecoOverline:
		return "overline"
	default:
		return "strike"
	}
}

// TagType maps the stack side decoration kind to the output vocabulary.
func (k DecoKind) TagType() tags.DecoType {
	switch k {
	case DecoUnderline:
		return tags.DecoUnderline
	case DecoOverline:
		return tags.DecoOverline
	default:
		return tags.DecoLineThrough
	}
}

// Script is a sub- or superscript annotation. Explicit overrides are kept
// unresolved until a text run supplies the font size.
type Script struct {
	Kind          fonts.ScriptKind
	BaselineShift *css.Length
	LineHeight    *css.Length
}

// DecoStroke carries the optional stroke settings of a decoration.
type DecoStroke struct {
	Color     *tags.RGB
	Thickness *css.Length
}

// Deco is a text decoration annotation.
type Deco struct {
	Kind   DecoKind
	Stroke DecoStroke
}

type attrKind int

const (
	attrStrong attrKind = iota
	attrEmph
	attrScript
	attrHighlight
	attrDeco
)

// Attr is one formatting annotation on the stack.
type Attr struct {
	kind      attrKind
	script    Script
	highlight *tags.RGB
	deco      Deco
}

func Strong() Attr {
	return Attr{kind: attrStrong}
}

func Emph() Attr {
	return Attr{kind: attrEmph}
}

func (a Attr) asDeco() (Deco, bool) {
	if a.kind == attrDeco {
		return a.deco, true
	}
	return Deco{}, false
}

// DecoConflictError is returned by PushDeco when the enforced accessibility
// standard cannot represent two simultaneous decoration styles.
type DecoConflictError struct {
	Validator string
	Ref       string
}

func (e *DecoConflictError) Error() string {
	return fmt.Sprintf("%s error: cannot combine underline, overline, or strike (%s)", e.Validator, e.Ref)
}

type entry struct {
	loc  doc.Location
	attr Attr
}

type memoEntry struct {
	params Params
	attrs  ResolvedAttrs
}

// Params captures everything a resolution result depends on besides the stack
// itself. Two runs with equal params resolve identically on an unchanged
// stack.
type Params struct {
	FontIndex uint32
	Size      float64
}

// Attrs is the attribute stack. Entries are appended in document traversal
// order and removed by scope location, which is not necessarily LIFO - tree
// walks may interleave scope exits.
type Attrs struct {
	// Store the last resolved set of text attributes. The resolution isn't
	// that expensive, but for large bodies of text it runs per text run.
	lastResolved *memoEntry
	items        []entry
}

func NewAttrs() *Attrs {
	return &Attrs{}
}

// PushScript enters a sub/superscript scope.
func (a *Attrs) PushScript(scope *doc.Span, kind fonts.ScriptKind, baselineShift, lineHeight *css.Length) {
	a.Push(scope, Attr{kind: attrScript, script: Script{Kind: kind, BaselineShift: baselineShift, LineHeight: lineHeight}})
}

// PushHighlight enters a highlight scope. A nil color means the highlight
// carries no representable fill.
func (a *Attrs) PushHighlight(scope *doc.Span, color *tags.RGB) {
	a.Push(scope, Attr{kind: attrHighlight, highlight: color})
}

// PushDeco enters a decoration scope. When the standards configuration is
// strict and a decoration of a different kind is already active the push
// fails: the output format can only represent one decoration style at a time.
func (a *Attrs) PushDeco(standards config.StandardsConfig, scope *doc.Span, kind DecoKind, stroke DecoStroke) error {
	if standards.Strict() {
		for _, it := range a.items {
			if d, ok := it.attr.asDeco(); ok && d.Kind != kind {
				return &DecoConflictError{Validator: standards.Validator(), Ref: scope.Ref}
			}
		}
	}
	a.Push(scope, Attr{kind: attrDeco, deco: Deco{Kind: kind, Stroke: stroke}})
	return nil
}

// Push appends the annotation for the given scope and discards the memo.
func (a *Attrs) Push(scope *doc.Span, attr Attr) {
	a.lastResolved = nil
	a.items = append(a.items, entry{loc: scope.Loc, attr: attr})
}

// Pop removes the most recently pushed entry for loc and reports whether a
// decoration entry was the one removed. Popping a location which pushed
// nothing is a no-op, not an error: default styled scopes push nothing.
func (a *Attrs) Pop(loc doc.Location) bool {
	a.lastResolved = nil

	for i := len(a.items) - 1; i >= 0; i-- {
		if a.items[i].loc == loc {
			_, wasDeco := a.items[i].attr.asDeco()
			a.items = append(a.items[:i], a.items[i+1:]...)
			return wasDeco
		}
	}
	return false
}

// Resolve computes the effective style for a text run with the given font and
// size. Results are memoized for exactly one set of run parameters; any push
// or pop discards the memo since parameters alone do not capture which stack
// state produced the answer.
func (a *Attrs) Resolve(font *fonts.Font, size float64) ResolvedAttrs {
	params := Params{FontIndex: font.Index(), Size: size}
	if a.lastResolved != nil && a.lastResolved.params == params {
		return a.lastResolved.attrs
	}

	attrs := resolveAttrs(a.items, font, size)
	a.lastResolved = &memoEntry{params: params, attrs: attrs}
	return attrs
}

// Len returns the number of currently active annotations.
func (a *Attrs) Len() int {
	return len(a.items)
}
