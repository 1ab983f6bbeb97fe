// Package fonts keeps track of fonts referenced by a document and answers the
// metric lookups attribute resolution depends on. Metrics are plain table
// values in font-relative units - no shaping or font file interpretation
// happens here beyond classifying embedded binaries.
package fonts

import (
	"fmt"
	"sort"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/zap"
)

// ScriptKind selects the sub- or superscript entry of a metrics table.
type ScriptKind int

const (
	ScriptSub ScriptKind = iota
	ScriptSuper
)

func (k ScriptKind) String() string {
	if k == ScriptSub {
		return "sub"
	}
	return "super"
}

// ScriptMetrics are vertical offset and height for sub/superscript glyphs in
// fractions of an em. Offset is positive above the baseline, negative below.
type ScriptMetrics struct {
	VerticalOffset float64
	Height         float64
}

// Metrics is the per-font metrics table consumed during attribute resolution.
type Metrics struct {
	Ascent      float64
	Descent     float64
	Subscript   ScriptMetrics
	Superscript ScriptMetrics
}

// Script returns the metrics entry for the given script kind.
func (m Metrics) Script(kind ScriptKind) ScriptMetrics {
	if kind == ScriptSub {
		return m.Subscript
	}
	return m.Superscript
}

// DefaultMetrics mirror typical OS/2 table values and are used for fonts the
// document references without embedding.
var DefaultMetrics = Metrics{
	Ascent:      0.8,
	Descent:     0.2,
	Subscript:   ScriptMetrics{VerticalOffset: -0.2, Height: 0.6},
	Superscript: ScriptMetrics{VerticalOffset: 0.35, Height: 0.6},
}

// Font is an immutable font entry. The index is stable for the lifetime of
// the registry and serves as the cache key identity for resolution.
type Font struct {
	index   uint32
	name    string
	metrics Metrics
}

func (f *Font) Index() uint32    { return f.index }
func (f *Font) Name() string     { return f.name }
func (f *Font) Metrics() Metrics { return f.metrics }

// Registry assigns stable indices to fonts by name. Not safe for concurrent
// use, one registry belongs to one conversion.
type Registry struct {
	byName map[string]*Font
	list   []*Font
	log    *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		byName: make(map[string]*Font),
		log:    log.Named("fonts"),
	}
}

// Get returns the font registered under name, creating it with default
// metrics on first use.
func (r *Registry) Get(name string) *Font {
	if f, ok := r.byName[name]; ok {
		return f
	}
	r.log.Debug("Registering font with default metrics", zap.String("font", name))
	return r.add(name, DefaultMetrics)
}

// Register adds a font with explicit metrics. Registering a name twice keeps
// the first entry so indices stay stable.
func (r *Registry) Register(name string, m Metrics) *Font {
	if f, ok := r.byName[name]; ok {
		r.log.Debug("Font already registered, keeping previous metrics", zap.String("font", name))
		return f
	}
	return r.add(name, m)
}

// RegisterEmbedded classifies an embedded font binary and registers it under
// name with default metrics. Only real font binaries are accepted.
func (r *Registry) RegisterEmbedded(name string, data []byte) (*Font, error) {
	if !isFontBinary(data) {
		return nil, fmt.Errorf("embedded binary %q is not a supported font format", name)
	}
	r.log.Debug("Registering embedded font", zap.String("font", name), zap.Int("bytes", len(data)))
	return r.Register(name, DefaultMetrics), nil
}

// Names returns registered font names in natural order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

func (r *Registry) add(name string, m Metrics) *Font {
	f := &Font{index: uint32(len(r.list)), name: name, metrics: m}
	r.byName[name] = f
	r.list = append(r.list, f)
	return f
}

func isFontBinary(data []byte) bool {
	return filetype.Is(data, "ttf") || filetype.Is(data, "otf") ||
		filetype.Is(data, "woff") || filetype.Is(data, "woff2")
}
