// Package css parses CSS-style attribute values used by the document format:
// colors on highlight and decoration spans and lengths on decoration
// thickness, baseline shift, line height and font size. Only values, not
// stylesheets - rule and selector handling is out of scope here.
package css

import (
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"textag/tags"
)

// Unit of a Length.
type Unit int

const (
	UnitPt Unit = iota
	UnitEm
	UnitPercent
)

func (u Unit) String() string {
	switch u {
	case UnitPt:
		return "pt"
	case UnitEm:
		return "em"
	case UnitPercent:
		return "%"
	default:
		return "?"
	}
}

// Length is a parsed CSS length. Relative units resolve against a font size.
type Length struct {
	Value float64
	Unit  Unit
}

// At converts the length to absolute points given the active font size.
func (l Length) At(size float64) float64 {
	switch l.Unit {
	case UnitEm:
		return l.Value * size
	case UnitPercent:
		return l.Value / 100 * size
	default:
		return l.Value
	}
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

// ParseLength parses a length value: "0.5pt", "1.2em", "120%". A bare number
// is taken as points. Returns false for anything else.
func ParseLength(s string) (Length, bool) {
	lex := css.NewLexer(parse.NewInputString(strings.TrimSpace(s)))

	var (
		res  Length
		seen bool
	)
	for {
		tt, data := lex.Next()
		switch tt {
		case css.ErrorToken:
			return res, seen
		case css.WhitespaceToken:
			continue
		case css.NumberToken:
			if seen {
				return Length{}, false
			}
			v, err := strconv.ParseFloat(string(data), 64)
			if err != nil {
				return Length{}, false
			}
			res, seen = Length{Value: v, Unit: UnitPt}, true
		case css.PercentageToken:
			if seen {
				return Length{}, false
			}
			v, err := strconv.ParseFloat(strings.TrimSuffix(string(data), "%"), 64)
			if err != nil {
				return Length{}, false
			}
			res, seen = Length{Value: v, Unit: UnitPercent}, true
		case css.DimensionToken:
			if seen {
				return Length{}, false
			}
			v, unit := splitDimension(string(data))
			switch unit {
			case "pt":
				res, seen = Length{Value: v, Unit: UnitPt}, true
			case "em":
				res, seen = Length{Value: v, Unit: UnitEm}, true
			default:
				return Length{}, false
			}
		default:
			return Length{}, false
		}
	}
}

// splitDimension extracts numeric value and unit from a dimension token.
func splitDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}
	if numEnd == 0 {
		return 0, ""
	}
	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	return num, strings.ToLower(s[numEnd:])
}

// namedColors is the subset of CSS named colors the document format accepts.
var namedColors = map[string]tags.RGB{
	"black":   {R: 0x00, G: 0x00, B: 0x00},
	"silver":  {R: 0xc0, G: 0xc0, B: 0xc0},
	"gray":    {R: 0x80, G: 0x80, B: 0x80},
	"grey":    {R: 0x80, G: 0x80, B: 0x80},
	"white":   {R: 0xff, G: 0xff, B: 0xff},
	"maroon":  {R: 0x80, G: 0x00, B: 0x00},
	"red":     {R: 0xff, G: 0x00, B: 0x00},
	"purple":  {R: 0x80, G: 0x00, B: 0x80},
	"fuchsia": {R: 0xff, G: 0x00, B: 0xff},
	"magenta": {R: 0xff, G: 0x00, B: 0xff},
	"green":   {R: 0x00, G: 0x80, B: 0x00},
	"lime":    {R: 0x00, G: 0xff, B: 0x00},
	"olive":   {R: 0x80, G: 0x80, B: 0x00},
	"yellow":  {R: 0xff, G: 0xff, B: 0x00},
	"navy":    {R: 0x00, G: 0x00, B: 0x80},
	"blue":    {R: 0x00, G: 0x00, B: 0xff},
	"teal":    {R: 0x00, G: 0x80, B: 0x80},
	"aqua":    {R: 0x00, G: 0xff, B: 0xff},
	"cyan":    {R: 0x00, G: 0xff, B: 0xff},
	"orange":  {R: 0xff, G: 0xa5, B: 0x00},
}

// ParseColor resolves a color value to a flattened RGB color. It accepts
// #rgb, #rrggbb, rgb(r, g, b) and a subset of CSS named colors. Everything
// else, including "none" and "transparent", resolves to false - the consumer
// treats that as "no fill".
func ParseColor(s string) (tags.RGB, bool) {
	lex := css.NewLexer(parse.NewInputString(strings.TrimSpace(s)))

	for {
		tt, data := lex.Next()
		switch tt {
		case css.ErrorToken:
			return tags.RGB{}, false
		case css.WhitespaceToken:
			continue
		case css.HashToken:
			return parseHexColor(strings.TrimPrefix(string(data), "#"))
		case css.IdentToken:
			c, ok := namedColors[strings.ToLower(string(data))]
			return c, ok
		case css.FunctionToken:
			if !strings.EqualFold(string(data), "rgb(") {
				return tags.RGB{}, false
			}
			return parseRGBArgs(lex)
		default:
			return tags.RGB{}, false
		}
	}
}

func parseHexColor(hex string) (tags.RGB, bool) {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return tags.RGB{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tags.RGB{}, false
	}
	return tags.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

func parseRGBArgs(lex *css.Lexer) (tags.RGB, bool) {
	var chans []uint8
	for {
		tt, data := lex.Next()
		switch tt {
		case css.WhitespaceToken, css.CommaToken:
			continue
		case css.NumberToken:
			v, err := strconv.ParseFloat(string(data), 64)
			if err != nil || v < 0 || v > 255 {
				return tags.RGB{}, false
			}
			chans = append(chans, uint8(v))
		case css.PercentageToken:
			v, err := strconv.ParseFloat(strings.TrimSuffix(string(data), "%"), 64)
			if err != nil || v < 0 || v > 100 {
				return tags.RGB{}, false
			}
			chans = append(chans, uint8(v/100*255))
		case css.RightParenthesisToken:
			if len(chans) != 3 {
				return tags.RGB{}, false
			}
			return tags.RGB{R: chans[0], G: chans[1], B: chans[2]}, true
		default:
			return tags.RGB{}, false
		}
	}
}
