package motion

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a straight-alpha color. R, G and B are in [0, 255], A in [0, 1].
// Channels are kept as floats so interpolation does not accumulate rounding;
// they are rounded only when formatted.
type RGBA struct {
	R, G, B, A float64
}

// Common colors.
var (
	ColorWhite       = RGBA{255, 255, 255, 1}
	ColorBlack       = RGBA{0, 0, 0, 1}
	ColorTransparent = RGBA{}
)

// NewRGBA returns a color with each channel clamped to its range.
func NewRGBA(r, g, b, a float64) RGBA {
	return RGBA{
		R: clamp(r, 0, 255),
		G: clamp(g, 0, 255),
		B: clamp(b, 0, 255),
		A: clamp(a, 0, 1),
	}
}

// String returns "rgb(r,g,b)" for opaque colors and "rgba(r,g,b,a)" otherwise.
func (c RGBA) String() string {
	r := strconv.Itoa(int(math.Round(c.R)))
	g := strconv.Itoa(int(math.Round(c.G)))
	b := strconv.Itoa(int(math.Round(c.B)))
	if c.A == 1 {
		return "rgb(" + r + "," + g + "," + b + ")"
	}
	a := formatFloat(math.Round(c.A*1e4) / 1e4)
	return "rgba(" + r + "," + g + "," + b + "," + a + ")"
}

// Unit returns the channels normalized to [0, 1], the form used by renderers.
func (c RGBA) Unit() (r, g, b, a float64) {
	return c.R / 255, c.G / 255, c.B / 255, c.A
}

// ParseColor parses "#rgb", "#rgba", "#rrggbb", "#rrggbbaa", "rgb(r,g,b)",
// "rgba(r,g,b,a)" and "transparent". Channels given as percentages are
// accepted inside rgb()/rgba().
func ParseColor(s string) (RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "transparent":
		return ColorTransparent, nil
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		return parseRGBFunc(s)
	}
	return RGBA{}, fmt.Errorf("%w: malformed color %q", ErrInvalidValue, s)
}

func parseHexColor(s string) (RGBA, error) {
	hex := s[1:]
	alpha := 1.0
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 4:
		a, err := strconv.ParseUint(string([]byte{hex[3], hex[3]}), 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: malformed color %q", ErrInvalidValue, s)
		}
		alpha = float64(a) / 255
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: malformed color %q", ErrInvalidValue, s)
		}
		alpha = float64(a) / 255
		hex = hex[:6]
	default:
		return RGBA{}, fmt.Errorf("%w: malformed color %q", ErrInvalidValue, s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: malformed color %q: %v", ErrInvalidValue, s, err)
	}
	r, g, b := c.RGB255()
	return NewRGBA(float64(r), float64(g), float64(b), alpha), nil
}

func parseRGBFunc(s string) (RGBA, error) {
	open := strings.IndexByte(s, '(')
	if !strings.HasSuffix(s, ")") {
		return RGBA{}, fmt.Errorf("%w: malformed color %q", ErrInvalidValue, s)
	}
	fields := strings.FieldsFunc(s[open+1:len(s)-1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(fields) != 3 && len(fields) != 4 {
		return RGBA{}, fmt.Errorf("%w: malformed color %q", ErrInvalidValue, s)
	}
	var ch [4]float64
	ch[3] = 1
	for i, f := range fields {
		pct := strings.HasSuffix(f, "%")
		n, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return RGBA{}, fmt.Errorf("%w: malformed color %q", ErrInvalidValue, s)
		}
		switch {
		case pct && i < 3:
			n = n / 100 * 255
		case pct:
			n /= 100
		}
		ch[i] = n
	}
	return NewRGBA(ch[0], ch[1], ch[2], ch[3]), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
