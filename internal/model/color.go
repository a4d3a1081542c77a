package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ThemeColor is one of the named colors a watchlist can be themed with.
type ThemeColor int

const (
	Blue ThemeColor = iota
	Green
	Orange
	Red
	Purple
	Pink
	Teal
	Indigo
	Mint
	Cyan
	Brown
)

// DefaultColor is used for new watchlists and for anything that fails to map.
const DefaultColor = Blue

const defaultHex = "#007AFF"

var themeHex = map[ThemeColor]string{
	Blue:   "#007AFF",
	Green:  "#34C759",
	Orange: "#FF9500",
	Red:    "#FF3B30",
	Purple: "#AF52DE",
	Pink:   "#FF2D55",
	Teal:   "#5AC8FA",
	Indigo: "#5856D6",
	Mint:   "#00C7BE",
	Cyan:   "#32ADE6",
	Brown:  "#A2845E",
}

var themeNames = map[ThemeColor]string{
	Blue:   "blue",
	Green:  "green",
	Orange: "orange",
	Red:    "red",
	Purple: "purple",
	Pink:   "pink",
	Teal:   "teal",
	Indigo: "indigo",
	Mint:   "mint",
	Cyan:   "cyan",
	Brown:  "brown",
}

// NamedColor pairs a palette color with its display label.
type NamedColor struct {
	Label string
	Color ThemeColor
}

// ThemeColors is the palette offered when creating or editing a watchlist.
var ThemeColors = []NamedColor{
	{Label: "Blau", Color: Blue},
	{Label: "Grün", Color: Green},
	{Label: "Orange", Color: Orange},
	{Label: "Rot", Color: Red},
	{Label: "Lila", Color: Purple},
	{Label: "Pink", Color: Pink},
	{Label: "Türkis", Color: Teal},
	{Label: "Indigo", Color: Indigo},
	{Label: "Mint", Color: Mint},
	{Label: "Cyan", Color: Cyan},
	{Label: "Braun", Color: Brown},
}

// Hex returns the "#RRGGBB" form of the color. Values outside the palette
// encode as blue.
func (c ThemeColor) Hex() string {
	if hex, ok := themeHex[c]; ok {
		return hex
	}
	return defaultHex
}

// String returns the lowercase English name of the color.
func (c ThemeColor) String() string {
	if name, ok := themeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ThemeColor(%d)", int(c))
}

// Label returns the palette display label, or the English name for values
// outside the palette.
func (c ThemeColor) Label() string {
	for _, nc := range ThemeColors {
		if nc.Color == c {
			return nc.Label
		}
	}
	return c.String()
}

// RGBA returns the color's channel values.
func (c ThemeColor) RGBA() RGBA {
	rgba, _ := ParseHex(c.Hex())
	return rgba
}

// Next returns the following palette color, wrapping around.
func (c ThemeColor) Next() ThemeColor {
	for i, nc := range ThemeColors {
		if nc.Color == c {
			return ThemeColors[(i+1)%len(ThemeColors)].Color
		}
	}
	return DefaultColor
}

// ParseThemeColor resolves an English color name or a palette label.
func ParseThemeColor(name string) (ThemeColor, bool) {
	name = strings.TrimSpace(name)
	for c, n := range themeNames {
		if strings.EqualFold(n, name) {
			return c, true
		}
	}
	for _, nc := range ThemeColors {
		if strings.EqualFold(nc.Label, name) {
			return nc.Color, true
		}
	}
	return DefaultColor, false
}

// ThemeColorForHex returns the palette color whose hex value equals hex.
// Many hex strings have no palette entry; those report false.
func ThemeColorForHex(hex string) (ThemeColor, bool) {
	rgba, ok := ParseHex(hex)
	if !ok {
		return DefaultColor, false
	}
	for _, nc := range ThemeColors {
		if nc.Color.RGBA() == rgba {
			return nc.Color, true
		}
	}
	return DefaultColor, false
}

// RGBA holds 8-bit color channels.
type RGBA struct {
	R, G, B, A uint8
}

// Hex returns the "#RRGGBB" form, dropping alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex decodes RGB, RRGGBB or AARRGGBB hex strings. Leading and trailing
// non-alphanumeric characters such as "#" are ignored. Any other length or a
// non-hex digit reports false.
func ParseHex(s string) (RGBA, bool) {
	s = strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	switch len(s) {
	case 3, 6, 8:
	default:
		return RGBA{}, false
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGBA{}, false
	}

	switch len(s) {
	case 3:
		return RGBA{
			R: uint8((v >> 8) * 17),
			G: uint8((v >> 4 & 0xF) * 17),
			B: uint8((v & 0xF) * 17),
			A: 255,
		}, true
	case 6:
		return RGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8 & 0xFF),
			B: uint8(v & 0xFF),
			A: 255,
		}, true
	default:
		return RGBA{
			A: uint8(v >> 24),
			R: uint8(v >> 16 & 0xFF),
			G: uint8(v >> 8 & 0xFF),
			B: uint8(v & 0xFF),
		}, true
	}
}
