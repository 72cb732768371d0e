package render

import (
	"encoding/hex"
	"image/color"
	"strings"
)

// hexColor parses "#RRGGBB"; malformed input yields magenta so it shows up.
func hexColor(s string) color.NRGBA {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "#"))
	if err != nil || len(raw) != 3 {
		return color.NRGBA{R: 0xFF, B: 0xFF, A: 0xFF}
	}
	return color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xFF}
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(a*255 + 0.5)
	return c
}

var (
	white = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black = color.NRGBA{A: 0xFF}

	gray200 = hexColor("#E5E7EB")
	gray300 = hexColor("#D1D5DB")
	gray400 = hexColor("#9CA3AF")
	gray500 = hexColor("#6B7280")
	gray600 = hexColor("#4B5563")
	gray700 = hexColor("#374151")
	gray800 = hexColor("#1F2937")

	verifiedBlue = hexColor("#3B82F6")
)
