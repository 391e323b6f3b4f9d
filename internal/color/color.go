// Package color converts between the Hue v1 API color units and display
// colors. The bridge encodes hue as 0..65535, saturation as 0..254 and
// brightness as 1..254; everything user-facing works in RGB or percent.
package color

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	hueMax = 65535.0
	satMax = 254.0
	briMax = 254.0
	briMin = 1.0
)

// HSV is a color in Hue bridge units.
type HSV struct {
	Hue uint16 // 0..65535
	Sat uint8  // 0..254
	Bri uint8  // 1..254
}

// RGB returns the color as r, g, b in [0, 1].
func (h HSV) RGB() (r, g, b float64) {
	c := colorful.Hsv(
		float64(h.Hue)/hueMax*360.0,
		float64(h.Sat)/satMax,
		float64(h.Bri)/briMax,
	)
	return c.R, c.G, c.B
}

// Hex returns the color as an #rrggbb string for the panel swatch.
func (h HSV) Hex() string {
	r, g, b := h.RGB()
	return colorful.Color{R: r, G: g, B: b}.Hex()
}

// BriPercent maps bridge brightness to the 0..100 scale shown next to the
// slider. The bridge scale starts at 1, so 1 maps to 0%.
func BriPercent(bri uint8) int {
	if bri <= briMin {
		return 0
	}
	return int(math.Round(float64(bri-1) / (briMax - briMin) * 100.0))
}

// ClampBri clamps a brightness value to the bridge's 1..254 range.
func ClampBri(v int) uint8 {
	if v < briMin {
		return briMin
	}
	if v > briMax {
		return briMax
	}
	return uint8(v)
}

// ShiftHue moves a hue value by delta with wraparound.
func ShiftHue(hue uint16, delta int) uint16 {
	v := (int(hue) + delta) % (int(hueMax) + 1)
	if v < 0 {
		v += int(hueMax) + 1
	}
	return uint16(v)
}

// ShiftSat moves a saturation value by delta, clamped to 0..254.
func ShiftSat(sat uint8, delta int) uint8 {
	v := int(sat) + delta
	if v < 0 {
		return 0
	}
	if v > satMax {
		return satMax
	}
	return uint8(v)
}
