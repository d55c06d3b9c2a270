package render

import (
	"image/color"
	"math"
	"sort"
)

// colorMask maps a module position to its fill color. col and row are
// module coordinates inside an n×n matrix.
type colorMask func(col, row, modules int) color.RGBA

// The intrinsic gradient masks run black→blue, the defaults of the
// styling scheme this renderer reproduces.
var (
	gradientStart = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	gradientEnd   = color.RGBA{R: 0, G: 0, B: 255, A: 255}
)

// maskBuilders is the closed capability set of color masks. The solid
// mask is special-cased by buildColorMask: it is the only mask driven by
// explicit colors rather than an intrinsic gradient.
var maskBuilders = map[string]func() colorMask{
	"radial": func() colorMask {
		return func(col, row, modules int) color.RGBA {
			center := float64(modules-1) / 2
			dx := float64(col) - center
			dy := float64(row) - center
			// Normalized by the center-to-corner distance.
			max := math.Hypot(center, center)
			return lerpColor(gradientStart, gradientEnd, math.Hypot(dx, dy)/max)
		}
	},
	"square": func() colorMask {
		return func(col, row, modules int) color.RGBA {
			center := float64(modules-1) / 2
			d := math.Max(math.Abs(float64(col)-center), math.Abs(float64(row)-center))
			return lerpColor(gradientStart, gradientEnd, d/center)
		}
	},
	"horizontal": func() colorMask {
		return func(col, row, modules int) color.RGBA {
			return lerpColor(gradientStart, gradientEnd, float64(col)/float64(modules-1))
		}
	},
	"vertical": func() colorMask {
		return func(col, row, modules int) color.RGBA {
			return lerpColor(gradientStart, gradientEnd, float64(row)/float64(modules-1))
		}
	},
}

// buildColorMask resolves a mask name. For "solid" the mask is built from
// the two resolved colors; the remaining masks take no parameters.
func buildColorMask(name string, front, back color.RGBA) (colorMask, bool) {
	if name == "solid" {
		return func(col, row, modules int) color.RGBA {
			return front
		}, true
	}
	builder, ok := maskBuilders[name]
	if !ok {
		return nil, false
	}
	return builder(), true
}

// MaskNames returns the valid color mask names, sorted.
func MaskNames() []string {
	names := make([]string, 0, len(maskBuilders)+1)
	for name := range maskBuilders {
		names = append(names, name)
	}
	names = append(names, "solid")
	sort.Strings(names)
	return names
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: 255,
	}
}
