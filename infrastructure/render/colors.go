package render

import (
	"image/color"
	"strings"
)

var namedColors = map[string]color.RGBA{
	"black": {R: 0, G: 0, B: 0, A: 255},
	"white": {R: 255, G: 255, B: 255, A: 255},
	"red":   {R: 255, G: 0, B: 0, A: 255},
	"green": {R: 0, G: 255, B: 0, A: 255},
	"blue":  {R: 0, G: 0, B: 255, A: 255},
}

// ResolveColor maps a color name to an RGB value, case-insensitively.
// Unrecognized names resolve to black rather than failing; color names
// never raise a validation error.
func ResolveColor(name string) color.RGBA {
	if c, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return color.RGBA{R: 0, G: 0, B: 0, A: 255}
}
