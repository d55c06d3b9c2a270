package render

import (
	"sort"

	"github.com/fogleman/gg"
)

// drawModule adds the path for one set module to the drawing context.
// (x, y) is the module's upper-left pixel corner, size its edge length.
type drawModule func(dc *gg.Context, x, y, size float64)

// moduleDrawers is the closed capability set of module shapes. Only the
// lookup from an externally supplied name can fail.
var moduleDrawers = map[string]drawModule{
	"square": func(dc *gg.Context, x, y, size float64) {
		dc.DrawRectangle(x, y, size, size)
	},
	"rounded": func(dc *gg.Context, x, y, size float64) {
		dc.DrawRoundedRectangle(x, y, size, size, size*0.35)
	},
	"gapped": func(dc *gg.Context, x, y, size float64) {
		inset := size * 0.1
		dc.DrawRectangle(x+inset, y+inset, size-2*inset, size-2*inset)
	},
	"circle": func(dc *gg.Context, x, y, size float64) {
		dc.DrawCircle(x+size/2, y+size/2, size/2)
	},
	"vertical": func(dc *gg.Context, x, y, size float64) {
		inset := size * 0.2
		dc.DrawRoundedRectangle(x+inset, y, size-2*inset, size, (size-2*inset)/2)
	},
	"horizontal": func(dc *gg.Context, x, y, size float64) {
		inset := size * 0.2
		dc.DrawRoundedRectangle(x, y+inset, size, size-2*inset, (size-2*inset)/2)
	},
}

// DrawerNames returns the valid drawer style names, sorted.
func DrawerNames() []string {
	names := make([]string, 0, len(moduleDrawers))
	for name := range moduleDrawers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
