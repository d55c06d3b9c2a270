package render

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"strings"

	"github.com/fogleman/gg"
	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
)

// Renderer turns a module matrix into a raster image, either in a plain
// two-color mode or a styled mode combining a module shape with a color
// mask.
type Renderer struct {
	log *logger.Logger
}

// NewRenderer creates an image renderer.
func NewRenderer(log *logger.Logger) *Renderer {
	return &Renderer{log: log}
}

// Render implements generator.Renderer.
func (r *Renderer) Render(ctx context.Context, matrix generator.Matrix, opts generator.RenderOptions) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The gradient masks interpolate across module positions and need at
	// least two modules per side.
	if len(matrix) < 2 {
		return nil, errors.New("module matrix too small")
	}

	if opts.Styled {
		r.log.CtxDebug(ctx, "Rendering styled QR image", logger.LoggerInfo{
			ContextFunction: constant.CtxRender,
			Data: map[string]interface{}{
				constant.DataDrawer:    opts.DrawerStyle,
				constant.DataColorMask: opts.ColorMask,
			},
		})
		return r.renderStyled(matrix, opts)
	}

	r.log.CtxDebug(ctx, "Rendering plain QR image", logger.LoggerInfo{
		ContextFunction: constant.CtxRender,
		Data: map[string]interface{}{
			constant.DataModules: len(matrix),
		},
	})
	return r.renderPlain(matrix, opts), nil
}

// renderPlain fills every module as a solid square, foreground on
// background.
func (r *Renderer) renderPlain(matrix generator.Matrix, opts generator.RenderOptions) image.Image {
	modules := len(matrix)
	size := (modules + 2*opts.Border) * opts.BoxSize
	fg := ResolveColor(opts.Foreground)
	bg := ResolveColor(opts.Background)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	fill := &image.Uniform{C: fg}
	offset := opts.Border * opts.BoxSize
	for row := 0; row < modules; row++ {
		for col := 0; col < modules; col++ {
			if !matrix[row][col] {
				continue
			}
			x := offset + col*opts.BoxSize
			y := offset + row*opts.BoxSize
			draw.Draw(img, image.Rect(x, y, x+opts.BoxSize, y+opts.BoxSize), fill, image.Point{}, draw.Src)
		}
	}

	return img
}

// renderStyled draws each module with the selected shape through the
// selected color mask. Unknown style names are the renderer's only
// validation failures.
func (r *Renderer) renderStyled(matrix generator.Matrix, opts generator.RenderOptions) (image.Image, error) {
	drawer, ok := moduleDrawers[strings.ToLower(opts.DrawerStyle)]
	if !ok {
		return nil, generator.NewInputError(constant.ErrCodeBadDrawer,
			constant.ErrInvalidDrawer+": "+opts.DrawerStyle+". Must be one of: "+strings.Join(DrawerNames(), ", "))
	}

	front := ResolveColor(opts.Foreground)
	back := ResolveColor(opts.Background)

	maskName := strings.ToLower(opts.ColorMask)
	mask, ok := buildColorMask(maskName, front, back)
	if !ok {
		return nil, generator.NewInputError(constant.ErrCodeBadColorMask,
			constant.ErrInvalidMask+": "+opts.ColorMask+". Must be one of: "+strings.Join(MaskNames(), ", "))
	}

	// The intrinsic gradient masks render on a white background; only the
	// solid mask honors the configured background color.
	canvas := namedColors["white"]
	if maskName == "solid" {
		canvas = back
	}

	modules := len(matrix)
	size := (modules + 2*opts.Border) * opts.BoxSize
	box := float64(opts.BoxSize)
	offset := float64(opts.Border * opts.BoxSize)

	dc := gg.NewContext(size, size)
	dc.SetColor(canvas)
	dc.Clear()

	for row := 0; row < modules; row++ {
		for col := 0; col < modules; col++ {
			if !matrix[row][col] {
				continue
			}
			dc.SetColor(mask(col, row, modules))
			drawer(dc, offset+float64(col)*box, offset+float64(row)*box, box)
			dc.Fill()
		}
	}

	return dc.Image(), nil
}
