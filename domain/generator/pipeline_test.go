package generator_test

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/encoder"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/prasetyowira/qrgen/infrastructure/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPipeline wires the real encoder, renderer and file sink the way the
// application does.
func newPipeline(t *testing.T) (*generator.Service, string) {
	t.Helper()
	log := logger.NewNop()
	outputDir := filepath.Join(t.TempDir(), "qr_codes")
	svc, err := generator.NewService(outputDir, encoder.NewEncoder(8, log), render.NewRenderer(log), render.NewFileSink(), nil, log)
	require.NoError(t, err)
	return svc, outputDir
}

func TestPipeline_GeneratesPlainImage(t *testing.T) {
	// Arrange
	svc, outputDir := newPipeline(t)

	// Act
	path, err := svc.Generate(context.Background(), generator.Request{Data: "https://example.com"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, "qr_https___example_com.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, bounds.Dx(), bounds.Dy())
	assert.Greater(t, bounds.Dx(), 0)
}

func TestPipeline_DefaultBorderProducesQuietZone(t *testing.T) {
	// Arrange
	svc, _ := newPipeline(t)

	// Act - border left unset; the documented default of 4 applies.
	path, err := svc.Generate(context.Background(), generator.Request{Data: "x"})

	// Assert
	require.NoError(t, err)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	// A version 1 symbol is 21 modules; with box size 10 and border 4 the
	// image must be (21+2*4)*10 pixels per side.
	assert.Equal(t, 290, img.Bounds().Dx())
	assert.Equal(t, 290, img.Bounds().Dy())
}

func TestPipeline_OverwriteIsIdempotent(t *testing.T) {
	// Arrange
	svc, _ := newPipeline(t)
	req := generator.Request{Data: "idempotent", Filename: "idempotent.png"}

	path1, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	first, err := os.ReadFile(path1)
	require.NoError(t, err)

	// Act
	path2, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := os.ReadFile(path2)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, path1, path2)
	assert.True(t, bytes.Equal(first, second))
}

func TestPipeline_StyledSolidColors(t *testing.T) {
	// Arrange
	svc, _ := newPipeline(t)

	// Act
	path, err := svc.Generate(context.Background(), generator.Request{
		Data:            "styled",
		Styled:          true,
		DrawerStyle:     "square",
		ColorMask:       "solid",
		ForegroundColor: "red",
		BackgroundColor: "white",
		Border:          4,
		BoxSize:         10,
	})

	// Assert
	require.NoError(t, err)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)

	// Quiet zone corner stays background colored.
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)

	// The top-left finder pattern module is always dark; with border 4 and
	// box size 10 its center sits at pixel (45, 45).
	r, g, b, _ = img.At(45, 45).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
}

func TestPipeline_OversizedDataIsInputValidation(t *testing.T) {
	// Arrange
	svc, _ := newPipeline(t)
	data := strings.Repeat("x", 5000)

	// Act
	_, err := svc.Generate(context.Background(), generator.Request{Data: data, Version: 1, ErrorCorrection: "H"})

	// Assert
	assert.Error(t, err)
	assert.True(t, generator.IsInputValidation(err))
	assert.ErrorIs(t, err, generator.ErrDataOverflow)
}

func TestPipeline_UnsupportedExtensionIsGenerationError(t *testing.T) {
	// Arrange
	svc, _ := newPipeline(t)

	// Act
	_, err := svc.Generate(context.Background(), generator.Request{Data: "test", Filename: "out.gif"})

	// Assert
	assert.True(t, generator.IsGenerationError(err))
	assert.False(t, generator.IsInputValidation(err))
	assert.Contains(t, err.Error(), "unsupported image format")
}

func TestPipeline_PermissionDeniedOnSave(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	// Arrange
	svc, outputDir := newPipeline(t)
	require.NoError(t, os.Chmod(outputDir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(outputDir, 0o755) })

	// Act
	_, err := svc.Generate(context.Background(), generator.Request{Data: "test"})

	// Assert
	assert.True(t, generator.IsPermissionDenied(err))
	assert.True(t, generator.IsFilesystem(err))
}

func TestPipeline_JPEGAndBMPOutputs(t *testing.T) {
	// Arrange
	svc, outputDir := newPipeline(t)

	for _, name := range []string{"out.jpg", "out.bmp"} {
		// Act
		path, err := svc.Generate(context.Background(), generator.Request{Data: "formats", Filename: name})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(outputDir, name), path)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
