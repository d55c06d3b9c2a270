package encoder

import (
	"context"
	"strings"
	"testing"

	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncoder(cacheSize int) *Encoder {
	return NewEncoder(cacheSize, logger.NewNop())
}

func TestEncode_ProducesSquareMatrix(t *testing.T) {
	// Arrange
	enc := newTestEncoder(0)

	// Act
	matrix, err := enc.Encode(context.Background(), "https://example.com", 0, "M")

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, matrix)
	for _, row := range matrix {
		assert.Len(t, row, len(matrix))
	}
	// Version 1 is 21 modules; every valid symbol is at least that.
	assert.GreaterOrEqual(t, len(matrix), 21)
}

func TestEncode_Deterministic(t *testing.T) {
	// Arrange
	enc := newTestEncoder(0)

	// Act
	first, err := enc.Encode(context.Background(), "deterministic", 0, "L")
	require.NoError(t, err)
	second, err := enc.Encode(context.Background(), "deterministic", 0, "L")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, first, second)
}

func TestEncode_ForcedVersionGrowsModuleCount(t *testing.T) {
	// Arrange
	enc := newTestEncoder(0)

	// Act
	auto, err := enc.Encode(context.Background(), "x", 0, "L")
	require.NoError(t, err)
	forced, err := enc.Encode(context.Background(), "x", 5, "L")
	require.NoError(t, err)

	// Assert - version 5 is 37 modules, larger than the auto-fit symbol.
	assert.Equal(t, 37, len(forced))
	assert.Less(t, len(auto), len(forced))
}

func TestEncode_VersionHintFallsBackWhenTooSmall(t *testing.T) {
	// Arrange
	enc := newTestEncoder(0)
	data := strings.Repeat("x", 100)

	// Act - version 1 cannot hold 100 bytes; the encoder grows past it.
	matrix, err := enc.Encode(context.Background(), data, 1, "L")

	// Assert
	require.NoError(t, err)
	assert.Greater(t, len(matrix), 21)
}

func TestEncode_OverflowReportsSentinel(t *testing.T) {
	// Arrange
	enc := newTestEncoder(0)
	data := strings.Repeat("x", 5000)

	// Act
	_, err := enc.Encode(context.Background(), data, 0, "H")

	// Assert
	assert.ErrorIs(t, err, generator.ErrDataOverflow)
}

func TestEncode_UnknownLevel(t *testing.T) {
	// Arrange
	enc := newTestEncoder(0)

	// Act
	_, err := enc.Encode(context.Background(), "test", 0, "X")

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error correction level")
}

func TestEncode_CancelledContext(t *testing.T) {
	// Arrange
	enc := newTestEncoder(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	_, err := enc.Encode(ctx, "test", 0, "L")

	// Assert
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncode_CachedMatrixIsExclusivelyOwned(t *testing.T) {
	// Arrange
	enc := newTestEncoder(4)

	first, err := enc.Encode(context.Background(), "shared", 0, "L")
	require.NoError(t, err)

	// Act - mutate the caller's copy, then fetch again from the cache.
	first[0][0] = !first[0][0]
	second, err := enc.Encode(context.Background(), "shared", 0, "L")
	require.NoError(t, err)

	// Assert - the mutation did not leak into the cached matrix.
	assert.NotEqual(t, first[0][0], second[0][0])
}

func TestEncode_CacheHitMatchesFreshEncode(t *testing.T) {
	// Arrange
	cached := newTestEncoder(4)
	uncached := newTestEncoder(0)

	warmup, err := cached.Encode(context.Background(), "hit", 0, "M")
	require.NoError(t, err)

	// Act
	fromCache, err := cached.Encode(context.Background(), "hit", 0, "M")
	require.NoError(t, err)
	fresh, err := uncached.Encode(context.Background(), "hit", 0, "M")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, warmup, fromCache)
	assert.Equal(t, fresh, fromCache)
}
