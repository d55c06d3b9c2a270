package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "history.db"), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestStoreAndFindRecent(t *testing.T) {
	// Arrange
	repo := newTestRepository(t)
	ctx := context.Background()

	gen := &generator.Generation{
		Data:        "https://example.com",
		Path:        "qr_codes/qr_https___example_com.png",
		Styled:      true,
		DrawerStyle: "rounded",
		ColorMask:   "radial",
		CreatedAt:   time.Now().Truncate(time.Second),
	}

	// Act
	err := repo.Store(ctx, gen)
	require.NoError(t, err)

	found, err := repo.FindRecent(ctx, 10)

	// Assert
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, gen.Data, found[0].Data)
	assert.Equal(t, gen.Path, found[0].Path)
	assert.True(t, found[0].Styled)
	assert.Equal(t, "rounded", found[0].DrawerStyle)
	assert.Equal(t, "radial", found[0].ColorMask)
	assert.NotZero(t, found[0].ID)
}

func TestFindRecent_NewestFirst(t *testing.T) {
	// Arrange
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Now().Truncate(time.Second)

	for i, data := range []string{"first", "second", "third"} {
		err := repo.Store(ctx, &generator.Generation{
			Data:      data,
			Path:      "qr_codes/" + data + ".png",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	// Act
	found, err := repo.FindRecent(ctx, 10)

	// Assert
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, "third", found[0].Data)
	assert.Equal(t, "second", found[1].Data)
	assert.Equal(t, "first", found[2].Data)
}

func TestFindRecent_LimitApplied(t *testing.T) {
	// Arrange
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Now().Truncate(time.Second)

	for i := 0; i < 5; i++ {
		err := repo.Store(ctx, &generator.Generation{
			Data:      "entry",
			Path:      "qr_codes/entry.png",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	// Act
	found, err := repo.FindRecent(ctx, 2)

	// Assert
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestFindRecent_EmptyDatabase(t *testing.T) {
	// Arrange
	repo := newTestRepository(t)

	// Act
	found, err := repo.FindRecent(context.Background(), 10)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, found)
}
