package generator

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureOutputDir_CreatesMissingDirectory(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "nested", "qr_codes")

	// Act
	err := ensureOutputDir(path, logger.NewNop())

	// Assert
	require.NoError(t, err)
	info, statErr := os.Stat(path)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestEnsureOutputDir_ExistingDirectory(t *testing.T) {
	// Arrange
	path := t.TempDir()

	// Act
	err := ensureOutputDir(path, logger.NewNop())

	// Assert
	assert.NoError(t, err)
}

func TestEnsureOutputDir_ProbeFileRemoved(t *testing.T) {
	// Arrange
	path := t.TempDir()

	// Act
	err := ensureOutputDir(path, logger.NewNop())

	// Assert
	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(path, constant.ProbeFileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestEnsureOutputDir_UnwritableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	// Arrange
	path := t.TempDir()
	require.NoError(t, os.Chmod(path, 0o555))
	t.Cleanup(func() { _ = os.Chmod(path, 0o755) })

	// Act
	err := ensureOutputDir(path, logger.NewNop())

	// Assert
	assert.True(t, IsPermissionDenied(err))
	assert.True(t, IsFilesystem(err))
}

func TestClassifyFilesystemError(t *testing.T) {
	// Arrange
	permission := &fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}
	generic := errors.New("disk full")

	// Act
	permErr := classifyFilesystemError(constant.ErrCodeOutputDirFailure, "cannot write", permission)
	fsErr := classifyFilesystemError(constant.ErrCodeOutputDirFailure, "cannot write", generic)

	// Assert
	assert.Equal(t, KindPermissionDenied, permErr.Kind)
	assert.Equal(t, constant.ErrCodePermissionDenied, permErr.Code)
	assert.Equal(t, KindFilesystem, fsErr.Kind)
	assert.Equal(t, constant.ErrCodeOutputDirFailure, fsErr.Code)
}
