package generator

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
)

// ensureOutputDir creates the output directory tree if missing, then
// confirms write permission with a probe file. The probe file is removed
// on every path, including failures.
func ensureOutputDir(path string, log *logger.Logger) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Info(constant.MsgCreatingOutputDir, logger.LoggerInfo{
			ContextFunction: constant.CtxEnsureDir,
			Data: map[string]interface{}{
				constant.DataOutputDir: path,
			},
		})

		if err := os.MkdirAll(path, 0o755); err != nil {
			return classifyFilesystemError(constant.ErrCodeOutputDirFailure, "cannot create output directory "+path, err)
		}
	}

	probe := filepath.Join(path, constant.ProbeFileName)
	f, err := os.Create(probe)
	if err != nil {
		return classifyFilesystemError(constant.ErrCodeOutputDirFailure, "output directory "+path+" is not writable", err)
	}
	defer os.Remove(probe)

	_, writeErr := f.WriteString("test")
	closeErr := f.Close()
	if writeErr != nil {
		return classifyFilesystemError(constant.ErrCodeOutputDirFailure, "output directory "+path+" is not writable", writeErr)
	}
	if closeErr != nil {
		return classifyFilesystemError(constant.ErrCodeOutputDirFailure, "output directory "+path+" is not writable", closeErr)
	}

	log.Debug(constant.MsgOutputDirReady, logger.LoggerInfo{
		ContextFunction: constant.CtxEnsureDir,
		Data: map[string]interface{}{
			constant.DataOutputDir: path,
		},
	})

	return nil
}

// classifyFilesystemError maps an OS error to the taxonomy: permission
// rejections become KindPermissionDenied, everything else KindFilesystem
// under the given code.
func classifyFilesystemError(code, message string, cause error) *Error {
	if errors.Is(cause, fs.ErrPermission) {
		return wrapError(KindPermissionDenied, constant.ErrCodePermissionDenied, message, cause)
	}
	return wrapError(KindFilesystem, code, message, cause)
}
