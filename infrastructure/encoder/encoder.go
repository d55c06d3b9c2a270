package encoder

import (
	"context"
	"fmt"
	"strconv"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/cache"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/skip2/go-qrcode"
)

// recoveryLevels maps the four standardized error correction tiers onto
// the symbol library's levels.
var recoveryLevels = map[string]qrcode.RecoveryLevel{
	"L": qrcode.Low,
	"M": qrcode.Medium,
	"Q": qrcode.High,
	"H": qrcode.Highest,
}

// Encoder produces QR module matrices. Encoding is deterministic, so
// matrices for repeated inputs are memoized in an LRU; cache hits return
// deep copies to keep each generation's matrix exclusively owned.
type Encoder struct {
	matrices *cache.LRU
	log      *logger.Logger
}

// NewEncoder creates a symbol encoder with a matrix cache of the given
// capacity. Zero disables memoization.
func NewEncoder(cacheSize int, log *logger.Logger) *Encoder {
	return &Encoder{
		matrices: cache.NewLRU(cacheSize),
		log:      log,
	}
}

// Encode builds the module matrix for data at the requested error
// correction level. A version of 0 picks the smallest version that fits.
// A version hint is tried first; when the data does not fit, the version
// grows automatically, and only an overflow at the largest version is
// reported, wrapping generator.ErrDataOverflow.
func (e *Encoder) Encode(ctx context.Context, data string, version int, level string) (generator.Matrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lvl, ok := recoveryLevels[level]
	if !ok {
		return nil, fmt.Errorf("unknown error correction level %q", level)
	}

	key := strconv.Itoa(version) + "|" + level + "|" + data
	if cached, found := e.matrices.Get(key); found {
		if matrix, valid := cached.(generator.Matrix); valid {
			e.log.CtxDebug(ctx, "Symbol matrix served from cache", logger.LoggerInfo{
				ContextFunction: constant.CtxEncode,
				Data: map[string]interface{}{
					constant.DataModules:  len(matrix),
					constant.DataCacheHit: true,
				},
			})
			return copyMatrix(matrix), nil
		}
	}

	code, err := e.build(data, version, lvl)
	if err != nil {
		e.log.CtxWarn(ctx, "Symbol encoding failed", logger.LoggerInfo{
			ContextFunction: constant.CtxEncode,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeDataOverflow,
				Message: err.Error(),
				Type:    constant.ErrTypeEncoding,
			},
		})
		return nil, fmt.Errorf("%w: %v", generator.ErrDataOverflow, err)
	}

	// The renderer owns the quiet zone.
	code.DisableBorder = true
	matrix := generator.Matrix(code.Bitmap())

	e.matrices.Set(key, copyMatrix(matrix))

	e.log.CtxDebug(ctx, "Symbol matrix encoded", logger.LoggerInfo{
		ContextFunction: constant.CtxEncode,
		Data: map[string]interface{}{
			constant.DataModules: len(matrix),
			constant.DataVersion: code.VersionNumber,
			constant.DataLevel:   level,
		},
	})

	return matrix, nil
}

// build constructs the symbol, honoring a version hint but growing past
// it when the data does not fit at that version.
func (e *Encoder) build(data string, version int, lvl qrcode.RecoveryLevel) (*qrcode.QRCode, error) {
	if version > 0 {
		code, err := qrcode.NewWithForcedVersion(data, version, lvl)
		if err == nil {
			return code, nil
		}
	}
	return qrcode.New(data, lvl)
}

func copyMatrix(m generator.Matrix) generator.Matrix {
	dup := make(generator.Matrix, len(m))
	for i, row := range m {
		dup[i] = make([]bool, len(row))
		copy(dup[i], row)
	}
	return dup
}
