package generator

import (
	"context"
	"errors"
	"image"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
)

// Matrix is a square grid of QR modules. It excludes the quiet zone; the
// renderer owns the border.
type Matrix [][]bool

// Request is the immutable input to one generation.
type Request struct {
	Data            string
	Filename        string
	Version         int // 0 means "smallest version that fits"
	ErrorCorrection string
	BoxSize         int
	Border          int
	Styled          bool
	DrawerStyle     string
	ColorMask       string
	ForegroundColor string
	BackgroundColor string
}

// Generation is one recorded generation for the history store.
type Generation struct {
	ID          uint      `json:"id"`
	Data        string    `json:"data"`
	Path        string    `json:"path"`
	Styled      bool      `json:"styled"`
	DrawerStyle string    `json:"drawer_style,omitempty"`
	ColorMask   string    `json:"color_mask,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// RenderOptions is the resolved styling configuration handed to the
// renderer. Built once per request, never mutated after construction.
type RenderOptions struct {
	BoxSize     int
	Border      int
	Styled      bool
	DrawerStyle string
	ColorMask   string
	Foreground  string
	Background  string
}

// SymbolEncoder produces a QR module matrix for validated data. A version
// of 0 requests the smallest version that fits; the encoder grows the
// version automatically until the data fits, reporting ErrDataOverflow
// when even version 40 is too small.
type SymbolEncoder interface {
	Encode(ctx context.Context, data string, version int, level string) (Matrix, error)
}

// Renderer turns a module matrix into a raster image.
type Renderer interface {
	Render(ctx context.Context, matrix Matrix, opts RenderOptions) (image.Image, error)
}

// ImageSink persists a rendered image to a path.
type ImageSink interface {
	Save(img image.Image, path string) error
}

// Repository defines the interface for generation history persistence.
type Repository interface {
	Store(ctx context.Context, gen *Generation) error
	FindRecent(ctx context.Context, limit int) ([]Generation, error)
}

// Service orchestrates one QR generation: validate, encode, render,
// resolve the output path, persist. Strictly sequential; each step gates
// the next, and every failure maps into the error taxonomy.
type Service struct {
	outputDir string
	encoder   SymbolEncoder
	renderer  Renderer
	sink      ImageSink
	repo      Repository
	log       *logger.Logger
}

var errorCorrectionLevels = map[string]struct{}{
	"L": {},
	"M": {},
	"Q": {},
	"H": {},
}

// NewService creates a generation service. The output directory is
// created if missing and probed for write permission once, here; repo may
// be nil to disable history recording.
func NewService(outputDir string, enc SymbolEncoder, r Renderer, sink ImageSink, repo Repository, log *logger.Logger) (*Service, error) {
	if err := ensureOutputDir(outputDir, log); err != nil {
		return nil, err
	}

	log.Info(constant.MsgGeneratorReady, logger.LoggerInfo{
		ContextFunction: constant.CtxDomain,
		Data: map[string]interface{}{
			constant.DataService:   "generator",
			constant.DataOutputDir: outputDir,
		},
	})

	return &Service{
		outputDir: outputDir,
		encoder:   enc,
		renderer:  r,
		sink:      sink,
		repo:      repo,
		log:       log,
	}, nil
}

// OutputDir returns the validated output directory.
func (s *Service) OutputDir() string {
	return s.outputDir
}

// History returns up to limit recent generations, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]Generation, error) {
	if s.repo == nil {
		return nil, errors.New(constant.ErrHistoryDisabled)
	}
	return s.repo.FindRecent(ctx, limit)
}

// Generate runs the full pipeline and returns the path of the written
// image. Context cancellation propagates unmodified at every step.
func (s *Service) Generate(ctx context.Context, req Request) (string, error) {
	req = req.withDefaults()

	s.log.CtxInfo(ctx, constant.MsgGenerationStarting, logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataInput:  truncate(req.Data, constant.FilenameMaxDataLen),
			constant.DataStyled: req.Styled,
			constant.DataLevel:  req.ErrorCorrection,
		},
	})

	if err := ctx.Err(); err != nil {
		return "", err
	}

	level, err := s.validate(ctx, req)
	if err != nil {
		return "", err
	}

	matrix, err := s.encode(ctx, req, level)
	if err != nil {
		return "", err
	}

	img, err := s.render(ctx, matrix, req)
	if err != nil {
		return "", err
	}

	filename := req.Filename
	if filename == "" {
		filename = synthesizeFilename(req.Data, constant.DefaultExtension)
	}
	path := filepath.Join(s.outputDir, filename)

	if err := s.save(ctx, img, path); err != nil {
		return "", err
	}

	s.recordHistory(ctx, req, path)

	s.log.CtxInfo(ctx, constant.MsgGenerationSucceeded, logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataOutputPath: path,
		},
	})

	return path, nil
}

// validate checks data and the error correction level, returning the
// normalized level.
func (s *Service) validate(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Data) == "" {
		err := newInputError(constant.ErrCodeEmptyData, constant.ErrEmptyData)
		s.logValidationFailure(ctx, err)
		return "", err
	}

	level := strings.ToUpper(strings.TrimSpace(req.ErrorCorrection))
	if _, ok := errorCorrectionLevels[level]; !ok {
		err := newInputError(constant.ErrCodeBadLevel,
			constant.ErrInvalidLevel+": "+req.ErrorCorrection+". Must be one of: "+strings.Join(levelNames(), ", "))
		s.logValidationFailure(ctx, err)
		return "", err
	}

	if req.Version != 0 && (req.Version < 1 || req.Version > 40) {
		err := newInputError(constant.ErrCodeBadVersion, constant.ErrInvalidVersion)
		s.logValidationFailure(ctx, err)
		return "", err
	}

	return level, nil
}

func (s *Service) encode(ctx context.Context, req Request, level string) (Matrix, error) {
	matrix, err := s.encoder.Encode(ctx, req.Data, req.Version, level)
	if err != nil {
		if isContextErr(err) {
			return nil, err
		}
		if errors.Is(err, ErrDataOverflow) {
			inputErr := wrapError(KindInputValidation, constant.ErrCodeDataOverflow, constant.ErrDataTooLarge, err)
			s.logValidationFailure(ctx, inputErr)
			return nil, inputErr
		}
		genErr := wrapError(KindGeneration, constant.ErrCodeEncodeFailure, "QR symbol encoding failed", err)
		s.logStepFailure(ctx, genErr, constant.ErrTypeEncoding)
		return nil, genErr
	}
	return matrix, nil
}

func (s *Service) render(ctx context.Context, matrix Matrix, req Request) (image.Image, error) {
	img, err := s.renderer.Render(ctx, matrix, RenderOptions{
		BoxSize:     req.BoxSize,
		Border:      req.Border,
		Styled:      req.Styled,
		DrawerStyle: req.DrawerStyle,
		ColorMask:   req.ColorMask,
		Foreground:  req.ForegroundColor,
		Background:  req.BackgroundColor,
	})
	if err != nil {
		if isContextErr(err) {
			return nil, err
		}
		// Style validation failures are already classified by the renderer.
		var genErr *Error
		if errors.As(err, &genErr) {
			if genErr.Kind == KindInputValidation {
				s.logValidationFailure(ctx, genErr)
			}
			return nil, err
		}
		wrapped := wrapError(KindGeneration, constant.ErrCodeRenderFailure, "image creation failed", err)
		s.logStepFailure(ctx, wrapped, constant.ErrTypeRendering)
		return nil, wrapped
	}
	return img, nil
}

func (s *Service) save(ctx context.Context, img image.Image, path string) error {
	err := s.sink.Save(img, path)
	if err == nil {
		return nil
	}
	if isContextErr(err) {
		return err
	}

	var classified *Error
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, fs.ErrPermission):
		classified = wrapError(KindPermissionDenied, constant.ErrCodePermissionDenied, "cannot save to "+path+": permission denied", err)
	case errors.As(err, &pathErr):
		classified = wrapError(KindFilesystem, constant.ErrCodeSaveFailure, "filesystem error saving image", err)
	default:
		classified = wrapError(KindGeneration, constant.ErrCodeSaveFailure, "failed to save image", err)
	}

	s.logStepFailure(ctx, classified, classified.Kind.String())
	return classified
}

// recordHistory is best-effort: a store failure is logged and never fails
// the generation.
func (s *Service) recordHistory(ctx context.Context, req Request, path string) {
	if s.repo == nil {
		return
	}

	gen := &Generation{
		Data:      truncate(req.Data, constant.FilenameMaxDataLen),
		Path:      path,
		Styled:    req.Styled,
		CreatedAt: time.Now(),
	}
	if req.Styled {
		gen.DrawerStyle = req.DrawerStyle
		gen.ColorMask = req.ColorMask
	}

	if err := s.repo.Store(ctx, gen); err != nil {
		s.log.CtxWarn(ctx, constant.MsgHistoryStoreFailed, logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeHistoryStore,
				Message: err.Error(),
				Type:    constant.ErrTypeHistory,
			},
			Data: map[string]interface{}{
				constant.DataOutputPath: path,
			},
		})
	}
}

func (s *Service) logValidationFailure(ctx context.Context, err *Error) {
	s.log.CtxWarn(ctx, constant.MsgGenerationFailed, logger.LoggerInfo{
		ContextFunction: constant.CtxValidate,
		Error: &logger.CustomError{
			Code:    err.Code,
			Message: err.Message,
			Type:    constant.ErrTypeValidation,
		},
	})
}

func (s *Service) logStepFailure(ctx context.Context, err *Error, errType string) {
	s.log.CtxError(ctx, constant.MsgGenerationFailed, logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Error: &logger.CustomError{
			Code:    err.Code,
			Message: err.Error(),
			Type:    errType,
		},
	})
}

// withDefaults fills unset fields from the documented configuration
// surface defaults.
func (r Request) withDefaults() Request {
	if r.ErrorCorrection == "" {
		r.ErrorCorrection = constant.DefaultErrorCorrection
	}
	if r.BoxSize <= 0 {
		r.BoxSize = constant.DefaultBoxSize
	}
	if r.Border <= 0 {
		r.Border = constant.DefaultBorder
	}
	if r.DrawerStyle == "" {
		r.DrawerStyle = constant.DefaultDrawerStyle
	}
	if r.ColorMask == "" {
		r.ColorMask = constant.DefaultColorMask
	}
	if r.ForegroundColor == "" {
		r.ForegroundColor = constant.DefaultForeground
	}
	if r.BackgroundColor == "" {
		r.BackgroundColor = constant.DefaultBackground
	}
	return r
}

func levelNames() []string {
	names := make([]string, 0, len(errorCorrectionLevels))
	for name := range errorCorrectionLevels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
