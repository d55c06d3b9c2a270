package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
)

// GeneratorService is the surface of the generation pipeline the API
// depends on
type GeneratorService interface {
	Generate(ctx context.Context, req generator.Request) (string, error)
	History(ctx context.Context, limit int) ([]generator.Generation, error)
}

// Handler handles QR generation HTTP requests
type Handler struct {
	service GeneratorService
	log     *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(service GeneratorService, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// GenerateQR renders a QR code for the data query parameter and serves
// the image. Style parameters mirror the CLI surface.
func (h *Handler) GenerateQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	data := q.Get("data")
	if data == "" {
		h.writeError(w, http.StatusBadRequest, "data parameter is required")
		return
	}

	format := q.Get("format")
	if format == "" {
		format = constant.DefaultExtension
	}
	switch format {
	case "png", "jpg", "jpeg", "bmp":
	default:
		h.writeError(w, http.StatusBadRequest, "unsupported format: "+format+". Must be one of: png, jpg, jpeg, bmp")
		return
	}

	req := generator.Request{
		Data:            data,
		Filename:        constant.FilenamePrefix + uuid.New().String() + "." + format,
		ErrorCorrection: q.Get("ec"),
		DrawerStyle:     q.Get("drawer"),
		ColorMask:       q.Get("color"),
		ForegroundColor: q.Get("foreground"),
		BackgroundColor: q.Get("background"),
		Styled:          q.Get("styled") == "true" || q.Get("styled") == "1",
	}
	if v, err := strconv.Atoi(q.Get("version")); err == nil {
		req.Version = v
	}
	if v, err := strconv.Atoi(q.Get("box_size")); err == nil {
		req.BoxSize = v
	}
	if v, err := strconv.Atoi(q.Get("border")); err == nil {
		req.Border = v
	}

	h.log.CtxDebug(ctx, constant.MsgHandlingQRRequest, logger.LoggerInfo{
		ContextFunction: constant.CtxGenerateQR,
		Data: map[string]interface{}{
			constant.DataStyled: req.Styled,
		},
	})

	path, err := h.service.Generate(ctx, req)
	if err != nil {
		status := http.StatusInternalServerError
		if generator.IsInputValidation(err) {
			status = http.StatusBadRequest
		}
		h.log.CtxWarn(ctx, constant.MsgGenerationFailed, logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateQR,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		h.writeError(w, status, err.Error())
		return
	}

	http.ServeFile(w, r, path)
}

// GetHistory returns recent generations as JSON
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 20
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	h.log.CtxDebug(ctx, constant.MsgHandlingHistoryQuery, logger.LoggerInfo{
		ContextFunction: constant.CtxGetHistory,
		Data: map[string]interface{}{
			constant.DataLimit: limit,
		},
	})

	generations, err := h.service.History(ctx, limit)
	if err != nil {
		h.log.CtxError(ctx, "Failed to query history", logger.LoggerInfo{
			ContextFunction: constant.CtxGetHistory,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(generations)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
