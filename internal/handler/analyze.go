package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/kdduha/healthy-eating/internal/apperrors"
	"github.com/kdduha/healthy-eating/internal/models"
	"go.uber.org/zap"
)

const msgTooLarge = "Image is too large. Please try a smaller photo."

type analyzeService interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error)
}

type AnalyzeHandler struct {
	service      analyzeService
	logger       *zap.Logger
	maxImageBody int64
}

func NewAnalyzeHandler(service analyzeService, logger *zap.Logger, maxImageBody int64) *AnalyzeHandler {
	return &AnalyzeHandler{
		service:      service,
		logger:       logger,
		maxImageBody: maxImageBody,
	}
}

// AnalyzeText godoc
// @Summary Rate a food by name
// @Description Sends the food name to the model and returns its verdict unchanged.
// @Tags analyze
// @Accept json
// @Produce json
// @Param request body models.TextQuery true "Food to analyse"
// @Success 200 {object} models.AnalysisResultDoc
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/analyze [post]
func (h *AnalyzeHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req models.TextQuery
	if err := decodeBody(r.Body, &req); err != nil {
		h.fail(w, r, models.KindText, models.InvalidBodyError(models.KindText), err)
		return
	}
	h.analyze(w, r, &req)
}

// AnalyzeImage godoc
// @Summary Rate the food in a photo
// @Description Sends a base64 photo to the model, which estimates the visible portion, calories and macros.
// @Tags analyze
// @Accept json
// @Produce json
// @Param request body models.ImageQuery true "Photo to analyse"
// @Success 200 {object} models.AnalysisResultDoc
// @Failure 400 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/analyze-image [post]
func (h *AnalyzeHandler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxImageBody {
		h.fail(w, r, models.KindImage, apperrors.NewPayloadTooLarge(msgTooLarge), nil)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageBody)

	var req models.ImageQuery
	if err := decodeBody(r.Body, &req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.fail(w, r, models.KindImage, apperrors.NewPayloadTooLarge(msgTooLarge), err)
			return
		}
		h.fail(w, r, models.KindImage, models.InvalidBodyError(models.KindImage), err)
		return
	}
	h.analyze(w, r, &req)
}

func (h *AnalyzeHandler) analyze(w http.ResponseWriter, r *http.Request, req models.AnalysisRequest) {
	if err := req.Validate(); err != nil {
		h.fail(w, r, req.Kind(), err, nil)
		return
	}

	result, err := h.service.Analyze(r.Context(), req)
	if err != nil {
		h.fail(w, r, req.Kind(), err, nil)
		return
	}
	writeRawJSON(w, http.StatusOK, result)
}

// fail logs the failure and writes its ErrorResponse. cause is an extra
// detail for the log only.
func (h *AnalyzeHandler) fail(w http.ResponseWriter, r *http.Request, kind models.RequestKind, err error, cause error) {
	status := apperrors.StatusCode(err)
	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.String("error_kind", string(apperrors.KindOf(err))),
		zap.Int("status", status),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	}
	if cause != nil {
		fields = append(fields, zap.NamedError("cause", cause))
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("analysis failed", fields...)
	} else {
		h.logger.Info("request rejected", fields...)
	}
	writeError(w, status, apperrors.Message(err))
}

func decodeBody(body io.Reader, dst any) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(data, dst)
}
