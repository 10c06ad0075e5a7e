package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/kdduha/healthy-eating/internal/apperrors"
	"github.com/kdduha/healthy-eating/internal/metrics"
	"github.com/kdduha/healthy-eating/internal/models"
	"github.com/kdduha/healthy-eating/internal/upstream"
	"go.uber.org/zap"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

type AnalyzeService struct {
	logger    *zap.Logger
	client    upstream.Client
	modelName string
	cache     Cache
}

func NewAnalyzeService(logger *zap.Logger, client upstream.Client, modelName string) *AnalyzeService {
	return &AnalyzeService{
		logger:    logger,
		client:    client,
		modelName: modelName,
	}
}

func (s *AnalyzeService) SetCacheClient(cache Cache) {
	s.cache = cache
}

// Analyze sends an already validated request upstream and returns the verdict.
func (s *AnalyzeService) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	kind := string(req.Kind())
	logger := s.logger.With(zap.String("kind", kind))

	switch r := req.(type) {
	case *models.TextQuery:
		logger.Info("analysing food", zap.String("food", r.Food))
	case *models.ImageQuery:
		logger.Info("analysing photo", zap.String("media_type", r.MediaType), zap.Int("image_size", len(r.ImageData)))
	}

	var key string
	if s.cache != nil {
		key = s.cacheKey(req)
		cached, found, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("cache get error", zap.Error(err))
		}
		metrics.CacheLookupsTotal(kind, found)
		if found {
			result := models.AnalysisResult(cached)
			logger.Info("served from cache", zap.String("food", result.Food()), zap.String("rating", result.Rating()))
			return result, nil
		}
	}

	payload, err := s.buildPayload(req)
	if err != nil {
		return nil, apperrors.NewInternal(apperrors.MsgGeneric, err)
	}

	start := time.Now()
	result, err := s.client.Send(ctx, payload)
	outcome := "ok"
	if err != nil {
		outcome = string(apperrors.KindOf(err))
	}
	metrics.UpstreamRequestsTotal(s.client.Provider(), kind, outcome)
	metrics.UpstreamRequestDuration(s.client.Provider(), kind, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%s upstream: %w", s.client.Provider(), err)
	}

	logger.Info("analysis done",
		zap.String("food", result.Food()),
		zap.String("rating", result.Rating()+"/10"),
		zap.Duration("took", time.Since(start)),
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, string(result)); err != nil {
			logger.Warn("failed to set cache", zap.Error(err))
		}
	}
	return result, nil
}

func (s *AnalyzeService) cacheKey(req models.AnalysisRequest) string {
	data := []string{string(req.Kind()), s.modelName}
	switch r := req.(type) {
	case *models.TextQuery:
		data = append(data, r.Food)
	case *models.ImageQuery:
		data = append(data, r.MediaType, r.ImageData)
	}

	h := sha256.New()
	for _, part := range data {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
