package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// StaticHandler serves the single-page front end. The file is read on every
// request so edits show up without a restart.
type StaticHandler struct {
	indexPath string
	logger    *zap.Logger
}

func NewStaticHandler(indexPath string, logger *zap.Logger) *StaticHandler {
	return &StaticHandler{
		indexPath: indexPath,
		logger:    logger,
	}
}

func (h *StaticHandler) Index(w http.ResponseWriter, r *http.Request) {
	html, err := os.ReadFile(h.indexPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.logger.Error("failed to read index page", zap.String("path", h.indexPath), zap.Error(err))
		}
		NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}
