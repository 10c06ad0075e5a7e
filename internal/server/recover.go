package server

import (
	"net/http"

	"github.com/kdduha/healthy-eating/internal/handler"
	"go.uber.org/zap"
)

// Recoverer turns a handler panic into the usual JSON 500 so API clients
// still get one error object.
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				logger.Error("panic recovered",
					zap.Any("panic", rvr),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"),
				)
				handler.InternalError(w, r)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
