package rangehttp

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/yourname/rangefs/pkg/rangeproto"
)

type ctxKey struct{}

// requestID присваивает запросу идентификатор и возвращает его в X-Request-Id.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(rangeproto.HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// RequestIDFrom достаёт идентификатор запроса из контекста.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// accessLog пишет одно событие на запрос после того, как ответ сформирован.
func (a *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		a.log.WithFields(log.Fields{
			"req_id": RequestIDFrom(r.Context()),
			"method": r.Method,
			"path":   r.URL.Path,
			"status": status,
			"bytes":  ww.BytesWritten(),
			"dur_ms": time.Since(start).Milliseconds(),
		}).Info("request")
	})
}
