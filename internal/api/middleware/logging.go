package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logger минимальный интерфейс логгера для middleware
type Logger interface {
	Info(format string, v ...interface{})
}

// Logging пишет access-лог запроса: метод, путь, статус, длительность
// и идентификатор запроса из контекста
func Logging(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			log.Info("%s %s %d %s request_id=%s",
				r.Method, r.URL.Path, recorder.status, time.Since(start), GetRequestID(r.Context()))
		})
	}
}
