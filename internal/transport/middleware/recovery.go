package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/sidra/content-factory/pkg/ctxutil"
)

type panicObserver interface {
	RecordPanic()
}

// Recovery turns a handler panic into a 500 failure envelope. The panic is
// logged with its stack and counted on obs when obs is not nil.
func Recovery(logger *slog.Logger, obs panicObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
				)
				if obs != nil {
					obs.RecordPanic()
				}
				writeError(w, http.StatusInternalServerError, "internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
