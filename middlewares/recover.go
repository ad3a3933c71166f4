package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
)

// PanicError is a recovered panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Recover turns a handler panic into a logged *PanicError and a 500
// response. http.ErrAbortHandler is re-raised.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]
				pe := &PanicError{Value: v, Stack: stack}

				log.ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", pe),
					slog.String("stack", string(stack)),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
