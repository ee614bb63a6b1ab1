package server

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"

	"github.com/voidshard/jobgate/pkg/api/http/common"
)

type ctxKey int

const (
	ctxCredential ctxKey = iota
)

// chain composes middleware; the first given is the outermost.
func chain(mws ...mux.MiddlewareFunc) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		return h
	}
}

// loggingMiddleware shims in a handler middleware that logs requests.
func loggingMiddleware(log *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Debug("request", "method", r.Method, "uri", r.RequestURI, "length", r.ContentLength)
			next.ServeHTTP(w, r)
		})
	}
}

// recoverMiddleware turns a panic in a handler into a 500.
func recoverMiddleware(log *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					log.Error("handler panicked", "method", r.Method, "uri", r.RequestURI, "panic", v, "stack", string(debug.Stack()))
					writeJson(w, http.StatusInternalServerError, &common.ErrorResponse{Error: common.MSG_INTERNAL_ERROR})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// credentialMiddleware moves the caller's credential from the request header into the context.
func credentialMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ctxCredential, r.Header.Get(common.HEADER_API_KEY))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// credential returns the credential set by credentialMiddleware, or ""
func credential(ctx context.Context) string {
	c, _ := ctx.Value(ctxCredential).(string)
	return c
}
