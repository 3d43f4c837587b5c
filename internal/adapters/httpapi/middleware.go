package httpapi

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"evenza/internal/domain/entities"
)

type ctxKey int

const (
	userKey ctxKey = iota
	localeKey
)

func userFrom(ctx context.Context) (entities.User, bool) {
	u, ok := ctx.Value(userKey).(entities.User)
	return u, ok
}

func localeFrom(ctx context.Context) string {
	l, _ := ctx.Value(localeKey).(string)
	return l
}

// requestLogger writes one access log line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			ev := log.Info()
			if ww.Status() >= http.StatusInternalServerError {
				ev = log.Error()
			}
			ev.Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("http request")
		}()
		next.ServeHTTP(ww, r)
	})
}

// withLocale negotiates the response language from Accept-Language.
func (s *Server) withLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := s.tr.Negotiate(r.Header.Get("Accept-Language"))
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), localeKey, locale)))
	})
}

// authenticate requires a valid bearer token and stores its user.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			s.writeCode(w, r, http.StatusUnauthorized, codeUnauthorized)
			return
		}
		user, err := s.verifier.Verify(raw)
		if err != nil {
			log.Debug().Err(err).Msg("token rejected")
			s.writeCode(w, r, http.StatusUnauthorized, codeUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// requireRole lets through users holding one of roles. It runs after authenticate.
func (s *Server) requireRole(roles ...entities.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := userFrom(r.Context())
			if !ok || !slices.Contains(roles, u.Role) {
				s.writeCode(w, r, http.StatusForbidden, codeForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
