// Package audit provides middleware for auditing requests to the
// identity surface.
package audit

import (
	"log/slog"
	"net/http"

	"github.com/campushq/classroom-idm/pkg/login"
)

// Config holds the configuration for the audit middleware.
type Config struct {
	// Logger receives the audit records. Defaults to slog.Default.
	Logger *slog.Logger
	// Source tags every record with the emitting service.
	Source string
}

// Middleware emits one structured audit record per request.
type Middleware struct {
	logger *slog.Logger
	source string
}

func NewMiddleware(config Config) *Middleware {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Source == "" {
		config.Source = "classroom-idm"
	}
	return &Middleware{
		logger: config.Logger,
		source: config.Source,
	}
}

// AuditAuthMiddleware records authenticated requests. Install it after
// the session middleware so the resolved account is on the context; a
// request that reaches it without an identity is still recorded, marked
// anonymous.
func (m *Middleware) AuditAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attrs := []any{
			"source", m.source,
			"method", r.Method,
			"uri", r.RequestURI,
		}
		if authAccount, ok := login.AuthAccountFromContext(r.Context()); ok {
			attrs = append(attrs, "account", authAccount)
		} else {
			attrs = append(attrs, "anonymous", true)
		}
		m.logger.Info("audit", attrs...)

		next.ServeHTTP(w, r)
	})
}
