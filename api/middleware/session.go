package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/shopcart-backend/api/responses"
	"github.com/angelmondragon/shopcart-backend/internal/session"
	pkgerrors "github.com/angelmondragon/shopcart-backend/pkg/errors"
	"github.com/angelmondragon/shopcart-backend/pkg/logger"
)

const SessionHeader = "X-Session-Id"

// SessionProvider resolves a session id to its state. Get registers the
// session; Peek may hand back a detached one for read-only requests.
type SessionProvider interface {
	Get(ctx context.Context, id string) (*session.Session, error)
	Peek(ctx context.Context, id string) (*session.Session, error)
}

// Session resolves the X-Session-Id header (minting a UUID when absent),
// echoes it back and places the session on the request context. GET and HEAD
// requests only peek, so they never register a session.
func Session(provider SessionProvider, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(SessionHeader))
			if id == "" {
				id = uuid.NewString()
			}
			if !session.ValidID(id) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid session id").
					WithDetails(map[string]any{"header": SessionHeader}))
				return
			}

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithSessionID(ctx, id)
			}

			resolve := provider.Get
			if readOnly(r.Method) {
				resolve = provider.Peek
			}
			sess, err := resolve(ctx, id)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load session"))
				return
			}

			w.Header().Set(SessionHeader, id)
			next.ServeHTTP(w, r.WithContext(WithSession(ctx, sess)))
		})
	}
}

func readOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}
