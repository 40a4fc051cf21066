package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/onemarketph/backoffice/internal/identity"
	"github.com/onemarketph/backoffice/internal/model"
)

// SessionCookieName is the identity provider's session cookie.
const SessionCookieName = "session"

type sessionVerifier interface {
	Introspect(ctx context.Context, token string) (*identity.User, error)
}

type adminResolver interface {
	GetByAuthID(ctx context.Context, authID string) (*model.Admin, error)
}

// Gate re-validates the session on every request to a protected path and
// redirects unauthenticated requests to the sign-in page. Public paths pass
// through regardless of session state; there is no cached decision.
type Gate struct {
	publicPrefixes []string
	signInPath     string
	sessions       sessionVerifier
	admins         adminResolver
}

func NewGate(publicPrefixes []string, signInPath string, sessions sessionVerifier, admins adminResolver) *Gate {
	return &Gate{
		publicPrefixes: publicPrefixes,
		signInPath:     signInPath,
		sessions:       sessions,
		admins:         admins,
	}
}

func (g *Gate) isPublic(path string) bool {
	for _, prefix := range g.publicPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Redirect(w, r, g.signInPath, http.StatusSeeOther)
			return
		}

		user, err := g.sessions.Introspect(r.Context(), cookie.Value)
		if err != nil {
			http.Redirect(w, r, g.signInPath, http.StatusSeeOther)
			return
		}

		admin, err := g.admins.GetByAuthID(r.Context(), user.ID)
		if err != nil {
			http.Redirect(w, r, g.signInPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), admin)))
	})
}
