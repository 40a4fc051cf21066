package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/onemarketph/backoffice/internal/identity"
	"github.com/onemarketph/backoffice/internal/model"
	"github.com/onemarketph/backoffice/internal/store"
)

type stubVerifier struct {
	user *identity.User
	err  error
}

func (s *stubVerifier) Introspect(_ context.Context, token string) (*identity.User, error) {
	return s.user, s.err
}

type stubResolver struct {
	admin *model.Admin
	err   error
}

func (s *stubResolver) GetByAuthID(_ context.Context, authID string) (*model.Admin, error) {
	return s.admin, s.err
}

func newTestGate(sessions sessionVerifier, admins adminResolver) http.Handler {
	gate := NewGate([]string{"/sign-in", "/api/health"}, "/sign-in", sessions, admins)
	return gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestGatePublicPathPassesWithoutSession(t *testing.T) {
	h := newTestGate(&stubVerifier{err: identity.ErrInvalidToken}, &stubResolver{err: store.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/sign-in", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestGateProtectedPathWithoutSessionRedirects(t *testing.T) {
	h := newTestGate(&stubVerifier{}, &stubResolver{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/sign-in" {
		t.Errorf("expected redirect to /sign-in, got %q", loc)
	}
}

func TestGateInvalidSessionRedirects(t *testing.T) {
	h := newTestGate(&stubVerifier{err: identity.ErrInvalidToken}, &stubResolver{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "expired"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rr.Code)
	}
}

func TestGateUnknownAdminRedirects(t *testing.T) {
	h := newTestGate(
		&stubVerifier{user: &identity.User{ID: "auth-1"}},
		&stubResolver{err: store.ErrNotFound},
	)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rr.Code)
	}
}

func TestGateValidSessionPassesAndSetsAdmin(t *testing.T) {
	admin := &model.Admin{ID: "a1", Email: "ops@1market.ph", AuthID: "auth-1"}
	gate := NewGate([]string{"/sign-in"}, "/sign-in",
		&stubVerifier{user: &identity.User{ID: "auth-1"}},
		&stubResolver{admin: admin},
	)

	var got *model.Admin
	h := gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = AdminFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if got == nil || got.ID != "a1" {
		t.Errorf("expected admin a1 in context, got %+v", got)
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"missing header", "", "", true},
		{"not bearer", "Basic abc123", "", true},
		{"valid", "Bearer tok-123", "tok-123", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			tok, err := BearerToken(req)
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && tok != tc.want {
				t.Errorf("token = %q, want %q", tok, tc.want)
			}
		})
	}
}
