package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/onemarketph/backoffice/internal/identity"
	appmw "github.com/onemarketph/backoffice/internal/middleware"
	"github.com/onemarketph/backoffice/internal/model"
	"github.com/onemarketph/backoffice/internal/store"
)

type adminResolver interface {
	GetByAuthID(ctx context.Context, authID string) (*model.Admin, error)
}

type tokenVerifier interface {
	Introspect(ctx context.Context, token string) (*identity.User, error)
	Revoke(ctx context.Context, token string) error
}

// AdminHandler serves the admin-identity API. These endpoints authenticate
// themselves from the Authorization header rather than relying on the route
// gate, so API clients get status codes instead of redirects.
type AdminHandler struct {
	BaseHandler
	admins   adminResolver
	sessions tokenVerifier
}

func NewAdminHandler(logger *slog.Logger, admins adminResolver, sessions tokenVerifier) *AdminHandler {
	return &AdminHandler{BaseHandler: BaseHandler{Logger: logger}, admins: admins, sessions: sessions}
}

type adminProjection struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	AuthID string `json:"authId"`
}

// Get resolves the bearer token to the internal admin record.
func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	token, err := appmw.BearerToken(r)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnauthorized, CodeMissingAuthHeader,
			"authorization header is missing or malformed")
		return
	}

	user, err := h.sessions.Introspect(r.Context(), token)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			h.errorResponse(w, r, http.StatusUnauthorized, CodeInvalidAccessToken,
				"access token is invalid or expired")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	admin, err := h.admins.GetByAuthID(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.errorResponse(w, r, http.StatusNotFound, CodeAdminNotFound,
				"no admin account is linked to this identity")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	err = h.writeJSON(w, http.StatusOK, envelope{"data": adminProjection{
		ID:     admin.ID,
		Email:  admin.Email,
		AuthID: admin.AuthID,
	}}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// SignOut invalidates the current session at the identity provider.
func (h *AdminHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token, err := appmw.BearerToken(r)
	if err != nil {
		// Fall back to the session cookie for browser sign-outs.
		cookie, cErr := r.Cookie(appmw.SessionCookieName)
		if cErr != nil {
			h.errorResponse(w, r, http.StatusUnauthorized, CodeMissingAuthHeader,
				"no credential to sign out")
			return
		}
		token = cookie.Value
	}

	if err := h.sessions.Revoke(r.Context(), token); err != nil {
		h.logError(r, err)
		err = h.writeJSON(w, http.StatusBadRequest, envelope{
			"message": "sign out failed",
			"code":    "SIGN_OUT_ERROR",
			"status":  http.StatusBadRequest,
			"error":   err.Error(),
		}, nil)
		if err != nil {
			h.serverErrorResponse(w, r, err)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:    appmw.SessionCookieName,
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	})

	err = h.writeJSON(w, http.StatusOK, envelope{
		"message": "signed out",
		"code":    "SIGN_OUT_SUCCESS",
		"status":  http.StatusOK,
	}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
