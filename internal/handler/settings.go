package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/onemarketph/backoffice/internal/mailer"
	appmw "github.com/onemarketph/backoffice/internal/middleware"
	"github.com/onemarketph/backoffice/internal/model"
	"github.com/onemarketph/backoffice/internal/store"
)

type settingsStore interface {
	UpdateSettings(ctx context.Context, id string, settings model.AdminSettings) (*model.Admin, error)
}

type probeMailer interface {
	Reconfigure(cfg *mailer.Config)
	Send(to []string, subject, body string) error
}

// SettingsHandler updates the admin's SMTP credentials and store-wide knobs.
// Routes behind the gate only: the acting admin comes from the context.
type SettingsHandler struct {
	BaseHandler
	admins settingsStore
	mailer probeMailer
}

func NewSettingsHandler(logger *slog.Logger, admins settingsStore, m probeMailer) *SettingsHandler {
	return &SettingsHandler{BaseHandler: BaseHandler{Logger: logger}, admins: admins, mailer: m}
}

// Update saves new settings and points the running mailer at them.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	admin := appmw.AdminFromContext(r.Context())
	if admin == nil {
		h.errorResponse(w, r, http.StatusUnauthorized, CodeMissingAuthHeader, "not signed in")
		return
	}

	var req model.AdminSettings
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}
	if req.RefundDays < 0 {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, "refundDays must not be negative")
		return
	}

	updated, err := h.admins.UpdateSettings(r.Context(), admin.ID, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.errorResponse(w, r, http.StatusNotFound, CodeAdminNotFound, "admin record no longer exists")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	h.mailer.Reconfigure(mailer.NewConfigFromAdmin(updated))

	if err := h.writeJSON(w, http.StatusOK, envelope{"message": "Settings saved", "data": updated}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// TestEmail sends a probe message to the signed-in admin's own address.
func (h *SettingsHandler) TestEmail(w http.ResponseWriter, r *http.Request) {
	admin := appmw.AdminFromContext(r.Context())
	if admin == nil {
		h.errorResponse(w, r, http.StatusUnauthorized, CodeMissingAuthHeader, "not signed in")
		return
	}

	err := h.mailer.Send([]string{admin.Email},
		"Back-office test email",
		"SMTP settings are working. This is a test message from the back office.")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}

	if err := h.writeJSON(w, http.StatusOK, envelope{"message": "Test email sent"}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
