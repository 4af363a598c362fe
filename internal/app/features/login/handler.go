// internal/app/features/login/handler.go
package login

import (
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/courtpost/internal/app/features/errors"
	"github.com/dalemusser/courtpost/internal/app/system/gate"
	"github.com/dalemusser/courtpost/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// Handler serves the shared-password sign-in flow. The app has a single
// gate password rather than per-user accounts; anyone who knows it can
// use the builder.
type Handler struct {
	Log          *zap.Logger
	SessionMgr   *gate.SessionManager
	ErrLog       *uierrors.ErrorLogger
	PasswordHash string // bcrypt hash of the gate password; empty disables the gate (dev only)
}

func NewHandler(sessionMgr *gate.SessionManager, errLog *uierrors.ErrorLogger, passwordHash string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:          logger,
		SessionMgr:   sessionMgr,
		ErrLog:       errLog,
		PasswordHash: passwordHash,
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	ReturnURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if h.SessionMgr.IsSignedIn(r) {
		http.Redirect(w, r, "/builder", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, h.SessionMgr, "Sign in", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	ret := strings.TrimSpace(r.FormValue("return"))
	password := r.FormValue("password")

	switch {
	case h.PasswordHash == "":
		// Gate disabled (local dev). Let everyone in, loudly.
		h.Log.Warn("gate password not configured; allowing sign-in without a password")
	case password == "":
		h.renderFormWithError(w, r, "Please enter the password.", ret)
		return
	case !gate.CheckPassword(password, h.PasswordHash):
		h.Log.Warn("sign-in failed: wrong password", zap.String("remote", r.RemoteAddr))
		h.renderFormWithError(w, r, "Incorrect password. Please try again.", ret)
		return
	}

	if err := h.SessionMgr.SignIn(w, r); err != nil {
		h.ErrLog.LogServerError(w, r, "sign-in session save failed", err, "Unable to create session. Please try again.", "/login")
		return
	}

	dest := urlutil.SafeReturn(ret, "", "/builder")
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, ret string) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, h.SessionMgr, "Sign in", "/"),
		Error:     msg,
		ReturnURL: ret,
	})
}
