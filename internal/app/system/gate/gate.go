// internal/app/system/gate/gate.go

// Package gate implements the staff access gate: one shared password,
// cookie-backed sessions. There are no user accounts or roles; anyone
// past the gate can build newsletters.
package gate

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	isAuthKey = "is_authenticated"
)

// SessionManager owns the cookie store and the signed-in check.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds the cookie store. The session key must be
// present; 32+ random chars are expected in production.
//
// In production (secure=true) cookies are Secure with SameSite=None so
// they survive cross-site redirects over HTTPS; in dev over plain
// http://localhost, Lax keeps them accepted.
func NewSessionManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// Store exposes the underlying cookie store (logout needs its options
// to issue a matching deletion cookie).
func (m *SessionManager) Store() *sessions.CookieStore { return m.store }

// GetSession returns the request's session, or a fresh one when the
// cookie fails to decode.
func (m *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, m.name)
}

// SignIn marks the session authenticated.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.GetSession(r)
	if err != nil {
		// A decode failure just means a stale or tampered cookie; the
		// fresh session Get hands back is fine to sign into. Anything
		// else is worth a closer look.
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			m.log.Warn("session cookie failed to decode, issuing fresh session", zap.Error(err))
		} else {
			m.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
		}
	}
	sess.Values[isAuthKey] = true
	return sess.Save(r, w)
}

// SignOut clears the session by issuing a matching deletion cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.GetSession(r)
	if err != nil {
		m.log.Warn("session decode failed during sign-out", zap.Error(err))
	}
	if opts := m.store.Options; opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// IsSignedIn reports whether the request carries an authenticated
// session.
func (m *SessionManager) IsSignedIn(r *http.Request) bool {
	sess, err := m.GetSession(r)
	if err != nil {
		return false
	}
	isAuth, _ := sess.Values[isAuthKey].(bool)
	return isAuth
}

// RequireSignedIn guards a route. If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.IsSignedIn(r) {
			next.ServeHTTP(w, r)
			return
		}

		ret := url.QueryEscape(r.URL.RequestURI())

		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Redirect", "/login?return="+ret)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if wantsHTML(r) {
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}

		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

/*─────────────────────────────────────────────────────────────────────────────*
| Password helpers                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// HashPassword hashes the gate password for storage in config.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a submitted password against the configured
// bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
