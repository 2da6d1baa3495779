package pkg

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// GenerateNewSessionID - generates a new unique sessionID.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// IsValidSessionID reports whether id looks like a value produced by GenerateNewSessionID.
func IsValidSessionID(id string) bool {
	return uuid.Validate(id) == nil
}

const SessionCookieName = "user_session"

// SessionFromRequest returns the session id carried by r. When r has no valid
// session cookie a new id is generated and the cookie to set is returned too.
// The cookie lives for ttl; with ttl <= 0 it lasts until the browser closes.
func SessionFromRequest(r *http.Request, ttl time.Duration) (string, *http.Cookie) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && IsValidSessionID(cookie.Value) {
		return cookie.Value, nil
	}

	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    GenerateNewSessionID(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}

	if ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
		cookie.MaxAge = int(ttl.Seconds())
	}

	return cookie.Value, cookie
}
