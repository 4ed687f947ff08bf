package middleware

import (
	"net/http"

	"github.com/shelfwise/library-server-go/internal/config"
)

const AdminSessionCookie = "admin_session"

func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminSessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   AdminSessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

// SessionToken extracts the session cookie value from a request, if any.
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(AdminSessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
