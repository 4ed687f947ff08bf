package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/shelfwise/library-server-go/internal/model"
	"github.com/shelfwise/library-server-go/internal/service"
)

type contextKey string

const AdminContextKey contextKey = "admin"

// GetAdmin returns the authenticated admin from the request context, or nil.
func GetAdmin(ctx context.Context) *model.AdminUser {
	if admin, ok := ctx.Value(AdminContextKey).(*model.AdminUser); ok {
		return admin
	}
	return nil
}

// AuthMiddleware resolves the caller's identity from a bearer token or the
// session cookie and gates handlers that require an authenticated admin.
type AuthMiddleware struct {
	adminService   *service.AdminService
	sessionService *service.SessionService
}

func NewAuthMiddleware(
	adminService *service.AdminService,
	sessionService *service.SessionService,
) *AuthMiddleware {
	return &AuthMiddleware{
		adminService:   adminService,
		sessionService: sessionService,
	}
}

// Resolve places the authenticated admin, if any, in the request context.
// It never rejects a request; the Require* gates do that.
func (m *AuthMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin, err := m.resolve(r)
		if err != nil {
			log.Error().Err(err).Msg("auth middleware: identity resolution failed")
		}
		if admin != nil {
			ctx := context.WithValue(r.Context(), AdminContextKey, admin)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects unauthenticated API requests with a JSON 401.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAdmin(r.Context()) == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Authentication required",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdminWeb sends unauthenticated browser requests to the login page.
func (m *AuthMiddleware) RequireAdminWeb(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAdmin(r.Context()) == nil {
			http.Redirect(w, r, "/login/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) resolve(r *http.Request) (*model.AdminUser, error) {
	if token := bearerToken(r); token != "" {
		admin, err := m.adminService.ResolveToken(r.Context(), token)
		if err != nil || admin != nil {
			return admin, err
		}
	}

	if token := SessionToken(r); token != "" {
		return m.sessionService.Resolve(r.Context(), token)
	}

	return nil, nil
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
