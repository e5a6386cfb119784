package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"lms-portal/internal/auth"
	"lms-portal/internal/cache"
	"lms-portal/internal/models"
	"lms-portal/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserFinder resolves a session's user id to the stored account.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// LoadIdentity resolves the session cookie to an identity and attaches it to
// the context. Requests without a valid session for an active user continue
// anonymously; a stale or forged cookie is cleared.
func LoadIdentity(sessions *auth.SessionManager, users UserFinder, identities *cache.IdentityCache, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.TokenFromRequest(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := sessions.Validate(token)
		if err != nil {
			sessions.ClearCookie(c)
			c.Next()
			return
		}

		id, hit := identities.Get(claims.UserID)
		if !hit {
			user, err := users.FindByID(c.Request.Context(), claims.UserID)
			switch {
			case errors.Is(err, store.ErrUserNotFound):
				sessions.ClearCookie(c)
				c.Next()
				return
			case err != nil:
				log.Error().Err(err).Uint("user_id", claims.UserID).Msg("failed to load session user")
				c.Next()
				return
			}
			id = auth.IdentityFromUser(user)
			identities.Put(id)
		}

		if !id.Authenticated() {
			sessions.ClearCookie(c)
			c.Next()
			return
		}

		auth.SetIdentity(c, id)
		c.Next()
	}
}

// RequireLogin redirects anonymous callers to the login form, remembering
// where they were headed.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.FromContext(c); !ok {
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}
