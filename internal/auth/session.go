package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionCookieName = "lms_session"

	sessionIssuer   = "lms-portal"
	sessionAudience = "lms-portal-web"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// Claims represents the session token claims
type Claims struct {
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionOptions configures a SessionManager.
type SessionOptions struct {
	Secret string
	TTL    time.Duration
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// SessionManager signs session tokens and moves them in and out of the session cookie.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewSessionManager(opts SessionOptions) *SessionManager {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{
		secret: []byte(opts.Secret),
		ttl:    ttl,
		secure: opts.Secure,
		now:    time.Now,
	}
}

// Issue generates a signed session token for the given user
func (m *SessionManager) Issue(userID uint, username string) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
			Audience:  jwt.ClaimStrings{sessionAudience},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate checks signature, expiry, issuer and audience and returns the claims.
func (m *SessionManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithAudience(sessionAudience),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// SetCookie stores token in the session cookie.
func (m *SessionManager) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
}

// ClearCookie expires the session cookie.
func (m *SessionManager) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", m.secure, true)
}

// TokenFromRequest returns the session token carried by the request, if any.
func TokenFromRequest(c *gin.Context) (string, bool) {
	token, err := c.Cookie(SessionCookieName)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}
