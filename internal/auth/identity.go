package auth

import (
	"lms-portal/internal/models"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Identity is what the session layer knows about the current user.
type Identity struct {
	UserID   uint
	Username string
	Active   bool
}

func IdentityFromUser(u *models.User) Identity {
	return Identity{
		UserID:   u.ID,
		Username: u.Username,
		Active:   u.IsActive,
	}
}

// Authenticated reports whether the identity belongs to a real, active user.
func (i Identity) Authenticated() bool {
	return i.UserID != 0 && i.Active
}

// SetIdentity attaches an authenticated identity to the request context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// FromContext returns the request's identity and whether one is present and authenticated.
func FromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	if !ok || !id.Authenticated() {
		return Identity{}, false
	}
	return id, true
}
