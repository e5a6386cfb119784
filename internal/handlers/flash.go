package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookieName = "lms_flash"

// setFlash stores a one-shot message shown on the next rendered page.
func setFlash(c *gin.Context, msg string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, msg, 60, "/", "", false, true)
}

func popFlash(c *gin.Context) string {
	msg, err := c.Cookie(flashCookieName)
	if err != nil || msg == "" {
		return ""
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)
	return msg
}
