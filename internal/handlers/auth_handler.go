package handlers

import (
	"errors"
	"net/http"

	"lms-portal/internal/auth"
	"lms-portal/internal/store"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidLogin       = "Invalid username or password"
	msgMissingFields      = "Username and password are required"
	msgUsernameTaken      = "Username already exists"
	msgPasswordTooLong    = "Password must be at most 72 bytes"
	msgRegistered         = "Registration successful. Please log in."
	msgSomethingWentWrong = "Something went wrong, please try again."
)

// CredentialsForm is the login and registration form payload
type CredentialsForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// LoginForm renders the login form
// GET /login
func (h *Handler) LoginForm(c *gin.Context) {
	if _, ok := auth.FromContext(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	data := h.page(c, "Log in")
	data.Next = c.Query("next")
	c.HTML(http.StatusOK, "login.html", data)
}

// Login checks credentials and starts a session
// POST /login
func (h *Handler) Login(c *gin.Context) {
	if _, ok := auth.FromContext(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLogin(c, http.StatusBadRequest, form.Username, msgMissingFields)
		return
	}

	user, err := h.accounts.Authenticate(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, store.ErrInvalidCredentials) {
		h.renderLogin(c, http.StatusUnauthorized, form.Username, msgInvalidLogin)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("login failed")
		h.renderLogin(c, http.StatusInternalServerError, form.Username, msgSomethingWentWrong)
		return
	}

	token, err := h.sessions.Issue(user.ID, user.Username)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", user.ID).Msg("failed to issue session")
		h.renderLogin(c, http.StatusInternalServerError, form.Username, msgSomethingWentWrong)
		return
	}
	h.sessions.SetCookie(c, token)
	h.identities.Put(auth.IdentityFromUser(user))

	h.log.Info().Str("username", user.Username).Msg("user logged in")
	c.Redirect(http.StatusFound, safeNext(c.Query("next")))
}

func (h *Handler) renderLogin(c *gin.Context, status int, username, msg string) {
	data := h.page(c, "Log in")
	data.Username = username
	data.Next = c.Query("next")
	data.Error = msg
	c.HTML(status, "login.html", data)
}

// Logout ends the session
// GET /logout
func (h *Handler) Logout(c *gin.Context) {
	if id, ok := auth.FromContext(c); ok {
		h.identities.Evict(id.UserID)
	}
	h.sessions.ClearCookie(c)
	c.Redirect(http.StatusFound, "/")
}

// RegisterForm renders the registration form
// GET /register
func (h *Handler) RegisterForm(c *gin.Context) {
	if h.registrationClosedFor(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "register.html", h.page(c, "Register"))
}

// Register creates an account; the user still has to log in afterwards
// POST /register
func (h *Handler) Register(c *gin.Context) {
	if h.registrationClosedFor(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderRegister(c, http.StatusBadRequest, form.Username, msgMissingFields)
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), form.Username, form.Password)
	switch {
	case errors.Is(err, store.ErrDuplicateUsername):
		h.renderRegister(c, http.StatusConflict, form.Username, msgUsernameTaken)
		return
	case errors.Is(err, store.ErrMissingCredentials):
		h.renderRegister(c, http.StatusBadRequest, form.Username, msgMissingFields)
		return
	case errors.Is(err, store.ErrPasswordTooLong):
		h.renderRegister(c, http.StatusBadRequest, form.Username, msgPasswordTooLong)
		return
	case err != nil:
		h.log.Error().Err(err).Msg("registration failed")
		h.renderRegister(c, http.StatusInternalServerError, form.Username, msgSomethingWentWrong)
		return
	}

	h.log.Info().Str("username", user.Username).Msg("user registered")
	setFlash(c, msgRegistered)
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) renderRegister(c *gin.Context, status int, username, msg string) {
	data := h.page(c, "Register")
	data.Username = username
	data.Error = msg
	c.HTML(status, "register.html", data)
}

func (h *Handler) registrationClosedFor(c *gin.Context) bool {
	if !h.registrationOpen {
		return true
	}
	_, loggedIn := auth.FromContext(c)
	return loggedIn
}
