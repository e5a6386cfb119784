package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"lms-portal/internal/auth"
	"lms-portal/internal/cache"
	"lms-portal/internal/catalog"
	"lms-portal/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Accounts is the credential store as seen by the route layer.
type Accounts interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// Options wires a Handler.
type Options struct {
	Catalog          *catalog.Catalog
	Accounts         Accounts
	Sessions         *auth.SessionManager
	Identities       *cache.IdentityCache
	RegistrationOpen bool
	Logger           zerolog.Logger
}

// Handler serves the HTML routes. The catalog is injected once and only read.
type Handler struct {
	catalog          *catalog.Catalog
	accounts         Accounts
	sessions         *auth.SessionManager
	identities       *cache.IdentityCache
	registrationOpen bool
	log              zerolog.Logger
}

func New(opts Options) *Handler {
	return &Handler{
		catalog:          opts.Catalog,
		accounts:         opts.Accounts,
		sessions:         opts.Sessions,
		identities:       opts.Identities,
		registrationOpen: opts.RegistrationOpen,
		log:              opts.Logger,
	}
}

// pageData is the single view model every template receives.
type pageData struct {
	Title            string
	Identity         auth.Identity
	LoggedIn         bool
	RegistrationOpen bool
	Flash            string
	Error            string

	Courses  []models.Course
	Course   models.Course
	Username string
	Next     string

	Heading string
	Message string
}

func (h *Handler) page(c *gin.Context, title string) pageData {
	id, ok := auth.FromContext(c)
	return pageData{
		Title:            title,
		Identity:         id,
		LoggedIn:         ok,
		RegistrationOpen: h.registrationOpen,
		Flash:            popFlash(c),
	}
}

func (h *Handler) renderError(c *gin.Context, status int, heading, message string) {
	data := h.page(c, heading)
	data.Heading = heading
	data.Message = message
	c.HTML(status, "error.html", data)
}

// Health reports liveness and how many courses were loaded.
// GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"courses": h.catalog.Len(),
	})
}

// NotFound renders the 404 page for unknown routes.
func (h *Handler) NotFound(c *gin.Context) {
	h.renderError(c, http.StatusNotFound, "Not found", "The page you requested does not exist.")
}

// safeNext only allows redirects to local paths.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/"
	}
	return next
}
