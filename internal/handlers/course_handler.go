package handlers

import (
	"net/http"

	"lms-portal/internal/models"

	"github.com/gin-gonic/gin"
)

const courseKey = "course"

// Index lists every loaded course
// GET /
func (h *Handler) Index(c *gin.Context) {
	data := h.page(c, "")
	data.Courses = h.catalog.All()
	c.HTML(http.StatusOK, "index.html", data)
}

// CourseExists answers 404 for unknown slugs before any login check, so a
// missing course looks the same to every caller.
func (h *Handler) CourseExists() gin.HandlerFunc {
	return func(c *gin.Context) {
		course, ok := h.catalog.Get(c.Param("slug"))
		if !ok {
			h.renderError(c, http.StatusNotFound, "Course not found", "There is no course at this address.")
			c.Abort()
			return
		}
		c.Set(courseKey, course)
		c.Next()
	}
}

// ShowCourse renders one course with its markdown body
// GET /course/:slug
func (h *Handler) ShowCourse(c *gin.Context) {
	course := c.MustGet(courseKey).(models.Course)
	data := h.page(c, course.Title)
	data.Course = course
	c.HTML(http.StatusOK, "course.html", data)
}
