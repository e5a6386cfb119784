// Package catalog loads the read-only course catalog from disk.
//
// Each immediate subdirectory of the courses directory is one course:
//
//	courses/
//	  intro-to-go/
//	    metadata.json   {"title": "...", "description": "...", "author": "..."}
//	    content.md
//
// The directory name is the course slug.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"lms-portal/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
)

const (
	MetadataFile = "metadata.json"
	ContentFile  = "content.md"
)

// ErrCatalogDirMissing means the courses directory itself is unusable.
// Unlike a broken course, this aborts the whole load.
var ErrCatalogDirMissing = errors.New("courses directory does not exist")

var (
	validate = validator.New()
	markdown = goldmark.New()
)

// Catalog is the immutable set of loaded courses. It is safe for concurrent
// readers since nothing mutates it after construction.
type Catalog struct {
	courses []models.Course
	index   map[string]int
}

// New builds a catalog from already constructed courses, keeping the first
// course for any repeated slug.
func New(courses ...models.Course) *Catalog {
	c := &Catalog{
		courses: make([]models.Course, 0, len(courses)),
		index:   make(map[string]int, len(courses)),
	}
	for _, course := range courses {
		if _, ok := c.index[course.Slug]; ok {
			continue
		}
		c.index[course.Slug] = len(c.courses)
		c.courses = append(c.courses, course)
	}
	return c
}

// All returns the courses in load order.
func (c *Catalog) All() []models.Course {
	out := make([]models.Course, len(c.courses))
	copy(out, c.courses)
	return out
}

// Get looks a course up by slug.
func (c *Catalog) Get(slug string) (models.Course, bool) {
	i, ok := c.index[slug]
	if !ok {
		return models.Course{}, false
	}
	return c.courses[i], true
}

func (c *Catalog) Len() int {
	return len(c.courses)
}

// Load scans dir for course directories. A course that cannot be read or
// parsed is logged and skipped; only a missing dir fails the load.
//
// Directories are visited in lexical order. Two directories whose names
// normalize to the same slug (for example "Intro-Go" and "intro-go") would be
// ambiguous in URLs, so the later one is rejected.
func Load(dir string, log zerolog.Logger) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogDirMissing, dir)
		}
		return nil, fmt.Errorf("stat courses directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrCatalogDirMissing, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read courses directory %s: %w", dir, err)
	}

	var courses []models.Course
	claimed := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		key := normalize(name)
		if owner, taken := claimed[key]; taken {
			log.Warn().
				Str("course", name).
				Str("conflicts_with", owner).
				Msg("skipping course: slug collides with an already loaded course")
			continue
		}

		course, err := loadCourse(filepath.Join(dir, name), name)
		if err != nil {
			log.Warn().Str("course", name).Err(err).Msg("skipping course")
			continue
		}
		claimed[key] = name
		courses = append(courses, course)
	}

	log.Info().Str("dir", dir).Int("courses", len(courses)).Msg("course catalog loaded")
	return New(courses...), nil
}

func loadCourse(path, name string) (models.Course, error) {
	raw, err := os.ReadFile(filepath.Join(path, MetadataFile))
	if err != nil {
		return models.Course{}, fmt.Errorf("read %s: %w", MetadataFile, err)
	}
	var meta models.CourseMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return models.Course{}, fmt.Errorf("parse %s: %w", MetadataFile, err)
	}
	meta.Title = strings.TrimSpace(meta.Title)
	meta.Description = strings.TrimSpace(meta.Description)
	meta.Author = strings.TrimSpace(meta.Author)
	if err := validate.Struct(meta); err != nil {
		return models.Course{}, fmt.Errorf("invalid %s: %w", MetadataFile, err)
	}

	content, err := os.ReadFile(filepath.Join(path, ContentFile))
	if err != nil {
		return models.Course{}, fmt.Errorf("read %s: %w", ContentFile, err)
	}
	html, err := Render(string(content))
	if err != nil {
		return models.Course{}, err
	}

	return models.Course{
		Slug:        name,
		Title:       meta.Title,
		Description: meta.Description,
		Author:      meta.Author,
		Markdown:    string(content),
		HTML:        html,
	}, nil
}

// Render converts CommonMark markdown to HTML. Raw HTML blocks in the
// source are omitted from the output.
func Render(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func normalize(name string) string {
	if s := slug.Make(name); s != "" {
		return s
	}
	return name
}
