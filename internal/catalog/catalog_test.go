package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lms-portal/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeCourse(t *testing.T, root, name, metadata, content string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	if metadata != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, MetadataFile), []byte(metadata), 0o644))
	}
	if content != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ContentFile), []byte(content), 0o644))
	}
}

func TestLoad_SkipsCourseMissingContent(t *testing.T) {
	root := t.TempDir()
	writeCourse(t, root, "go-basics", `{"title":"Go Basics","description":"Start here","author":"Rob"}`, "# Title\n\nHello")
	writeCourse(t, root, "broken", `{"title":"Broken","description":"No content"}`, "")

	var logs bytes.Buffer
	cat, err := Load(root, zerolog.New(&logs))
	require.NoError(t, err)

	require.Equal(t, 1, cat.Len())
	course, ok := cat.Get("go-basics")
	require.True(t, ok)
	require.Equal(t, "Go Basics", course.Title)
	require.Equal(t, "Start here", course.Description)
	require.Equal(t, "Rob", course.Author)
	require.Contains(t, string(course.HTML), "<h1>Title</h1>")

	_, ok = cat.Get("broken")
	require.False(t, ok)
	require.Contains(t, logs.String(), `"course":"broken"`)
	require.Contains(t, logs.String(), "skipping course")
}

func TestLoad_SkipsMalformedMetadata(t *testing.T) {
	root := t.TempDir()
	writeCourse(t, root, "bad-json", `{"title":`, "body")
	writeCourse(t, root, "no-title", `{"description":"d"}`, "body")
	writeCourse(t, root, "blank-description", `{"title":"t","description":"   "}`, "body")
	writeCourse(t, root, "no-metadata", "", "body")
	writeCourse(t, root, "ok", `{"title":"OK","description":"fine"}`, "body")

	cat, err := Load(root, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 1, cat.Len())

	course, ok := cat.Get("ok")
	require.True(t, ok)
	require.Empty(t, course.Author)
}

func TestLoad_OrderIgnoresFilesAndHiddenDirs(t *testing.T) {
	root := t.TempDir()
	writeCourse(t, root, "zeta", `{"title":"Z","description":"z"}`, "z")
	writeCourse(t, root, "alpha", `{"title":"A","description":"a"}`, "a")
	writeCourse(t, root, ".draft", `{"title":"D","description":"d"}`, "d")
	writeCourse(t, filepath.Join(root, "alpha"), "nested", `{"title":"N","description":"n"}`, "n")
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("notes"), 0o644))

	cat, err := Load(root, zerolog.Nop())
	require.NoError(t, err)

	var slugs []string
	for _, c := range cat.All() {
		slugs = append(slugs, c.Slug)
	}
	require.Equal(t, []string{"alpha", "zeta"}, slugs)
}

func TestLoad_RejectsCollidingSlug(t *testing.T) {
	root := t.TempDir()
	writeCourse(t, root, "Intro-Go", `{"title":"Upper","description":"u"}`, "u")
	writeCourse(t, root, "intro-go", `{"title":"Lower","description":"l"}`, "l")
	if entries, _ := os.ReadDir(root); len(entries) < 2 {
		t.Skip("case-insensitive filesystem")
	}

	var logs bytes.Buffer
	cat, err := Load(root, zerolog.New(&logs))
	require.NoError(t, err)

	require.Equal(t, 1, cat.Len())
	course, ok := cat.Get("Intro-Go")
	require.True(t, ok)
	require.Equal(t, "Upper", course.Title)
	require.Contains(t, logs.String(), `"conflicts_with":"Intro-Go"`)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), zerolog.Nop())
	require.ErrorIs(t, err, ErrCatalogDirMissing)
}

func TestLoad_PathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "courses")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := Load(file, zerolog.Nop())
	require.ErrorIs(t, err, ErrCatalogDirMissing)
}

func TestRender(t *testing.T) {
	html, err := Render("# Title\n\nHello")
	require.NoError(t, err)
	require.Contains(t, string(html), "<h1>Title</h1>")
	require.Contains(t, string(html), "<p>Hello</p>")

	html, err = Render("- one\n- *two*\n\nuse `go test` and [docs](https://go.dev)")
	require.NoError(t, err)
	out := string(html)
	require.Contains(t, out, "<li>one</li>")
	require.Contains(t, out, "<em>two</em>")
	require.Contains(t, out, "<code>go test</code>")
	require.Contains(t, out, `<a href="https://go.dev">docs</a>`)
}

func TestRender_DropsRawHTML(t *testing.T) {
	html, err := Render("<script>alert(1)</script>\n\ntext")
	require.NoError(t, err)
	require.False(t, strings.Contains(string(html), "<script>"))
}

func TestNew_FirstSlugWins(t *testing.T) {
	cat := New(
		models.Course{Slug: "a", Title: "first"},
		models.Course{Slug: "a", Title: "second"},
		models.Course{Slug: "b", Title: "b"},
	)
	require.Equal(t, 2, cat.Len())
	course, ok := cat.Get("a")
	require.True(t, ok)
	require.Equal(t, "first", course.Title)

	all := cat.All()
	all[0].Title = "mutated"
	course, _ = cat.Get("a")
	require.Equal(t, "first", course.Title)
}
