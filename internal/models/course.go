package models

import "html/template"

// Course is built from a course directory at startup and lives only in memory.
type Course struct {
	Slug        string
	Title       string
	Description string
	Author      string
	Markdown    string
	HTML        template.HTML
}

// CourseMetadata is the shape of a course's metadata.json.
type CourseMetadata struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Author      string `json:"author"`
}
