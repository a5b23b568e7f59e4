// Package feed renders the archive's outputs: HTML pages from templates and the Atom feed of archive pages.
package feed

import (
	"time"

	"github.com/lepinkainen/newsletter-forge/pkg/socialmeta"
)

// Generator builds the Atom feed of archive pages
type Generator struct {
	Title       string
	Description string
	Link        string
	Author      string
}

// NewGenerator creates a new feed generator
func NewGenerator(title, description, link, author string) *Generator {
	return &Generator{
		Title:       title,
		Description: description,
		Link:        link,
		Author:      author,
	}
}

// Item represents a feed item
type Item struct {
	Title       string
	Link        string
	Description string
	Created     time.Time
	ID          string
}

// TemplateData represents the data passed to page templates
type TemplateData struct {
	Heading string
	Card    socialmeta.Card
	Items   []TemplateItem
}

// TemplateItem represents one linked page in a template listing
type TemplateItem struct {
	Title     string
	Link      string
	Published time.Time
}
