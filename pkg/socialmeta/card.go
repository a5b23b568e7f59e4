// Package socialmeta builds and reads the Twitter card <meta> tags carried by every archive page.
package socialmeta

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/lepinkainen/newsletter-forge/pkg/dom"
)

// Defaults shared by the newsletter pages and the archive index
const (
	CardType = "summary"
	Site     = "@155pod"
	Title    = "1:55"
	Image    = "https://155pod.com/newsletter_logo.png"

	// Tagline follows the post title in a post's description
	Tagline = "1:55 - A newsletter about a podcast about “punk” songs."

	// IndexDescription describes the archive index page
	IndexDescription = Tagline + " By @samsthrlnd and @josiahhughes."
)

// Card represents the Twitter card metadata of a page
type Card struct {
	Card        string
	Site        string
	Title       string
	Image       string
	Description string
}

// Tag is a single name/content meta pair
type Tag struct {
	Name    string
	Content string
}

// ForPost returns the card for a newsletter post with the given title
func ForPost(title string) Card {
	return Card{
		Card:        CardType,
		Site:        Site,
		Title:       Title,
		Image:       Image,
		Description: title + " - " + Tagline,
	}
}

// ForIndex returns the card for the archive index page
func ForIndex() Card {
	c := ForPost("")
	c.Description = IndexDescription
	return c
}

// Tags returns the card's meta tags in their document order
func (c Card) Tags() []Tag {
	return []Tag{
		{Name: "twitter:card", Content: c.Card},
		{Name: "twitter:site", Content: c.Site},
		{Name: "twitter:title", Content: c.Title},
		{Name: "twitter:image", Content: c.Image},
		{Name: "twitter:description", Content: c.Description},
	}
}

// Nodes returns detached <meta> elements for the card's tags
func (c Card) Nodes() []*html.Node {
	tags := c.Tags()
	nodes := make([]*html.Node, 0, len(tags))
	for _, t := range tags {
		nodes = append(nodes, dom.Element(atom.Meta,
			html.Attribute{Key: "name", Val: t.Name},
			html.Attribute{Key: "content", Val: t.Content},
		))
	}
	return nodes
}

// Extract collects the twitter:* meta tags of a document in document order
func Extract(doc *html.Node) []Tag {
	var tags []Tag
	for _, n := range dom.FindAll(doc, dom.Tag(atom.Meta)) {
		name, ok := dom.Attr(n, "name")
		if !ok {
			name, _ = dom.Attr(n, "property")
		}
		if !strings.HasPrefix(name, "twitter:") {
			continue
		}
		content, _ := dom.Attr(n, "content")
		tags = append(tags, Tag{Name: name, Content: content})
	}
	return tags
}
