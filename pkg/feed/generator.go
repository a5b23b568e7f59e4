package feed

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/feeds"
)

// Generate creates a feed from the provided items.
// updated is passed in rather than taken from the clock so unchanged input renders identically.
func (g *Generator) Generate(items []Item, updated time.Time) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       g.Title,
		Link:        &feeds.Link{Href: g.Link},
		Description: g.Description,
		Author:      &feeds.Author{Name: g.Author},
		Id:          g.Link,
		Created:     updated,
		Updated:     updated,
	}

	for _, item := range items {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       item.Title,
			Link:        &feeds.Link{Href: item.Link},
			Description: item.Description,
			Author:      &feeds.Author{Name: g.Author},
			Created:     item.Created,
			Id:          item.ID,
		})
	}

	slog.Debug("Generated feed", "items", len(feed.Items))
	return feed
}

// RenderAtom serializes the feed as an Atom document
func RenderAtom(feed *feeds.Feed) ([]byte, error) {
	var buf bytes.Buffer
	if err := feed.WriteAtom(&buf); err != nil {
		return nil, fmt.Errorf("failed to write atom feed: %w", err)
	}

	slog.Debug("Rendered atom feed", "items", len(feed.Items), "bytes", buf.Len())
	return buf.Bytes(), nil
}
