package newsletter

import (
	"fmt"
	"time"

	"github.com/gorilla/feeds"

	"github.com/lepinkainen/newsletter-forge/pkg/feed"
	"github.com/lepinkainen/newsletter-forge/pkg/socialmeta"
	"github.com/lepinkainen/newsletter-forge/pkg/urlutils"
)

// ArchiveFeedName is the file name of the Atom feed listing the archive pages
const ArchiveFeedName = "feed.xml"

// ArchiveFeed builds an Atom feed of the archive pages, newest-first.
// The feed's updated time is the newest post's date, so an unchanged archive renders identically.
func ArchiveFeed(posts []*Post, siteURL string) (*feeds.Feed, error) {
	archiveURL, err := urlutils.ResolveURL(siteURL, ArchivePath+"/")
	if err != nil {
		return nil, fmt.Errorf("resolving archive URL: %w", err)
	}

	g := feed.NewGenerator(indexHeading, socialmeta.IndexDescription, archiveURL, socialmeta.Title)

	var updated time.Time
	items := make([]feed.Item, 0, len(posts))
	for _, p := range NewestFirst(posts) {
		link, err := urlutils.ResolveURL(archiveURL, p.Path())
		if err != nil {
			return nil, fmt.Errorf("resolving link for %s: %w", p.Path(), err)
		}

		if p.Date().After(updated) {
			updated = p.Date()
		}

		items = append(items, feed.Item{
			Title:       p.Title(),
			Link:        link,
			Description: socialmeta.ForPost(p.Title()).Description,
			Created:     p.Date(),
			ID:          link,
		})
	}

	return g.Generate(items, updated), nil
}
