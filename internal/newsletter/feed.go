package newsletter

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"

	httputil "github.com/lepinkainen/newsletter-forge/pkg/http"
)

// Fetcher downloads the newsletter feed
type Fetcher struct {
	client *httputil.Client
}

// NewFetcher creates a fetcher using the given HTTP configuration
func NewFetcher(config *httputil.ClientConfig) *Fetcher {
	return &Fetcher{client: httputil.NewClient(config)}
}

// Fetch performs a single GET of the feed URL and returns the body.
// Transport failures and non-2xx statuses are returned as *NetworkError.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	slog.Debug("Fetching newsletter feed", "url", url)

	resp, err := f.client.GetWithContext(ctx, url)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	if err := httputil.EnsureSuccess(resp); err != nil {
		// drain and close
		_, _ = httputil.ReadResponseBody(resp)
		return nil, &NetworkError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	body, err := httputil.ReadResponseBody(resp)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	slog.Debug("Fetched newsletter feed", "url", url, "bytes", len(body), "content_type", httputil.GetContentType(resp))
	return body, nil
}

// ParseFeed parses an RSS or Atom document into entries, keeping the feed's order.
// Malformed input is returned as *FeedParseError.
func ParseFeed(data []byte) ([]Entry, error) {
	parser := gofeed.NewParser()
	feed, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &FeedParseError{Err: err}
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entry := Entry{
			Title: strings.TrimSpace(item.Title),
		}

		// Dates are kept in UTC so a page's file name names the UTC day
		if item.PublishedParsed != nil {
			entry.Published = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			entry.Published = item.UpdatedParsed.UTC()
		} else {
			slog.Warn("Feed entry has no publish date", "title", entry.Title)
		}

		// Prefer Content over Description
		if item.Content != "" {
			entry.Content = item.Content
		} else {
			entry.Content = item.Description
		}

		entries = append(entries, entry)
	}

	slog.Debug("Parsed newsletter feed", "title", feed.Title, "entries", len(entries))
	return entries, nil
}
