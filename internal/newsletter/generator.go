package newsletter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httputil "github.com/lepinkainen/newsletter-forge/pkg/http"
)

// Options configures a generator run
type Options struct {
	FeedURL   string
	OutputDir string
	SiteURL   string

	// Strict aborts the run on the first post with malformed content
	Strict bool
	// Offline renders from the stored snapshot instead of fetching the feed
	Offline bool
	// ArchiveFeed also writes an Atom feed of the archive pages
	ArchiveFeed bool

	HTTP      *httputil.ClientConfig
	Snapshots Snapshots
}

// SkippedPost records a post left out of the archive
type SkippedPost struct {
	Path string
	Err  error
}

// Result summarises a generator run
type Result struct {
	Written []string
	Skipped []SkippedPost
}

// Generator runs the fetch, link, rewrite and write pipeline
type Generator struct {
	opts    Options
	fetcher *Fetcher
	writer  *Writer
}

// NewGenerator creates a generator for the given options
func NewGenerator(opts Options) *Generator {
	return &Generator{
		opts:    opts,
		fetcher: NewFetcher(opts.HTTP),
		writer:  NewWriter(opts.OutputDir),
	}
}

// LoadPosts fetches and parses the feed and returns its posts linked oldest-to-newest
func (g *Generator) LoadPosts(ctx context.Context) ([]*Post, error) {
	body, err := g.feedBody(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := ParseFeed(body)
	if err != nil {
		return nil, err
	}

	// Only feeds that parse become snapshots
	if !g.opts.Offline && g.opts.Snapshots != nil {
		if err := g.opts.Snapshots.Save(g.opts.FeedURL, body); err != nil {
			slog.Warn("Failed to store feed snapshot", "url", g.opts.FeedURL, "error", err)
		}
	}

	return LinkPosts(entries), nil
}

func (g *Generator) feedBody(ctx context.Context) ([]byte, error) {
	if g.opts.Offline {
		if g.opts.Snapshots == nil {
			return nil, &NetworkError{URL: g.opts.FeedURL, Err: errors.New("offline mode needs a snapshot store")}
		}
		body, ok, err := g.opts.Snapshots.Load(g.opts.FeedURL)
		if err != nil {
			return nil, &NetworkError{URL: g.opts.FeedURL, Err: fmt.Errorf("loading snapshot: %w", err)}
		}
		if !ok {
			return nil, &NetworkError{URL: g.opts.FeedURL, Err: errors.New("no stored snapshot")}
		}
		slog.Info("Using stored feed snapshot", "url", g.opts.FeedURL)
		return body, nil
	}

	return g.fetcher.Fetch(ctx, g.opts.FeedURL)
}

// Run regenerates the whole archive. Fetch and parse failures abort before anything is written.
// A post with malformed content is skipped with a warning, or aborts the run in strict mode.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	posts, err := g.LoadPosts(ctx)
	if err != nil {
		return nil, err
	}

	slog.Debug("Generating archive", "posts", len(posts), "dir", g.opts.OutputDir)

	result := &Result{}
	for _, p := range posts {
		page, err := Transform(p)
		if err != nil {
			var malformed *MalformedContentError
			if errors.As(err, &malformed) && !g.opts.Strict {
				slog.Warn("Skipping malformed post", "path", p.Path(), "title", p.Title(), "error", err)
				result.Skipped = append(result.Skipped, SkippedPost{Path: p.Path(), Err: err})
				continue
			}
			return result, err
		}

		path, err := g.writer.WritePost(p, page)
		if err != nil {
			return result, err
		}
		result.Written = append(result.Written, path)
	}

	index, err := RenderIndex(posts)
	if err != nil {
		return result, err
	}
	path, err := g.writer.WriteIndex(index)
	if err != nil {
		return result, err
	}
	result.Written = append(result.Written, path)

	if g.opts.ArchiveFeed {
		f, err := ArchiveFeed(posts, g.opts.SiteURL)
		if err != nil {
			return result, err
		}
		path, err := g.writer.WriteArchiveFeed(f)
		if err != nil {
			return result, err
		}
		result.Written = append(result.Written, path)
	}

	return result, nil
}
