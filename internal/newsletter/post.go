// Package newsletter turns the 1:55 newsletter feed into a static HTML archive.
package newsletter

import (
	"slices"
	"time"

	"github.com/lepinkainen/newsletter-forge/pkg/slug"
)

// Entry is a single item of the newsletter feed
type Entry struct {
	Title     string
	Published time.Time
	Content   string
}

// Post is a feed entry placed in the chronological sequence of the archive.
// Prev and Next are assigned once by LinkPosts.
type Post struct {
	Entry Entry
	Prev  *Post
	Next  *Post
}

// Title returns the entry title
func (p *Post) Title() string {
	return p.Entry.Title
}

// Date returns the publish time of the entry
func (p *Post) Date() time.Time {
	return p.Entry.Published
}

// Path returns the file name of the post's archive page, e.g. 2024-03-10-episode-12-a-cool-title.html
func (p *Post) Path() string {
	return p.Entry.Published.Format(time.DateOnly) + "-" + slug.Make(p.Entry.Title) + ".html"
}

// LinkPosts wraps feed entries, given newest-first as feeds list them, into posts
// ordered oldest-to-newest and links each post to its neighbours.
func LinkPosts(entries []Entry) []*Post {
	posts := make([]*Post, 0, len(entries))
	for _, e := range entries {
		posts = append(posts, &Post{Entry: e})
	}
	slices.Reverse(posts)

	for i := 1; i < len(posts); i++ {
		posts[i-1].Next = posts[i]
		posts[i].Prev = posts[i-1]
	}

	return posts
}

// NewestFirst returns the posts in reverse chronological order
func NewestFirst(posts []*Post) []*Post {
	out := slices.Clone(posts)
	slices.Reverse(out)
	return out
}
