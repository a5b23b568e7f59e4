// Package preview shows the posts of the newsletter feed in a Bubble Tea TUI before the archive is written.
package preview

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/lepinkainen/newsletter-forge/internal/newsletter"
	"github.com/lepinkainen/newsletter-forge/pkg/dom"
)

const rule = "═══════════════════════════════════════════════════════════════════════\n"

// FormatCompactListItem formats a post as one list line
// Example: " 3. 2024-03-24  Episode 3: Third Time's the Charm  → 2024-03-24-episode-3-third-time-s-the-charm.html"
func FormatCompactListItem(index int, p *newsletter.Post) string {
	title := p.Title()

	const maxTitleLength = 50
	if utf8.RuneCountInString(title) > maxTitleLength {
		title = string([]rune(title)[:maxTitleLength-3]) + "..."
	}

	return fmt.Sprintf("%2d. %s  %-*s  → %s", index+1, p.Date().Format(time.DateOnly), maxTitleLength, title, p.Path())
}

// FormatDetailedItem formats a post with its place in the archive
func FormatDetailedItem(p *newsletter.Post) string {
	var b strings.Builder

	b.WriteString(rule)
	fmt.Fprintf(&b, "Title: %s\n", p.Title())
	fmt.Fprintf(&b, "Page: %s/%s\n", newsletter.ArchivePath, p.Path())

	if !p.Date().IsZero() {
		fmt.Fprintf(&b, "Published: %s (%s)\n", p.Date().Format(time.RFC1123Z), humanize.Time(p.Date()))
	}

	if p.Prev != nil {
		fmt.Fprintf(&b, "Previous: %s → %s\n", p.Prev.Title(), p.Prev.Path())
	} else {
		b.WriteString("Previous: (first post)\n")
	}
	if p.Next != nil {
		fmt.Fprintf(&b, "Next: %s → %s\n", p.Next.Title(), p.Next.Path())
	} else {
		b.WriteString("Next: (latest post)\n")
	}

	fmt.Fprintf(&b, "Content: %s\n", humanize.Bytes(uint64(len(p.Entry.Content))))
	if doc, err := dom.ParseString(p.Entry.Content); err == nil {
		words := len(strings.Fields(dom.Text(doc)))
		fmt.Fprintf(&b, "Words: %s\n", humanize.Comma(int64(words)))
	}

	b.WriteString(rule)

	return b.String()
}

// FormatHTMLItem returns the rewritten archive page of a post wrapped to width,
// or why it cannot be rewritten
func FormatHTMLItem(p *newsletter.Post, width int) string {
	if width <= 20 {
		width = 100
	}

	page, err := newsletter.Transform(p)
	if err != nil {
		return fmt.Sprintf("Cannot render %s: %s", p.Path(), err)
	}
	return wrapLines(string(page), width)
}

// wrapLines breaks lines longer than width runes, preferring a space or tag end as the break point.
// Breaks always fall on rune boundaries.
func wrapLines(s string, width int) string {
	var result strings.Builder

	for _, line := range strings.Split(s, "\n") {
		remaining := []rune(line)
		for len(remaining) > width {
			breakPoint := width
			for i := width - 1; i > width-20 && i > 0; i-- {
				if remaining[i] == ' ' || remaining[i] == '>' {
					breakPoint = i + 1
					break
				}
			}
			result.WriteString(string(remaining[:breakPoint]))
			result.WriteString("\n")
			remaining = remaining[breakPoint:]
		}
		result.WriteString(string(remaining))
		result.WriteString("\n")
	}

	return result.String()
}
