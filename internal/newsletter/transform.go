package newsletter

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/lepinkainen/newsletter-forge/pkg/dom"
	"github.com/lepinkainen/newsletter-forge/pkg/socialmeta"
)

// Markup the publishing platform puts into every newsletter email
const (
	CoverHrefMarker    = "covers."
	BrowserLinkText    = "View this email in your browser"
	PreheaderID        = "templatePreheader"
	PatreonSentence    = "1:55 is a weekly newsletter for Patreon Gatekeepers."
	LogoClass          = "mcnImage"
	ViewportMetaName   = "viewport"
	patreonLinkText    = "Patreon Gatekeepers"
	preheaderLinkStyle = "display: block;"
)

// Links written into the rewritten pages
const (
	ArchivePath = "/newsletter"
	PatreonURL  = "https://www.patreon.com/155pod"
	HomeURL     = "https://155pod.com"
	LogoAlt     = "1:55"
)

// Transform rewrites a post's email HTML into its archive page
func Transform(p *Post) ([]byte, error) {
	doc, err := dom.ParseString(p.Entry.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing content of %s: %w", p.Path(), err)
	}

	steps := []func(*html.Node, *Post) error{
		removeCover,
		removeBrowserLink,
		rebuildPreheader,
		linkPatreon,
		linkLogo,
		injectSocialMeta,
	}
	for _, step := range steps {
		if err := step(doc, p); err != nil {
			return nil, err
		}
	}

	out, err := dom.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", p.Path(), err)
	}
	return out, nil
}

// removeCover drops the block holding the episode cover image
func removeCover(doc *html.Node, p *Post) error {
	link := dom.Find(doc, dom.And(dom.Tag(atom.A), dom.AttrContains("href", CoverHrefMarker)))
	if link == nil {
		return &MalformedContentError{Path: p.Path(), Step: "remove cover", Want: fmt.Sprintf("link to %q", CoverHrefMarker)}
	}

	// The anchor sits in its own cell; start from there so the cell goes with it.
	start := link
	if parent := link.Parent; parent != nil && parent.Type == html.ElementNode &&
		parent.DataAtom != atom.Body && parent.DataAtom != atom.Html {
		start = link.Parent
	}

	removed := dom.RemoveRedundant(start)
	slog.Debug("Removed cover block", "path", p.Path(), "element", removed.Data)
	return nil
}

// removeBrowserLink drops the "view in browser" banner
func removeBrowserLink(doc *html.Node, p *Post) error {
	link := dom.Find(doc, dom.And(dom.Tag(atom.A), dom.TextEquals(BrowserLinkText)))
	if link == nil {
		return &MalformedContentError{Path: p.Path(), Step: "remove browser link", Want: fmt.Sprintf("link %q", BrowserLinkText)}
	}

	removed := dom.RemoveRedundant(link)
	slog.Debug("Removed browser link", "path", p.Path(), "element", removed.Data)
	return nil
}

// rebuildPreheader replaces the preheader with archive, previous and next links
func rebuildPreheader(doc *html.Node, p *Post) error {
	preheader := dom.Find(doc, dom.ID(PreheaderID))
	if preheader == nil {
		return &MalformedContentError{Path: p.Path(), Step: "rebuild preheader", Want: "#" + PreheaderID}
	}

	dom.SetChildren(preheader, PreheaderLinks(p)...)
	return nil
}

// PreheaderLinks returns the navigation links of a post's preheader in display order
func PreheaderLinks(p *Post) []*html.Node {
	links := []*html.Node{navLink(ArchivePath, "1:55 Newsletter Archive")}
	if p.Prev != nil {
		links = append(links, navLink(p.Prev.Path(), "« Previous: "+p.Prev.Title()))
	}
	if p.Next != nil {
		links = append(links, navLink(p.Next.Path(), "» Next: "+p.Next.Title()))
	}
	return links
}

func navLink(href, label string) *html.Node {
	a := dom.Link(href, dom.TextNode(label))
	dom.SetAttr(a, "style", preheaderLinkStyle)
	return a
}

// linkPatreon turns "Patreon Gatekeepers" in the call-to-action into a link
func linkPatreon(doc *html.Node, p *Post) error {
	em := dom.Find(doc, dom.And(dom.Tag(atom.Em), dom.TextContains(PatreonSentence)))
	if em == nil {
		return &MalformedContentError{Path: p.Path(), Step: "link patreon", Want: fmt.Sprintf("<em> containing %q", PatreonSentence)}
	}

	before, after, _ := strings.Cut(PatreonSentence, patreonLinkText)
	dom.SetChildren(em,
		dom.TextNode(before),
		dom.Link(PatreonURL, dom.TextNode(patreonLinkText)),
		dom.TextNode(after),
	)
	return nil
}

// linkLogo points the masthead logo at the site's home page
func linkLogo(doc *html.Node, p *Post) error {
	logo := dom.Find(doc, dom.Class(LogoClass))
	if logo == nil {
		slog.Warn("No masthead logo found, leaving it unlinked", "path", p.Path())
		return nil
	}

	dom.SetAttr(logo, "alt", LogoAlt)
	dom.Wrap(logo, dom.Link(HomeURL))
	return nil
}

// injectSocialMeta adds the Twitter card tags right after the viewport tag
func injectSocialMeta(doc *html.Node, p *Post) error {
	viewport := dom.Find(doc, dom.And(dom.Tag(atom.Meta), dom.AttrEquals("name", ViewportMetaName)))
	if viewport == nil {
		slog.Warn("No viewport meta tag found, skipping social metadata", "path", p.Path())
		return nil
	}

	dom.InsertAfter(viewport, socialmeta.ForPost(p.Title()).Nodes()...)
	return nil
}
