package newsletter

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html/atom"

	"github.com/lepinkainen/newsletter-forge/pkg/dom"
	"github.com/lepinkainen/newsletter-forge/pkg/socialmeta"
)

func TestRenderIndex(t *testing.T) {
	out, err := RenderIndex(threePosts(t))
	if err != nil {
		t.Fatalf("RenderIndex() error = %v", err)
	}

	doc, err := dom.Parse(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("Failed to parse index: %v", err)
	}

	if h1 := dom.Find(doc, dom.Tag(atom.H1)); h1 == nil || dom.Text(h1) != "1:55 Newsletter" {
		t.Error("index heading missing")
	}

	items := dom.FindAll(doc, dom.Tag(atom.Li))
	want := []struct {
		href string
		text string
	}{
		{"/newsletter/2024-03-24-episode-3-third-time-s-the-charm.html", "March 24Episode 3: Third Time's the Charm"},
		{"/newsletter/2024-03-17-episode-2-second-verse.html", "March 17Episode 2: Second Verse"},
		{"/newsletter/2024-03-10-episode-1-first-post.html", "March 10Episode 1: First Post!"},
	}
	if len(items) != len(want) {
		t.Fatalf("index has %d items, want %d", len(items), len(want))
	}

	for i, w := range want {
		a := dom.Find(items[i], dom.Tag(atom.A))
		if a == nil {
			t.Fatalf("item %d has no link", i)
		}
		if href, _ := dom.Attr(a, "href"); href != w.href {
			t.Errorf("item %d href = %q, want %q", i, href, w.href)
		}
		if text := strings.TrimSpace(dom.Text(a)); text != w.text {
			t.Errorf("item %d text = %q, want %q", i, text, w.text)
		}
	}

	tags := socialmeta.Extract(doc)
	if len(tags) != 5 {
		t.Fatalf("index carries %d twitter tags, want 5", len(tags))
	}
	if tags[4].Content != socialmeta.IndexDescription {
		t.Errorf("description = %q, want %q", tags[4].Content, socialmeta.IndexDescription)
	}
}

func TestRenderIndex_Empty(t *testing.T) {
	out, err := RenderIndex(nil)
	if err != nil {
		t.Fatalf("RenderIndex() error = %v", err)
	}

	doc, err := dom.Parse(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("Failed to parse index: %v", err)
	}
	if items := dom.FindAll(doc, dom.Tag(atom.Li)); len(items) != 0 {
		t.Errorf("empty index has %d items", len(items))
	}
}
