package newsletter

import (
	"bytes"
	"fmt"

	"github.com/lepinkainen/newsletter-forge/pkg/feed"
	"github.com/lepinkainen/newsletter-forge/pkg/socialmeta"
)

const (
	indexTemplateName = "index.html"
	indexHeading      = "1:55 Newsletter"
)

// RenderIndex renders the archive index, listing posts newest-first
func RenderIndex(posts []*Post) ([]byte, error) {
	tg := feed.NewTemplateGenerator()
	if err := tg.LoadNamedTemplate(indexTemplateName); err != nil {
		return nil, err
	}

	data := &feed.TemplateData{
		Heading: indexHeading,
		Card:    socialmeta.ForIndex(),
		Items:   make([]feed.TemplateItem, 0, len(posts)),
	}
	for _, p := range NewestFirst(posts) {
		data.Items = append(data.Items, feed.TemplateItem{
			Title:     p.Title(),
			Link:      ArchivePath + "/" + p.Path(),
			Published: p.Date(),
		})
	}

	var buf bytes.Buffer
	if err := tg.GenerateFromTemplate(indexTemplateName, data, &buf); err != nil {
		return nil, fmt.Errorf("rendering index: %w", err)
	}
	return buf.Bytes(), nil
}
