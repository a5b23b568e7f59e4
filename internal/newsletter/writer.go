package newsletter

import (
	"log/slog"
	"path/filepath"

	"github.com/gorilla/feeds"

	"github.com/lepinkainen/newsletter-forge/pkg/feed"
	"github.com/lepinkainen/newsletter-forge/pkg/filesystem"
)

// IndexName is the file name of the archive index
const IndexName = "index.html"

// Writer writes archive files into a single output directory
type Writer struct {
	Dir string
}

// NewWriter creates a writer for dir
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// WritePost writes a post's page to {dir}/{post.Path()}
func (w *Writer) WritePost(p *Post, page []byte) (string, error) {
	return w.write(p.Path(), page)
}

// WriteIndex writes {dir}/index.html
func (w *Writer) WriteIndex(page []byte) (string, error) {
	return w.write(IndexName, page)
}

// WriteArchiveFeed writes the Atom feed to {dir}/feed.xml
func (w *Writer) WriteArchiveFeed(f *feeds.Feed) (string, error) {
	data, err := feed.RenderAtom(f)
	if err != nil {
		return "", err
	}
	return w.write(ArchiveFeedName, data)
}

func (w *Writer) write(name string, data []byte) (string, error) {
	path := filepath.Join(w.Dir, name)
	if err := filesystem.WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	slog.Info("Wrote page", "path", path)
	return path, nil
}
