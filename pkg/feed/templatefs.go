package feed

import (
	"io/fs"
	"os"

	"github.com/lepinkainen/newsletter-forge/templates"
)

var (
	// templateOverrideFS points at the developer-provided filesystem (usually the local templates directory).
	templateOverrideFS fs.FS = os.DirFS("templates")
	// templateFallbackFS is the embedded filesystem baked into the binary.
	templateFallbackFS fs.FS = templates.EmbeddedTemplates
)

// SetTemplateOverrideFS switches the primary filesystem used when loading templates.
func SetTemplateOverrideFS(f fs.FS) {
	templateOverrideFS = f
}

func getTemplateOverrideFS() fs.FS {
	return templateOverrideFS
}

func getTemplateFallbackFS() fs.FS {
	return templateFallbackFS
}
