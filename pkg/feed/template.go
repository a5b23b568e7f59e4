package feed

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
)

// TemplateGenerator handles template-based page generation
type TemplateGenerator struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// NewTemplateGenerator creates a new template-based page generator
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{
		templates: make(map[string]*template.Template),
		funcMap:   TemplateFuncs(),
	}
}

// LoadNamedTemplate loads name.tmpl from the override filesystem, falling back to the embedded templates
func (tg *TemplateGenerator) LoadNamedTemplate(name string) error {
	file := name + ".tmpl"

	if override := getTemplateOverrideFS(); override != nil {
		content, err := fs.ReadFile(override, file)
		if err == nil {
			slog.Debug("Using template override", "name", name)
			return tg.parse(name, file, content)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read template override %s: %w", file, err)
		}
	}

	content, err := fs.ReadFile(getTemplateFallbackFS(), file)
	if err != nil {
		return fmt.Errorf("failed to read embedded template %s: %w", file, err)
	}
	return tg.parse(name, file, content)
}

func (tg *TemplateGenerator) parse(name, source string, content []byte) error {
	tmpl, err := template.New(name).Funcs(tg.funcMap).Parse(string(content))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", source, err)
	}

	tg.templates[name] = tmpl
	slog.Debug("Template loaded successfully", "name", name)
	return nil
}

// GenerateFromTemplate renders the named template with data
func (tg *TemplateGenerator) GenerateFromTemplate(templateName string, data *TemplateData, writer io.Writer) error {
	tmpl, exists := tg.templates[templateName]
	if !exists {
		return fmt.Errorf("template %s not found", templateName)
	}

	slog.Debug("Executing template", "name", templateName, "items", len(data.Items))

	if err := tmpl.Execute(writer, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return nil
}
