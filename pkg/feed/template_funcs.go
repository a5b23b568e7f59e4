package feed

import (
	"html/template"
	"time"
)

// TemplateFuncs returns a map of template helper functions
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": formatDate,
	}
}

// formatDate formats a publish date the way the archive index lists it, e.g. "March 10"
func formatDate(t time.Time) string {
	return t.Format("January 02")
}
