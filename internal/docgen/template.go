package docgen

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/verlyx/hub-server/internal/models"
)

// TemplateLoader loads and fills the HTML layouts for each document type.
// Layouts live on disk as <type>.html under the configured directory and
// are parsed per render so edits take effect without a restart. Values are
// HTML-escaped on interpolation.
type TemplateLoader struct {
	dir string
}

// NewTemplateLoader creates a loader rooted at dir
func NewTemplateLoader(dir string) *TemplateLoader {
	return &TemplateLoader{dir: dir}
}

// Render fills the layout for templateType with data and returns the
// resulting HTML document
func (l *TemplateLoader) Render(templateType models.TemplateType, data models.Variables) (string, error) {
	name := string(templateType) + ".html"
	path := filepath.Join(l.dir, name)

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read layout %s: %w", name, err)
	}

	tpl, err := template.New(name).Option("missingkey=zero").Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("parse layout %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, map[string]interface{}(data)); err != nil {
		return "", fmt.Errorf("execute layout %s: %w", name, err)
	}

	return buf.String(), nil
}
