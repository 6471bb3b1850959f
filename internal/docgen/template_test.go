package docgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verlyx/hub-server/internal/models"
)

func writeLayout(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestTemplateLoader(t *testing.T) {
	t.Run("interpolates fields and items", func(t *testing.T) {
		dir := t.TempDir()
		writeLayout(t, dir, "invoice.html",
			`<h1>{{.client_name}}</h1><ul>{{range .items}}<li>{{.description}}: {{.total}}</li>{{end}}</ul><b>{{.total}}</b>`)

		loader := NewTemplateLoader(dir)
		html, err := loader.Render(models.TemplateInvoice, models.Variables{
			"client_name": "Acme",
			"total":       "110.00",
			"items": []interface{}{
				map[string]interface{}{"description": "Consulting", "total": "100.00"},
			},
		})

		require.NoError(t, err)
		assert.Contains(t, html, "<h1>Acme</h1>")
		assert.Contains(t, html, "<li>Consulting: 100.00</li>")
		assert.Contains(t, html, "<b>110.00</b>")
	})

	t.Run("escapes markup in values", func(t *testing.T) {
		dir := t.TempDir()
		writeLayout(t, dir, "report.html", `<p>{{.summary}}</p>`)

		loader := NewTemplateLoader(dir)
		html, err := loader.Render(models.TemplateReport, models.Variables{
			"summary": `<script>alert("x")</script>`,
		})

		require.NoError(t, err)
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})

	t.Run("missing layout file", func(t *testing.T) {
		loader := NewTemplateLoader(t.TempDir())
		_, err := loader.Render(models.TemplateContract, models.Variables{})
		assert.Error(t, err)
	})
}
