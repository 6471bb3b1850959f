package docgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verlyx/hub-server/internal/models"
	"github.com/verlyx/hub-server/internal/storage"
)

// fakeStore overrides only the store methods the pipeline touches
type fakeStore struct {
	storage.Store

	template *models.PDFTemplate
	saved    *models.GeneratedDocument
	saveErr  error
}

func (f *fakeStore) GetTemplate(ctx context.Context, id uuid.UUID) (*models.PDFTemplate, error) {
	if f.template == nil || f.template.ID != id {
		return nil, storage.ErrNotFound
	}
	return f.template, nil
}

func (f *fakeStore) CreateGeneratedDocument(ctx context.Context, doc *models.GeneratedDocument) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	doc.ID = uuid.New()
	f.saved = doc
	return nil
}

type fakeRenderer struct {
	html string
	err  error
}

func (f *fakeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

type fakeArtifacts struct {
	objectName string
	data       []byte
	err        error
}

func (f *fakeArtifacts) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.objectName = objectName
	f.data = data
	return "https://cdn.example.com/generated-pdfs/" + objectName, nil
}

func (f *fakeArtifacts) Remove(ctx context.Context, objectName string) error {
	return nil
}

func invoiceTemplate() *models.PDFTemplate {
	tpl := &models.PDFTemplate{
		Name:         "Standard invoice",
		TemplateType: models.TemplateInvoice,
		IsActive:     true,
	}
	tpl.ID = uuid.New()
	return tpl
}

func TestPipelineGenerate(t *testing.T) {
	ctx := context.Background()

	newPipeline := func(t *testing.T, store *fakeStore, renderer Renderer, artifacts *fakeArtifacts) *Pipeline {
		t.Helper()
		dir := t.TempDir()
		writeLayout(t, dir, "invoice.html",
			`<p>{{.client_name}}</p><b>{{.total}}</b><i>{{.generation_date}}</i>`)
		return NewPipeline(store, NewTemplateLoader(dir), renderer, artifacts)
	}

	t.Run("full run persists the processed snapshot", func(t *testing.T) {
		store := &fakeStore{template: invoiceTemplate()}
		renderer := &fakeRenderer{}
		artifacts := &fakeArtifacts{}
		pipeline := newPipeline(t, store, renderer, artifacts)

		userID := uuid.New()
		doc, err := pipeline.Generate(ctx, &GenerateRequest{
			TemplateID: store.template.ID,
			FileName:   "acme-invoice.pdf",
			DocumentData: models.Variables{
				"client_name": "Acme",
				"tax":         10,
				"items": []interface{}{
					map[string]interface{}{"description": "Consulting", "quantity": 2, "price": 50},
				},
			},
			CreatedBy: &userID,
		})

		require.NoError(t, err)
		require.NotNil(t, store.saved)

		assert.Equal(t, "acme-invoice.pdf", doc.FileName)
		assert.Equal(t, "110.00", doc.DocumentData["total"])
		assert.Equal(t, "100.00", doc.DocumentData["subtotal"])
		// the snapshot holds the processed data, not the render payload
		_, present := doc.DocumentData["generation_date"]
		assert.False(t, present)

		// the rendered HTML got the formatted values plus the date
		assert.Contains(t, renderer.html, "<b>110.00</b>")
		assert.NotContains(t, renderer.html, "<i></i>")

		assert.True(t, strings.HasPrefix(artifacts.objectName, "invoice_"))
		assert.True(t, strings.HasSuffix(artifacts.objectName, ".pdf"))
		assert.Equal(t, "https://cdn.example.com/generated-pdfs/"+artifacts.objectName, doc.FilePath)
	})

	t.Run("object name is the default file name", func(t *testing.T) {
		store := &fakeStore{template: invoiceTemplate()}
		artifacts := &fakeArtifacts{}
		pipeline := newPipeline(t, store, &fakeRenderer{}, artifacts)

		doc, err := pipeline.Generate(ctx, &GenerateRequest{
			TemplateID:   store.template.ID,
			DocumentData: models.Variables{},
		})

		require.NoError(t, err)
		assert.Equal(t, artifacts.objectName, doc.FileName)
	})

	t.Run("unknown template aborts before rendering", func(t *testing.T) {
		store := &fakeStore{}
		renderer := &fakeRenderer{}
		pipeline := newPipeline(t, store, renderer, &fakeArtifacts{})

		_, err := pipeline.Generate(ctx, &GenerateRequest{
			TemplateID:   uuid.New(),
			DocumentData: models.Variables{},
		})

		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.Empty(t, renderer.html)
	})

	t.Run("inactive template is treated as missing", func(t *testing.T) {
		tpl := invoiceTemplate()
		tpl.IsActive = false
		pipeline := newPipeline(t, &fakeStore{template: tpl}, &fakeRenderer{}, &fakeArtifacts{})

		_, err := pipeline.Generate(ctx, &GenerateRequest{
			TemplateID:   tpl.ID,
			DocumentData: models.Variables{},
		})

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("render failure skips upload and persistence", func(t *testing.T) {
		store := &fakeStore{template: invoiceTemplate()}
		artifacts := &fakeArtifacts{}
		pipeline := newPipeline(t, store, &fakeRenderer{err: errors.New("browser crashed")}, artifacts)

		_, err := pipeline.Generate(ctx, &GenerateRequest{
			TemplateID:   store.template.ID,
			DocumentData: models.Variables{},
		})

		require.Error(t, err)
		assert.Empty(t, artifacts.objectName)
		assert.Nil(t, store.saved)
	})

	t.Run("persistence failure surfaces after upload", func(t *testing.T) {
		store := &fakeStore{template: invoiceTemplate(), saveErr: errors.New("db down")}
		artifacts := &fakeArtifacts{}
		pipeline := newPipeline(t, store, &fakeRenderer{}, artifacts)

		_, err := pipeline.Generate(ctx, &GenerateRequest{
			TemplateID:   store.template.ID,
			DocumentData: models.Variables{},
		})

		require.Error(t, err)
		assert.NotEmpty(t, artifacts.objectName)
	})
}
