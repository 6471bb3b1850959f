package docgen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/verlyx/hub-server/internal/artifact"
	"github.com/verlyx/hub-server/internal/models"
	"github.com/verlyx/hub-server/internal/storage"
)

// GenerateRequest describes a document generation job
type GenerateRequest struct {
	TemplateID       uuid.UUID
	FileName         string
	DocumentData     models.Variables
	RelatedContactID *uuid.UUID
	RelatedProjectID *uuid.UUID
	CreatedBy        *uuid.UUID
}

// Pipeline runs the full generation sequence: fetch template, process the
// form data, fill the HTML layout, print it to PDF, upload the artifact
// and record the generated document. Any failing stage aborts the run; no
// partial database rows are written.
type Pipeline struct {
	store     storage.Store
	templates *TemplateLoader
	renderer  Renderer
	artifacts artifact.Store
}

// NewPipeline wires the generation stages together
func NewPipeline(store storage.Store, templates *TemplateLoader, renderer Renderer, artifacts artifact.Store) *Pipeline {
	return &Pipeline{
		store:     store,
		templates: templates,
		renderer:  renderer,
		artifacts: artifacts,
	}
}

// Generate produces a PDF document from the request and returns the
// persisted record, including the public URL of the uploaded artifact
func (p *Pipeline) Generate(ctx context.Context, req *GenerateRequest) (*models.GeneratedDocument, error) {
	tpl, err := p.store.GetTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("fetch template: %w", err)
	}
	if !tpl.IsActive {
		return nil, fmt.Errorf("fetch template: %w", storage.ErrNotFound)
	}

	processed := ProcessDocumentData(req.DocumentData, tpl.TemplateType)
	snapshot := processed.Snapshot()

	renderData := make(models.Variables, len(snapshot)+1)
	for k, v := range snapshot {
		renderData[k] = v
	}
	renderData["generation_date"] = time.Now().Format("02/01/2006")

	html, err := p.templates.Render(tpl.TemplateType, renderData)
	if err != nil {
		return nil, err
	}

	pdf, err := p.renderer.RenderPDF(ctx, html)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("%s_%d.pdf", tpl.TemplateType, time.Now().UnixMilli())
	fileURL, err := p.artifacts.Upload(ctx, objectName, pdf, "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("upload artifact: %w", err)
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = objectName
	}

	doc := &models.GeneratedDocument{
		TemplateID:       tpl.ID,
		FileName:         fileName,
		FilePath:         fileURL,
		DocumentData:     snapshot,
		RelatedContactID: req.RelatedContactID,
		RelatedProjectID: req.RelatedProjectID,
		CreatedBy:        req.CreatedBy,
	}

	if err := p.store.CreateGeneratedDocument(ctx, doc); err != nil {
		// The artifact is already in the bucket with nothing pointing at
		// it. Flag it so it can be cleaned up.
		log.Error().Err(err).
			Str("object", objectName).
			Msg("Generated document record failed, artifact orphaned")
		return nil, fmt.Errorf("record generated document: %w", err)
	}

	log.Info().
		Str("document_id", doc.ID.String()).
		Str("template_type", string(tpl.TemplateType)).
		Str("object", objectName).
		Msg("Document generated")

	return doc, nil
}
