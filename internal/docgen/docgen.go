// Package docgen renders the estimate summary document and writes it to
// Google Docs. Every failure path returns an empty DocResult; document
// generation is never fatal to the pipeline.
package docgen

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/estimate-intake/internal/model"
	"github.com/sells-group/estimate-intake/pkg/gdocs"
)

// Generator creates estimate documents in a configured Drive folder.
type Generator struct {
	client   gdocs.Client
	folderID string
}

// New creates a Generator. A nil client means the backend is
// unconfigured; Generate then always returns an empty result.
func New(client gdocs.Client, folderID string) *Generator {
	return &Generator{client: client, folderID: folderID}
}

// Generate creates the document, inserts the rendered summary, and moves
// it into the target folder. Any failure at any stage returns an empty
// DocResult rather than an error.
func (g *Generator) Generate(ctx context.Context, docCtx Context) model.DocResult {
	if g == nil || g.client == nil {
		return model.DocResult{}
	}

	docID, err := g.client.CreateDocument(ctx, docCtx.Title())
	if err != nil {
		zap.L().Warn("docgen: create document failed", zap.Error(err))
		return model.DocResult{}
	}

	if err := g.client.InsertText(ctx, docID, BuildContent(docCtx)); err != nil {
		zap.L().Warn("docgen: insert content failed", zap.String("doc_id", docID), zap.Error(err))
		return model.DocResult{}
	}

	if err := g.client.MoveToFolder(ctx, docID, g.folderID); err != nil {
		zap.L().Warn("docgen: move to folder failed", zap.String("doc_id", docID), zap.Error(err))
		return model.DocResult{}
	}

	return model.DocResult{
		URL:   "https://docs.google.com/document/d/" + docID,
		DocID: docID,
	}
}
