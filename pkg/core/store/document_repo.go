package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bizcase_analyzer/pkg/core/analysis"
	"bizcase_analyzer/pkg/core/extraction"
)

// Document is one analyzed business case: the uploaded file's metadata, the
// extraction record, and the computed analysis, stored together.
type Document struct {
	ID         string                          `json:"id"`
	Filename   string                          `json:"filename"`
	Extraction *extraction.Result              `json:"extraction"`
	Analysis   *analysis.ComprehensiveAnalysis `json:"analysis"`
	CreatedAt  time.Time                       `json:"created_at"`
	UpdatedAt  time.Time                       `json:"updated_at"`
}

// DocumentSummary is the listing row: enough to render a document picker
// without shipping the full analysis blob.
type DocumentSummary struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ProjectName string    `json:"project_name"`
	ProjectType string    `json:"project_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// DocumentRepo persists analyzed documents.
type DocumentRepo struct{}

func NewDocumentRepo() *DocumentRepo {
	return &DocumentRepo{}
}

// Save upserts the document by ID, assigning a fresh UUID when empty.
// The extraction and analysis travel as a single JSONB blob.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS business_documents (
//   id UUID PRIMARY KEY,
//   filename TEXT,
//   document_json JSONB,
//   created_at TIMESTAMPTZ,
//   updated_at TIMESTAMPTZ
// );
func (r *DocumentRepo) Save(ctx context.Context, doc *Document) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	now := time.Now()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	blob := struct {
		Extraction *extraction.Result              `json:"extraction"`
		Analysis   *analysis.ComprehensiveAnalysis `json:"analysis"`
	}{
		Extraction: doc.Extraction,
		Analysis:   doc.Analysis,
	}

	jsonData, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	query := `
		INSERT INTO business_documents (id, filename, document_json, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			filename = EXCLUDED.filename,
			document_json = EXCLUDED.document_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = pool.Exec(ctx, query, doc.ID, doc.Filename, jsonData, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	return nil
}

// Get loads one document by ID.
func (r *DocumentRepo) Get(ctx context.Context, id string) (*Document, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT filename, document_json, created_at, updated_at FROM business_documents WHERE id = $1`

	doc := &Document{ID: id}
	var jsonData []byte
	err := pool.QueryRow(ctx, query, id).Scan(&doc.Filename, &jsonData, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no document found for id %s", id)
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	var blob struct {
		Extraction *extraction.Result              `json:"extraction"`
		Analysis   *analysis.ComprehensiveAnalysis `json:"analysis"`
	}
	if err := json.Unmarshal(jsonData, &blob); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	doc.Extraction = blob.Extraction
	doc.Analysis = blob.Analysis

	return doc, nil
}

// List returns the most recent documents, newest first.
func (r *DocumentRepo) List(ctx context.Context, limit int) ([]DocumentSummary, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, filename,
		       COALESCE(document_json->'extraction'->>'project_name', ''),
		       COALESCE(document_json->'extraction'->>'project_type', ''),
		       created_at
		FROM business_documents
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentSummary
	for rows.Next() {
		var s DocumentSummary
		if err := rows.Scan(&s.ID, &s.Filename, &s.ProjectName, &s.ProjectType, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a document by ID.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	tag, err := pool.Exec(ctx, `DELETE FROM business_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no document found for id %s", id)
	}
	return nil
}
