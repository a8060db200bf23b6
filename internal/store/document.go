package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/carevault/apiserver/types"
)

// DocumentRepository handles persistence for vault document metadata.
type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = `id, title, section, category, path, content_type, size_bytes, review_date, uploaded_by, created_at`

func scanDocument(row rowScanner) (types.Document, error) {
	var doc types.Document
	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Section,
		&doc.Category,
		&doc.Path,
		&doc.ContentType,
		&doc.Size,
		&doc.ReviewDate,
		&doc.UploadedBy,
		&doc.CreatedAt,
	)
	return doc, err
}

func (r *DocumentRepository) Create(ctx context.Context, doc types.Document) (types.Document, error) {
	doc.CreatedAt = time.Now()

	const query = `
		INSERT INTO documents (title, section, category, path, content_type, size_bytes, review_date, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		doc.Title,
		doc.Section,
		doc.Category,
		doc.Path,
		doc.ContentType,
		doc.Size,
		doc.ReviewDate,
		doc.UploadedBy,
		doc.CreatedAt,
	).Scan(&doc.ID); err != nil {
		return types.Document{}, err
	}
	return doc, nil
}

// List returns documents newest first. Empty filter fields match everything.
func (r *DocumentRepository) List(ctx context.Context, filter types.DocumentFilter) ([]types.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE ($1 = '' OR section = $1)
		  AND ($2 = '' OR category = $2)
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, string(filter.Section), filter.Category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]types.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *DocumentRepository) Get(ctx context.Context, id int) (types.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Document{}, ErrNotFound
		}
		return types.Document{}, err
	}
	return doc, nil
}

// YPDocumentRepository handles persistence for resident folder documents.
type YPDocumentRepository struct {
	db *sql.DB
}

func NewYPDocumentRepository(db *sql.DB) *YPDocumentRepository {
	return &YPDocumentRepository{db: db}
}

const ypDocumentColumns = `id, young_person_id, title, category, path, content_type, size_bytes, uploaded_by, created_at`

func scanYPDocument(row rowScanner) (types.YPFolderDocument, error) {
	var doc types.YPFolderDocument
	err := row.Scan(
		&doc.ID,
		&doc.YoungPersonID,
		&doc.Title,
		&doc.Category,
		&doc.Path,
		&doc.ContentType,
		&doc.Size,
		&doc.UploadedBy,
		&doc.CreatedAt,
	)
	return doc, err
}

func (r *YPDocumentRepository) Create(ctx context.Context, doc types.YPFolderDocument) (types.YPFolderDocument, error) {
	doc.CreatedAt = time.Now()

	const query = `
		INSERT INTO yp_folder_documents (young_person_id, title, category, path, content_type, size_bytes, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		doc.YoungPersonID,
		doc.Title,
		doc.Category,
		doc.Path,
		doc.ContentType,
		doc.Size,
		doc.UploadedBy,
		doc.CreatedAt,
	).Scan(&doc.ID); err != nil {
		return types.YPFolderDocument{}, err
	}
	return doc, nil
}

func (r *YPDocumentRepository) ListByYoungPerson(ctx context.Context, youngPersonID int, category string) ([]types.YPFolderDocument, error) {
	query := `
		SELECT ` + ypDocumentColumns + `
		FROM yp_folder_documents
		WHERE young_person_id = $1
		  AND ($2 = '' OR category = $2)
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, youngPersonID, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]types.YPFolderDocument, 0)
	for rows.Next() {
		doc, err := scanYPDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *YPDocumentRepository) Get(ctx context.Context, youngPersonID, id int) (types.YPFolderDocument, error) {
	query := `SELECT ` + ypDocumentColumns + ` FROM yp_folder_documents WHERE id = $1 AND young_person_id = $2`
	doc, err := scanYPDocument(r.db.QueryRowContext(ctx, query, id, youngPersonID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.YPFolderDocument{}, ErrNotFound
		}
		return types.YPFolderDocument{}, err
	}
	return doc, nil
}
