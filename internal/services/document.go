package services

import (
	"context"
	"mime"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/carevault/apiserver/types"
	"go.uber.org/zap"
)

const (
	documentKeyPrefix  = "documents"
	ypFolderKeyPrefix  = "yp-folder"
	defaultContentType = "application/octet-stream"
)

// DocumentRepository defines persistence operations for vault documents.
type DocumentRepository interface {
	Create(ctx context.Context, doc types.Document) (types.Document, error)
	List(ctx context.Context, filter types.DocumentFilter) ([]types.Document, error)
	Get(ctx context.Context, id int) (types.Document, error)
}

// YPDocumentRepository defines persistence operations for resident folders.
type YPDocumentRepository interface {
	Create(ctx context.Context, doc types.YPFolderDocument) (types.YPFolderDocument, error)
	ListByYoungPerson(ctx context.Context, youngPersonID int, category string) ([]types.YPFolderDocument, error)
	Get(ctx context.Context, youngPersonID, id int) (types.YPFolderDocument, error)
}

// DocumentInput carries the metadata fields of a vault upload.
type DocumentInput struct {
	Title      string
	Section    string
	Category   string
	ReviewDate *time.Time
}

// DocumentService handles the business/HR vaults and resident folders.
type DocumentService struct {
	docs   DocumentRepository
	ypDocs YPDocumentRepository
	people YoungPersonRepository
	files  ObjectStore
	events *Events
	logger *zap.Logger
}

func NewDocumentService(
	docs DocumentRepository,
	ypDocs YPDocumentRepository,
	people YoungPersonRepository,
	files ObjectStore,
	events *Events,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		docs:   docs,
		ypDocs: ypDocs,
		people: people,
		files:  files,
		events: events,
		logger: logger,
	}
}

// Upload stores the file and records its metadata. The object is removed
// again if the row cannot be written.
func (s *DocumentService) Upload(ctx context.Context, actor types.User, input DocumentInput, upload *Upload) (types.Document, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return types.Document{}, invalid("title is required")
	}

	sectionName := strings.ToLower(strings.TrimSpace(input.Section))
	if sectionName == "" {
		sectionName = string(types.SectionBusiness)
	}
	section, ok := types.ParseSection(sectionName)
	if !ok {
		return types.Document{}, invalid("section must be business or hr")
	}
	category := strings.TrimSpace(input.Category)
	if !types.IsSectionCategory(section, category) {
		return types.Document{}, invalid("category must be one of: %s", strings.Join(types.SectionCategories(section), ", "))
	}

	key, err := putUpload(ctx, s.files, documentKeyPrefix, upload)
	if err != nil {
		return types.Document{}, err
	}

	doc, err := s.docs.Create(ctx, types.Document{
		Title:       title,
		Section:     section,
		Category:    category,
		Path:        key,
		ContentType: contentTypeOf(upload),
		Size:        upload.Size,
		ReviewDate:  input.ReviewDate,
		UploadedBy:  actor.ID,
	})
	if err != nil {
		discard(ctx, s.files, s.logger, key)
		return types.Document{}, err
	}

	s.events.emit(ctx, types.EventDocumentUploaded, actor.ID, doc.ID, map[string]string{
		"section":  string(doc.Section),
		"category": doc.Category,
	})
	return doc, nil
}

// List returns every vault document, newest first.
func (s *DocumentService) List(ctx context.Context) ([]types.Document, error) {
	return s.docs.List(ctx, types.DocumentFilter{})
}

// ListByType accepts either a section name or a category name.
func (s *DocumentService) ListByType(ctx context.Context, docType string) ([]types.Document, error) {
	docType = strings.TrimSpace(docType)
	if section, ok := types.ParseSection(strings.ToLower(docType)); ok {
		return s.docs.List(ctx, types.DocumentFilter{Section: section})
	}
	if types.IsDocumentCategory(docType) {
		return s.docs.List(ctx, types.DocumentFilter{Category: docType})
	}
	return nil, invalid("unknown document type %q", docType)
}

// Open returns the vault document and a reader over its file.
func (s *DocumentService) Open(ctx context.Context, id int) (types.Document, File, error) {
	doc, err := s.docs.Get(ctx, id)
	if err != nil {
		return types.Document{}, File{}, err
	}
	body, err := s.files.Get(ctx, doc.Path)
	if err != nil {
		return types.Document{}, File{}, err
	}
	return doc, File{
		Name:        downloadName(doc.Title, doc.Path),
		ContentType: doc.ContentType,
		Size:        doc.Size,
		Body:        body,
	}, nil
}

// UploadToFolder stores a file in a resident's folder. The resident must
// exist.
func (s *DocumentService) UploadToFolder(ctx context.Context, actor types.User, youngPersonID int, title, category string, upload *Upload) (types.YPFolderDocument, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return types.YPFolderDocument{}, invalid("title is required")
	}
	category = strings.TrimSpace(category)
	if !types.IsYPFolderCategory(category) {
		return types.YPFolderDocument{}, invalid("category must be one of: %s", strings.Join(types.YPFolderCategories, ", "))
	}
	if _, err := s.people.Get(ctx, youngPersonID); err != nil {
		return types.YPFolderDocument{}, err
	}

	key, err := putUpload(ctx, s.files, path.Join(ypFolderKeyPrefix, strconv.Itoa(youngPersonID)), upload)
	if err != nil {
		return types.YPFolderDocument{}, err
	}

	doc, err := s.ypDocs.Create(ctx, types.YPFolderDocument{
		YoungPersonID: youngPersonID,
		Title:         title,
		Category:      category,
		Path:          key,
		ContentType:   contentTypeOf(upload),
		Size:          upload.Size,
		UploadedBy:    actor.ID,
	})
	if err != nil {
		discard(ctx, s.files, s.logger, key)
		return types.YPFolderDocument{}, err
	}

	s.events.emit(ctx, types.EventYPDocumentUploaded, actor.ID, doc.ID, map[string]any{
		"youngPersonId": youngPersonID,
		"category":      category,
	})
	return doc, nil
}

// ListFolder returns a resident's documents, newest first. An empty
// category lists all of them.
func (s *DocumentService) ListFolder(ctx context.Context, youngPersonID int, category string) ([]types.YPFolderDocument, error) {
	category = strings.TrimSpace(category)
	if category != "" && !types.IsYPFolderCategory(category) {
		return nil, invalid("unknown category %q", category)
	}
	if _, err := s.people.Get(ctx, youngPersonID); err != nil {
		return nil, err
	}
	return s.ypDocs.ListByYoungPerson(ctx, youngPersonID, category)
}

// OpenFolderDocument returns a resident folder document and its file.
func (s *DocumentService) OpenFolderDocument(ctx context.Context, youngPersonID, id int) (types.YPFolderDocument, File, error) {
	doc, err := s.ypDocs.Get(ctx, youngPersonID, id)
	if err != nil {
		return types.YPFolderDocument{}, File{}, err
	}
	body, err := s.files.Get(ctx, doc.Path)
	if err != nil {
		return types.YPFolderDocument{}, File{}, err
	}
	return doc, File{
		Name:        downloadName(doc.Title, doc.Path),
		ContentType: doc.ContentType,
		Size:        doc.Size,
		Body:        body,
	}, nil
}

func contentTypeOf(upload *Upload) string {
	if upload == nil || blank(upload.ContentType) {
		return defaultContentType
	}
	return upload.ContentType
}

func contentTypeByKey(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return defaultContentType
}

// downloadName is the title with the stored object's extension appended
// when the title does not already carry one.
func downloadName(title, key string) string {
	ext := path.Ext(key)
	if ext == "" || strings.EqualFold(path.Ext(title), ext) {
		return title
	}
	return title + ext
}
