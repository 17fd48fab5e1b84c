package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/smarterworkco/GPT-UI/internal/storage"
	"github.com/smarterworkco/GPT-UI/internal/telemetry"
	"go.uber.org/zap"
)

// FileStorage presigns transfers of document files
type FileStorage interface {
	GenerateUploadURL(ctx context.Context, key string, contentType string) (string, error)
	GenerateDownloadURL(ctx context.Context, key string) (string, error)
	HeadObject(ctx context.Context, key string) (*storage.ObjectMetadata, error)
	DeleteObject(ctx context.Context, key string) error
}

// DocumentFileRepository is the slice of the repository needed for files
type DocumentFileRepository interface {
	UpdateDocument(ctx context.Context, id int64, patch domain.DocumentPatch) (*domain.Document, error)
}

type UploadResult struct {
	UploadURL string           `json:"uploadUrl"`
	Method    string           `json:"method"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Document  *domain.Document `json:"document"`
}

type DocumentFileService struct {
	repo         DocumentFileRepository
	store        FileStorage
	uploadExpiry time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

// NewDocumentFileService returns a service backed by store. A nil store
// leaves external fileUrls working and reports stored-file operations as
// unavailable.
func NewDocumentFileService(repo DocumentFileRepository, store FileStorage, logger *zap.Logger) *DocumentFileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentFileService{
		repo:         repo,
		store:        store,
		uploadExpiry: 15 * time.Minute,
		logger:       logger,
		now:          time.Now,
	}
}

// InitUpload points doc's fileUrl at a fresh object key and returns a
// presigned PUT URL for the client to upload the bytes to.
func (s *DocumentFileService) InitUpload(ctx context.Context, doc *domain.Document, filename, contentType string) (*UploadResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "documents.init_upload", telemetry.SpanAttributes{
		BusinessID: doc.BusinessID,
		DocumentID: doc.ID,
		Operation:  "init_upload",
	})
	defer span.End()

	if s.store == nil {
		return nil, domain.ErrFileStorageUnavailable
	}

	key := storage.DocumentKey(doc.BusinessID, doc.ID, filename)
	uploadURL, err := s.store.GenerateUploadURL(ctx, key, contentType)
	if err != nil {
		span.SetError(err)
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUnavailable, "failed to presign upload", err)
	}

	fileURL := storage.FileURL(key)
	updated, err := s.repo.UpdateDocument(ctx, doc.ID, domain.DocumentPatch{FileURL: &fileURL})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	if old, ok := storedKey(doc); ok && old != key {
		s.deleteQuietly(ctx, old)
	}

	return &UploadResult{
		UploadURL: uploadURL,
		Method:    "PUT",
		ExpiresAt: s.now().Add(s.uploadExpiry).UTC(),
		Document:  updated,
	}, nil
}

// DownloadURL returns where the document's file can be fetched. Stored
// objects get a presigned URL; external fileUrls are returned unchanged.
func (s *DocumentFileService) DownloadURL(ctx context.Context, doc *domain.Document) (string, error) {
	if doc.FileURL == nil {
		return "", domain.ErrDocumentFileMissing
	}
	key, ok := storedKey(doc)
	if !ok {
		if storage.IsStoredFileURL(*doc.FileURL) {
			return "", domain.ErrDocumentFileMissing
		}
		return *doc.FileURL, nil
	}
	if s.store == nil {
		return "", domain.ErrFileStorageUnavailable
	}

	if _, err := s.store.HeadObject(ctx, key); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return "", domain.ErrDocumentFileMissing
		}
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeUnavailable, "failed to check stored file", err)
	}

	url, err := s.store.GenerateDownloadURL(ctx, key)
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeUnavailable, "failed to presign download", err)
	}
	return url, nil
}

// RemoveFile deletes the stored object behind a deleted document, if any
func (s *DocumentFileService) RemoveFile(ctx context.Context, doc *domain.Document) {
	if s.store == nil {
		return
	}
	if key, ok := storedKey(doc); ok {
		s.deleteQuietly(ctx, key)
	}
}

func (s *DocumentFileService) deleteQuietly(ctx context.Context, key string) {
	if err := s.store.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("failed to delete stored document file", zap.String("key", key), zap.Error(err))
	}
}

// storedKey returns the object key behind doc's fileUrl. Keys outside the
// document's own prefix are never treated as its file.
func storedKey(doc *domain.Document) (string, bool) {
	if doc.FileURL == nil {
		return "", false
	}
	key, ok := storage.KeyFromFileURL(*doc.FileURL)
	if !ok {
		return "", false
	}
	name, owned := strings.CutPrefix(key, storage.DocumentKeyPrefix(doc.BusinessID, doc.ID))
	if !owned || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return key, true
}
