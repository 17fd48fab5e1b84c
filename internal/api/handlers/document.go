package handlers

import (
	"context"
	"net/http"

	"github.com/smarterworkco/GPT-UI/internal/api"
	"github.com/smarterworkco/GPT-UI/internal/api/middleware"
	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/smarterworkco/GPT-UI/internal/service"
	"github.com/smarterworkco/GPT-UI/internal/storage"
)

type DocumentRepository interface {
	GetDocuments(ctx context.Context, businessID int64) ([]domain.Document, error)
	GetDocument(ctx context.Context, id int64) (*domain.Document, error)
	CreateDocument(ctx context.Context, in domain.CreateDocumentInput) (*domain.Document, error)
	UpdateDocument(ctx context.Context, id int64, patch domain.DocumentPatch) (*domain.Document, error)
	DeleteDocument(ctx context.Context, id int64) (bool, error)
}

type DocumentFiles interface {
	InitUpload(ctx context.Context, doc *domain.Document, filename, contentType string) (*service.UploadResult, error)
	DownloadURL(ctx context.Context, doc *domain.Document) (string, error)
	RemoveFile(ctx context.Context, doc *domain.Document)
}

type DocumentHandler struct {
	repo  DocumentRepository
	files DocumentFiles
}

func NewDocumentHandler(repo DocumentRepository, files DocumentFiles) *DocumentHandler {
	return &DocumentHandler{repo: repo, files: files}
}

type CreateDocumentRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"required,oneof=handbook sop policy marketing general"`
	Status      string   `json:"status" validate:"omitempty,oneof=draft review approved"`
	FileURL     string   `json:"fileUrl"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required,max=50"`
}

type UpdateDocumentRequest struct {
	Title       *string   `json:"title" validate:"omitempty,max=200"`
	Description *string   `json:"description"`
	Category    *string   `json:"category" validate:"omitempty,oneof=handbook sop policy marketing general"`
	Status      *string   `json:"status" validate:"omitempty,oneof=draft review approved"`
	FileURL     *string   `json:"fileUrl"`
	Tags        *[]string `json:"tags" validate:"omitempty,dive,required,max=50"`
}

type InitUploadRequest struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"max=255"`
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	business := middleware.GetBusiness(r.Context())
	docs, err := h.repo.GetDocuments(r.Context(), business.ID)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	api.JSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.load(w, r)
	if !ok {
		return
	}
	api.JSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if !api.Decode(w, r, &req) {
		return
	}
	if !externalFileURL(w, &req.FileURL) {
		return
	}

	business := middleware.GetBusiness(r.Context())
	doc, err := h.repo.CreateDocument(r.Context(), domain.CreateDocumentInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.DocumentCategory(req.Category),
		Status:      domain.DocumentStatus(req.Status),
		FileURL:     req.FileURL,
		Tags:        req.Tags,
		BusinessID:  business.ID,
	})
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	api.JSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.load(w, r)
	if !ok {
		return
	}

	var req UpdateDocumentRequest
	if !api.Decode(w, r, &req) {
		return
	}
	if req.Title != nil && *req.Title == "" {
		api.ValidationFailed(w, []api.FieldError{{Field: "title", Message: "title cannot be empty"}})
		return
	}
	if !externalFileURL(w, req.FileURL) {
		return
	}

	patch := domain.DocumentPatch{
		Title:       req.Title,
		Description: req.Description,
		FileURL:     req.FileURL,
		Tags:        req.Tags,
	}
	if req.Category != nil {
		c := domain.DocumentCategory(*req.Category)
		patch.Category = &c
	}
	if req.Status != nil {
		s := domain.DocumentStatus(*req.Status)
		patch.Status = &s
	}

	updated, err := h.repo.UpdateDocument(r.Context(), doc.ID, patch)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	api.JSON(w, http.StatusOK, updated)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.load(w, r)
	if !ok {
		return
	}

	deleted, err := h.repo.DeleteDocument(r.Context(), doc.ID)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	if !deleted {
		api.NotFound(w)
		return
	}

	h.files.RemoveFile(r.Context(), doc)
	api.NoContent(w)
}

// InitUpload returns a presigned URL the client PUTs the file to
func (h *DocumentHandler) InitUpload(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.load(w, r)
	if !ok {
		return
	}

	var req InitUploadRequest
	if !api.Decode(w, r, &req) {
		return
	}

	res, err := h.files.InitUpload(r.Context(), doc, req.Filename, req.ContentType)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	api.JSON(w, http.StatusOK, res)
}

// Download redirects to where the document's file can be fetched
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.load(w, r)
	if !ok {
		return
	}

	url, err := h.files.DownloadURL(r.Context(), doc)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// externalFileURL rejects client-supplied fileUrls in the stored-object
// scheme. Only InitUpload may point a document at a stored object.
func externalFileURL(w http.ResponseWriter, fileURL *string) bool {
	if fileURL == nil || !storage.IsStoredFileURL(*fileURL) {
		return true
	}
	api.ValidationFailed(w, []api.FieldError{{
		Field:   "fileUrl",
		Message: "fileUrl cannot reference stored files; upload through /file instead",
	}})
	return false
}

// load fetches the {id} document, answering 404 when it is absent or
// belongs to another business.
func (h *DocumentHandler) load(w http.ResponseWriter, r *http.Request) (*domain.Document, bool) {
	id, ok := pathID(r, "id")
	if !ok {
		api.NotFound(w)
		return nil, false
	}

	doc, err := h.repo.GetDocument(r.Context(), id)
	if err != nil {
		api.HandleError(w, r, err)
		return nil, false
	}

	if doc.BusinessID != middleware.GetBusiness(r.Context()).ID {
		api.NotFound(w)
		return nil, false
	}
	return doc, true
}
