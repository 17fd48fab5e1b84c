package domain

import (
	"slices"
	"time"
)

// DocumentCategory classifies a document
type DocumentCategory string

const (
	DocumentCategoryHandbook  DocumentCategory = "handbook"
	DocumentCategorySOP       DocumentCategory = "sop"
	DocumentCategoryPolicy    DocumentCategory = "policy"
	DocumentCategoryMarketing DocumentCategory = "marketing"
	DocumentCategoryGeneral   DocumentCategory = "general"
)

// DocumentStatus tracks review progress. Transitions are not enforced.
type DocumentStatus string

const (
	DocumentStatusDraft    DocumentStatus = "draft"
	DocumentStatusReview   DocumentStatus = "review"
	DocumentStatusApproved DocumentStatus = "approved"
)

// Valid reports whether c is a known category
func (c DocumentCategory) Valid() bool {
	switch c {
	case DocumentCategoryHandbook, DocumentCategorySOP, DocumentCategoryPolicy,
		DocumentCategoryMarketing, DocumentCategoryGeneral:
		return true
	}
	return false
}

// Valid reports whether s is a known status
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusReview, DocumentStatusApproved:
		return true
	}
	return false
}

// Document is a catalog entry owned by a business
type Document struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Category    DocumentCategory `json:"category"`
	Status      DocumentStatus   `json:"status"`
	FileURL     *string          `json:"fileUrl"`
	Tags        []string         `json:"tags"`
	BusinessID  int64            `json:"businessId"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Clone returns a copy of d that shares no slices with it
func (d Document) Clone() Document {
	d.Description = cloneString(d.Description)
	d.FileURL = cloneString(d.FileURL)
	d.Tags = slices.Clone(d.Tags)
	return d
}

// CreateDocumentInput carries the fields accepted when creating a document
type CreateDocumentInput struct {
	Title       string
	Description string
	Category    DocumentCategory
	Status      DocumentStatus
	FileURL     string
	Tags        []string
	BusinessID  int64
}

// DocumentPatch is a shallow merge over the document's mutable fields.
// Nil fields are left untouched; a non-nil empty Tags clears the tag list.
type DocumentPatch struct {
	Title       *string
	Description *string
	Category    *DocumentCategory
	Status      *DocumentStatus
	FileURL     *string
	Tags        *[]string
}

// NewDocument builds a Document from input with defaults applied.
// createdAt and updatedAt are both set to now.
func NewDocument(in CreateDocumentInput, now time.Time) Document {
	status := in.Status
	if status == "" {
		status = DocumentStatusDraft
	}
	var tags []string
	if in.Tags != nil {
		tags = slices.Clone(in.Tags)
	}
	return Document{
		Title:       in.Title,
		Description: optional(in.Description),
		Category:    in.Category,
		Status:      status,
		FileURL:     optional(in.FileURL),
		Tags:        tags,
		BusinessID:  in.BusinessID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Apply merges the patch onto d and stamps updatedAt. The stamp is pushed
// forward when now does not advance past the previous updatedAt.
func (p DocumentPatch) Apply(d *Document, now time.Time) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = optional(*p.Description)
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.FileURL != nil {
		d.FileURL = optional(*p.FileURL)
	}
	if p.Tags != nil {
		if *p.Tags == nil {
			d.Tags = nil
		} else {
			d.Tags = slices.Clone(*p.Tags)
		}
	}
	d.UpdatedAt = NextUpdatedAt(d.UpdatedAt, now)
}

// NextUpdatedAt returns now, or prev+1ns when now is not after prev
func NextUpdatedAt(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Nanosecond)
}
