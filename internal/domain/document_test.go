package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_Defaults(t *testing.T) {
	now := time.Date(2025, 7, 24, 10, 0, 0, 0, time.UTC)

	doc := NewDocument(CreateDocumentInput{
		Title:      "Onboarding",
		Category:   DocumentCategoryHandbook,
		BusinessID: 7,
	}, now)

	assert.Equal(t, DocumentStatusDraft, doc.Status)
	assert.Nil(t, doc.Description)
	assert.Nil(t, doc.FileURL)
	assert.Nil(t, doc.Tags)
	assert.Equal(t, now, doc.CreatedAt)
	assert.Equal(t, now, doc.UpdatedAt)
	assert.Equal(t, int64(7), doc.BusinessID)
}

func TestNewDocument_ClonesTags(t *testing.T) {
	tags := []string{"hr", "policies"}
	doc := NewDocument(CreateDocumentInput{Title: "x", Category: DocumentCategoryGeneral, Tags: tags}, time.Now())

	tags[0] = "changed"
	assert.Equal(t, []string{"hr", "policies"}, doc.Tags)
}

func TestDocumentPatch_Apply(t *testing.T) {
	created := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)

	tests := []struct {
		name  string
		patch DocumentPatch
		check func(t *testing.T, d Document)
	}{
		{
			name:  "status only",
			patch: DocumentPatch{Status: ptr(DocumentStatusApproved)},
			check: func(t *testing.T, d Document) {
				assert.Equal(t, DocumentStatusApproved, d.Status)
				assert.Equal(t, "Handbook", d.Title)
				assert.Equal(t, []string{"hr"}, d.Tags)
			},
		},
		{
			name:  "empty description clears it",
			patch: DocumentPatch{Description: ptr("")},
			check: func(t *testing.T, d Document) {
				assert.Nil(t, d.Description)
			},
		},
		{
			name:  "tags replaced",
			patch: DocumentPatch{Tags: &[]string{"a", "b"}},
			check: func(t *testing.T, d Document) {
				assert.Equal(t, []string{"a", "b"}, d.Tags)
			},
		},
		{
			name:  "empty patch still stamps",
			patch: DocumentPatch{},
			check: func(t *testing.T, d Document) {
				assert.Equal(t, later, d.UpdatedAt)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument(CreateDocumentInput{
				Title:       "Handbook",
				Description: "desc",
				Category:    DocumentCategoryHandbook,
				Tags:        []string{"hr"},
			}, created)

			tt.patch.Apply(&d, later)

			assert.Equal(t, created, d.CreatedAt)
			assert.Equal(t, later, d.UpdatedAt)
			tt.check(t, d)
		})
	}
}

func TestDocumentPatch_Apply_UpdatedAtAlwaysAdvances(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	d := NewDocument(CreateDocumentInput{Title: "x", Category: DocumentCategorySOP}, now)

	DocumentPatch{}.Apply(&d, now)
	first := d.UpdatedAt
	require.True(t, first.After(d.CreatedAt))

	DocumentPatch{}.Apply(&d, now.Add(-time.Minute))
	assert.True(t, d.UpdatedAt.After(first))
}

func TestDocumentEnums_Valid(t *testing.T) {
	assert.True(t, DocumentCategoryMarketing.Valid())
	assert.False(t, DocumentCategory("memo").Valid())
	assert.True(t, DocumentStatusReview.Valid())
	assert.False(t, DocumentStatus("archived").Valid())
}

func ptr[T any](v T) *T { return &v }
