package documents

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
)

// DocumentDTO exposes document metadata in API responses.
type DocumentDTO struct {
	ID         uuid.UUID  `json:"id"`
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	UnitID     *uuid.UUID `json:"unit_id,omitempty"`
	Title      string     `json:"title"`
	DocType    *string    `json:"doc_type,omitempty"`
	FileURL    string     `json:"file_url"`
	UploadedBy *uuid.UUID `json:"uploaded_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// FromModel maps the persisted document into a DTO.
func FromModel(m *models.Document) *DocumentDTO {
	if m == nil {
		return nil
	}
	return &DocumentDTO{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		UnitID:     m.UnitID,
		Title:      m.Title,
		DocType:    m.DocType,
		FileURL:    m.FileURL,
		UploadedBy: m.UploadedBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func fromModels(rows []models.Document) []DocumentDTO {
	out := make([]DocumentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
