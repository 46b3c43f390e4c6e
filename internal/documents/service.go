package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

type documentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Document, error)
	Update(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type referenceFinder interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service enforces document rules on top of the repository.
type Service interface {
	Create(ctx context.Context, in CreateInput) (*DocumentDTO, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]DocumentDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*DocumentDTO, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*DocumentDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo       documentRepository
	properties referenceFinder
	units      referenceFinder
}

// NewService builds the service with the provided repositories.
func NewService(repo documentRepository, properties, units referenceFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("document repository required")
	}
	if properties == nil || units == nil {
		return nil, fmt.Errorf("property and unit repositories required")
	}
	return &service{repo: repo, properties: properties, units: units}, nil
}

// CreateInput carries fields for filing a document.
type CreateInput struct {
	PropertyID *uuid.UUID
	UnitID     *uuid.UUID
	Title      string
	DocType    *string
	FileURL    string
	UploadedBy *uuid.UUID
}

// UpdateInput carries optional document mutations.
type UpdateInput struct {
	Title   *string
	DocType *string
	FileURL *string
}

// Create files a new document after validating references.
func (s *service) Create(ctx context.Context, in CreateInput) (*DocumentDTO, error) {
	fields := pkgerrors.FieldErrors{}
	if in.Title == "" {
		fields.Add("title", "title is required")
	}
	if in.FileURL == "" {
		fields.Add("file_url", "file_url is required")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if in.PropertyID != nil {
		ok, err := s.properties.Exists(ctx, *in.PropertyID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to check property")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeReferential, "referenced property does not exist")
		}
	}
	if in.UnitID != nil {
		ok, err := s.units.Exists(ctx, *in.UnitID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to check unit")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeReferential, "referenced unit does not exist")
		}
	}

	doc := &models.Document{
		PropertyID: in.PropertyID,
		UnitID:     in.UnitID,
		Title:      in.Title,
		DocType:    in.DocType,
		FileURL:    in.FileURL,
		UploadedBy: in.UploadedBy,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create document")
	}
	return FromModel(doc), nil
}

// GetByID returns a single document.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*DocumentDTO, error) {
	doc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(doc), nil
}

// List returns documents matching the filter.
func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]DocumentDTO, error) {
	rows, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list documents")
	}
	return fromModels(rows), nil
}

// Update applies partial changes to a document.
func (s *service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*DocumentDTO, error) {
	doc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if in.Title != nil {
		if *in.Title == "" {
			fields.Add("title", "title cannot be empty")
		} else {
			doc.Title = *in.Title
		}
	}
	if in.DocType != nil {
		doc.DocType = in.DocType
	}
	if in.FileURL != nil {
		if *in.FileURL == "" {
			fields.Add("file_url", "file_url cannot be empty")
		} else {
			doc.FileURL = *in.FileURL
		}
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update document")
	}
	return FromModel(doc), nil
}

// Delete removes a document.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to delete document")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load document")
	}
	return doc, nil
}
