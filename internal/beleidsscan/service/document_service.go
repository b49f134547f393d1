package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/extension"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/metrics"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/repository"
)

type DocumentService interface {
	CreateDocument(ctx context.Context, callerID string, req model.CreateDocumentReq) (*model.CanonicalDocument, error)
	GetDocument(ctx context.Context, id string) (*model.CanonicalDocument, error)
	UpdateDocument(ctx context.Context, callerID, id string, req model.UpdateDocumentReq) (*model.CanonicalDocument, error)
	DeleteDocument(ctx context.Context, callerID, id string) error
	ListDocuments(ctx context.Context, filter model.DocumentFilter) ([]*model.CanonicalDocument, error)
	AttachExtension(ctx context.Context, callerID, id string, req model.AttachExtensionReq) (*model.CanonicalDocument, error)
}

type documentService struct {
	repo       repository.DocumentRepository
	extensions *extension.Registry
}

func NewDocumentService(repo repository.DocumentRepository, extensions *extension.Registry) DocumentService {
	return &documentService{repo: repo, extensions: extensions}
}

func fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func (s *documentService) CreateDocument(ctx context.Context, callerID string, req model.CreateDocumentReq) (*model.CanonicalDocument, error) {
	now := time.Now().UTC()
	doc := &model.CanonicalDocument{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Authority:     req.Authority,
		AuthorityKind: req.AuthorityKind,
		DocType:       req.DocType,
		SourceURL:     req.SourceURL,
		PublishedAt:   req.PublishedAt,
		RetrievedAt:   &now,
		CreatedBy:     callerID,
		UpdatedBy:     callerID,
	}
	if req.Content != "" {
		doc.ContentFingerprint = fingerprint(req.Content)
	}

	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	metrics.DocumentsCreated.Inc()
	return doc, nil
}

func (s *documentService) GetDocument(ctx context.Context, id string) (*model.CanonicalDocument, error) {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) UpdateDocument(ctx context.Context, callerID, id string, req model.UpdateDocumentReq) (*model.CanonicalDocument, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		doc.Title = req.Title
	}
	if req.DocType != "" {
		doc.DocType = req.DocType
	}
	if req.SourceURL != "" {
		doc.SourceURL = req.SourceURL
	}
	if req.PublishedAt != nil {
		doc.PublishedAt = req.PublishedAt
	}
	if req.Content != "" {
		doc.ContentFingerprint = fingerprint(req.Content)
	}
	doc.UpdatedBy = callerID

	if err := s.repo.UpdateDocument(ctx, doc); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrConflict
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, callerID, id string) error {
	if err := s.repo.DeleteDocument(ctx, id, callerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *documentService) ListDocuments(ctx context.Context, filter model.DocumentFilter) ([]*model.CanonicalDocument, error) {
	return s.repo.FindDocuments(ctx, filter)
}

// AttachExtension migrates the payload to the type's storage version before
// persisting, so stored extensions are always at the current schema.
func (s *documentService) AttachExtension(ctx context.Context, callerID, id string, req model.AttachExtensionReq) (*model.CanonicalDocument, error) {
	migrated, version, err := s.extensions.MigrateToCurrent(req.Type, req.SchemaVersion, req.Payload)
	if err != nil {
		var pathErr *extension.PathError
		if errors.As(err, &pathErr) || errors.Is(err, extension.ErrUnknownType) {
			return nil, ErrBadRequest
		}
		return nil, err
	}

	ext := model.Extension{
		Type:          req.Type,
		SchemaVersion: extension.SchemaVersion(req.Type, version),
		Payload:       migrated,
	}
	if err := s.repo.AttachExtension(ctx, id, ext); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	metrics.ExtensionMigrations.WithLabelValues(req.Type).Inc()
	return s.GetDocument(ctx, id)
}
