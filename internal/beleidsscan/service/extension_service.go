package service

import (
	"context"
	"errors"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/extension"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/metrics"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
)

type ExtensionService interface {
	// Migrate runs a payload along the registered migration chain. An empty
	// target version means the type's current storage version.
	Migrate(ctx context.Context, req model.MigrateExtensionReq) (*model.MigratedExtension, error)
}

type extensionService struct {
	registry *extension.Registry
}

func NewExtensionService(registry *extension.Registry) ExtensionService {
	return &extensionService{registry: registry}
}

func (s *extensionService) Migrate(_ context.Context, req model.MigrateExtensionReq) (*model.MigratedExtension, error) {
	to := req.ToVersion
	if to == "" {
		current, err := s.registry.Current(req.Type)
		if err != nil {
			return nil, ErrBadRequest
		}
		to = current
	}

	path, err := s.registry.Path(req.Type, req.FromVersion, to)
	if err != nil {
		var pathErr *extension.PathError
		if errors.As(err, &pathErr) || errors.Is(err, extension.ErrUnknownType) {
			return nil, ErrBadRequest
		}
		return nil, err
	}

	migrated, version, err := s.registry.Migrate(req.Type, req.FromVersion, to, req.Payload)
	if err != nil {
		return nil, ErrBadRequest
	}

	metrics.ExtensionMigrations.WithLabelValues(req.Type).Inc()
	return &model.MigratedExtension{
		Type:          req.Type,
		SchemaVersion: extension.SchemaVersion(req.Type, version),
		Payload:       migrated,
		StepsApplied:  len(path),
	}, nil
}
