package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/platform"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrPackageNotFound = errors.New("package not found")
)

type PlatformClient interface {
	ListPackages(ctx context.Context) ([]model.Package, error)
	GetPackage(ctx context.Context, packageID string) (model.Package, error)
}

type Cache interface {
	Get(ctx context.Context) ([]model.Package, bool, error)
	Put(ctx context.Context, packages []model.Package) error
}

// Service reads the platform's package catalog with a cache-aside layer.
// The catalog table is owned by the platform and read-only here.
type Service struct {
	platform PlatformClient
	cache    Cache
	logger   *zap.Logger
}

func NewService(client PlatformClient, cache Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{platform: client, cache: cache, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]model.Package, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("read catalog cache", zap.Error(err))
		}
		if ok {
			return cached, nil
		}
	}
	return s.Refresh(ctx)
}

func (s *Service) Get(ctx context.Context, packageID string) (model.Package, error) {
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return model.Package{}, ErrInvalidInput
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("read catalog cache", zap.Error(err))
		}
		if ok {
			for _, pkg := range cached {
				if pkg.ID == packageID {
					return pkg, nil
				}
			}
		}
	}

	pkg, err := s.platform.GetPackage(ctx, packageID)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return model.Package{}, ErrPackageNotFound
		}
		return model.Package{}, fmt.Errorf("load package: %w", err)
	}
	return pkg, nil
}

// Refresh pulls the catalog from the platform and repopulates the cache.
// The catalogsync job calls it on a timer.
func (s *Service) Refresh(ctx context.Context) ([]model.Package, error) {
	packages, err := s.platform.ListPackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, packages); err != nil {
			s.logger.Warn("store catalog cache", zap.Error(err))
		}
	}
	return packages, nil
}
