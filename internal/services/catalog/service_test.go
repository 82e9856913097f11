package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/platform"
)

type catalogPlatformStub struct {
	listCalls int
	getCalls  int
	packages  []model.Package
}

func (s *catalogPlatformStub) ListPackages(_ context.Context) ([]model.Package, error) {
	s.listCalls++
	return s.packages, nil
}

func (s *catalogPlatformStub) GetPackage(_ context.Context, packageID string) (model.Package, error) {
	s.getCalls++
	for _, pkg := range s.packages {
		if pkg.ID == packageID {
			return pkg, nil
		}
	}
	return model.Package{}, platform.ErrNotFound
}

type catalogCacheStub struct {
	packages []model.Package
	loaded   bool
}

func (c *catalogCacheStub) Get(_ context.Context) ([]model.Package, bool, error) {
	return c.packages, c.loaded, nil
}

func (c *catalogCacheStub) Put(_ context.Context, packages []model.Package) error {
	c.packages = packages
	c.loaded = true
	return nil
}

func testPackages() []model.Package {
	return []model.Package{
		{ID: "pkg-1", Provider: "gotv", Name: "GOtv Jolli", Amount: 393000, DurationDays: 30},
		{ID: "pkg-2", Provider: "dstv", Name: "DStv Compact", Amount: 1290000, DurationDays: 30},
	}
}

func TestListPopulatesCacheOnMiss(t *testing.T) {
	stub := &catalogPlatformStub{packages: testPackages()}
	cache := &catalogCacheStub{}
	svc := NewService(stub, cache, nil)

	packages, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(packages) != 2 {
		t.Fatalf("unexpected package count: %d", len(packages))
	}
	if !cache.loaded {
		t.Fatalf("cache not populated")
	}

	// Second read is served from cache.
	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("list from cache: %v", err)
	}
	if stub.listCalls != 1 {
		t.Fatalf("expected a single platform list call, got %d", stub.listCalls)
	}
}

func TestGetPrefersCachedRow(t *testing.T) {
	stub := &catalogPlatformStub{packages: testPackages()}
	cache := &catalogCacheStub{}
	svc := NewService(stub, cache, nil)

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	pkg, err := svc.Get(context.Background(), "pkg-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if pkg.Name != "DStv Compact" {
		t.Fatalf("unexpected package: %+v", pkg)
	}
	if stub.getCalls != 0 {
		t.Fatalf("cached get still hit the platform %d times", stub.getCalls)
	}
}

func TestGetUnknownPackage(t *testing.T) {
	svc := NewService(&catalogPlatformStub{packages: testPackages()}, &catalogCacheStub{}, nil)

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrPackageNotFound) {
		t.Fatalf("expected ErrPackageNotFound, got %v", err)
	}
}
