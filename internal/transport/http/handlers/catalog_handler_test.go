package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/platform"
	catalogsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/catalog"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/transport/http/dto"
)

func TestListPackagesReturnsCatalog(t *testing.T) {
	stub := catalogPlatformStub{packages: []model.Package{
		{ID: "pkg-1", Provider: "dstv", Name: "Compact", Amount: 570_000, DurationDays: 30},
		{ID: "pkg-2", Provider: "gotv", Name: "Max", Amount: 240_000, DurationDays: 30},
	}}
	handler := NewCatalogHandler(catalogsvc.NewService(stub, nil, nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/packages", nil)
	rr := httptest.NewRecorder()
	handler.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}

	var payload dto.PackagesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Packages) != 2 {
		t.Fatalf("unexpected package count: got %d want 2", len(payload.Packages))
	}
	if payload.Packages[0].Amount != 570_000 {
		t.Fatalf("unexpected amount: got %d", payload.Packages[0].Amount)
	}
}

func TestGetPackageUnknownIDIs404(t *testing.T) {
	handler := NewCatalogHandler(catalogsvc.NewService(catalogPlatformStub{}, nil, nil), nil)

	router := chi.NewRouter()
	router.Get("/packages/{id}", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/packages/missing", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNotFound)
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload.Code != "PACKAGE_NOT_FOUND" {
		t.Fatalf("unexpected error code: got %q", payload.Code)
	}
}

type catalogPlatformStub struct {
	packages []model.Package
}

func (s catalogPlatformStub) ListPackages(context.Context) ([]model.Package, error) {
	return s.packages, nil
}

func (s catalogPlatformStub) GetPackage(_ context.Context, packageID string) (model.Package, error) {
	for _, pkg := range s.packages {
		if pkg.ID == packageID {
			return pkg, nil
		}
	}
	return model.Package{}, platform.ErrNotFound
}
