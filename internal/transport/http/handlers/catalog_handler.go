package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	catalogsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/catalog"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/transport/http/dto"
)

type CatalogHandler struct {
	catalog *catalogsvc.Service
	logger  *zap.Logger
}

func NewCatalogHandler(catalog *catalogsvc.Service, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{catalog: catalog, logger: logger}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		writeInternal(w, "INTERNAL", "catalog is not configured")
		return
	}

	packages, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("list packages failed", zap.Error(err))
		writeInternal(w, "INTERNAL", "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, dto.PackagesResponseFrom(packages))
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		writeInternal(w, "INTERNAL", "catalog is not configured")
		return
	}

	packageID := chi.URLParam(r, "id")
	pkg, err := h.catalog.Get(r.Context(), packageID)
	if err != nil {
		switch {
		case errors.Is(err, catalogsvc.ErrInvalidInput):
			writeBadRequest(w, "VALIDATION_ERROR", "package id is required")
		case errors.Is(err, catalogsvc.ErrPackageNotFound):
			writeNotFound(w, "PACKAGE_NOT_FOUND", "package not found")
		default:
			h.logger.Error("get package failed", zap.String("package_id", packageID), zap.Error(err))
			writeInternal(w, "INTERNAL", "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.PackageResponseFrom(pkg))
}
