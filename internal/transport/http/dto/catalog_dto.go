package dto

import "github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"

type PackageResponse struct {
	ID           string `json:"id"`
	Provider     string `json:"provider"`
	Name         string `json:"name"`
	Amount       int64  `json:"amount"`
	DurationDays int    `json:"duration_days"`
}

func PackageResponseFrom(pkg model.Package) PackageResponse {
	return PackageResponse{
		ID:           pkg.ID,
		Provider:     pkg.Provider,
		Name:         pkg.Name,
		Amount:       pkg.Amount,
		DurationDays: pkg.DurationDays,
	}
}

type PackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
}

func PackagesResponseFrom(packages []model.Package) PackagesResponse {
	out := PackagesResponse{Packages: make([]PackageResponse, 0, len(packages))}
	for _, pkg := range packages {
		out.Packages = append(out.Packages, PackageResponseFrom(pkg))
	}
	return out
}
