package mapping

import (
	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/fixedops/asset_management_app/internal/models"
)

// ToModelAsset converts a domain Asset to its persistence model.
func ToModelAsset(d domain.Asset) models.Asset {
	var method *models.DepreciationMethod
	if d.Method != nil {
		m := models.DepreciationMethod(*d.Method)
		method = &m
	}
	return models.Asset{
		AssetID:        d.AssetID,
		ItemCode:       d.ItemCode,
		Description:    d.Description,
		CategoryID:     d.CategoryID,
		BusinessUnitID: d.BusinessUnitID,
		DepartmentID:   d.DepartmentID,
		Quantity:       d.Quantity,
		Location:       d.Location,
		Notes:          d.Notes,
		Status:         models.AssetStatus(d.Status),
		IsActive:       d.IsActive,
		AssignedTo:     d.AssignedTo,

		PurchaseDate:            d.PurchaseDate,
		PurchasePrice:           d.PurchasePrice,
		SalvageValue:            d.SalvageValue,
		Method:                  method,
		UsefulLifeYears:         d.UsefulLifeYears,
		UsefulLifeExtraMonths:   d.UsefulLifeExtraMonths,
		DepreciationStartDate:   d.DepreciationStartDate,
		BookValue:               d.BookValue,
		AccumulatedDepreciation: d.AccumulatedDepreciation,
		MonthlyDepreciation:     d.MonthlyDepreciation,
		DecliningBalanceRate:    d.DecliningBalanceRate,
		TotalProductionUnits:    d.TotalProductionUnits,
		PerUnitRate:             d.PerUnitRate,
		LastDepreciationDate:    d.LastDepreciationDate,
		NextDepreciationDate:    d.NextDepreciationDate,
		IsFullyDepreciated:      d.IsFullyDepreciated,

		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAsset converts a model Asset to the domain form.
func ToDomainAsset(m models.Asset) domain.Asset {
	var method *domain.DepreciationMethod
	if m.Method != nil {
		dm := domain.DepreciationMethod(*m.Method)
		method = &dm
	}
	return domain.Asset{
		AssetID:        m.AssetID,
		ItemCode:       m.ItemCode,
		Description:    m.Description,
		CategoryID:     m.CategoryID,
		BusinessUnitID: m.BusinessUnitID,
		DepartmentID:   m.DepartmentID,
		Quantity:       m.Quantity,
		Location:       m.Location,
		Notes:          m.Notes,
		Status:         domain.AssetStatus(m.Status),
		IsActive:       m.IsActive,
		AssignedTo:     m.AssignedTo,

		PurchaseDate:            m.PurchaseDate,
		PurchasePrice:           m.PurchasePrice,
		SalvageValue:            m.SalvageValue,
		Method:                  method,
		UsefulLifeYears:         m.UsefulLifeYears,
		UsefulLifeExtraMonths:   m.UsefulLifeExtraMonths,
		DepreciationStartDate:   m.DepreciationStartDate,
		BookValue:               m.BookValue,
		AccumulatedDepreciation: m.AccumulatedDepreciation,
		MonthlyDepreciation:     m.MonthlyDepreciation,
		DecliningBalanceRate:    m.DecliningBalanceRate,
		TotalProductionUnits:    m.TotalProductionUnits,
		PerUnitRate:             m.PerUnitRate,
		LastDepreciationDate:    m.LastDepreciationDate,
		NextDepreciationDate:    m.NextDepreciationDate,
		IsFullyDepreciated:      m.IsFullyDepreciated,

		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAssetSlice converts a slice of model Assets to domain Assets.
func ToDomainAssetSlice(ms []models.Asset) []domain.Asset {
	ds := make([]domain.Asset, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAsset(m)
	}
	return ds
}

// ToDomainCategory converts a model Category to the domain form.
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		CodePrefix:  m.CodePrefix,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBusinessUnit converts a model BusinessUnit to the domain form.
func ToDomainBusinessUnit(m models.BusinessUnit) domain.BusinessUnit {
	return domain.BusinessUnit{
		BusinessUnitID: m.BusinessUnitID,
		Name:           m.Name,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
