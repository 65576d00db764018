package mapping

import (
	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/fixedops/asset_management_app/internal/models"
)

// ToModelRetirement converts a domain Retirement to its persistence model.
func ToModelRetirement(d domain.Retirement) models.Retirement {
	return models.Retirement{
		RetirementID:       d.RetirementID,
		AssetID:            d.AssetID,
		BusinessUnitID:     d.BusinessUnitID,
		RetirementDate:     d.RetirementDate,
		Reason:             string(d.Reason),
		Method:             d.Method,
		Condition:          d.Condition,
		Notes:              d.Notes,
		ReplacementAssetID: d.ReplacementAssetID,
		DisposalPlanned:    d.DisposalPlanned,
		PlannedDisposalAt:  d.PlannedDisposalAt,
		ApprovedBy:         d.ApprovedBy,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRetirement converts a model Retirement to the domain form.
func ToDomainRetirement(m models.Retirement) domain.Retirement {
	return domain.Retirement{
		RetirementID:       m.RetirementID,
		AssetID:            m.AssetID,
		BusinessUnitID:     m.BusinessUnitID,
		RetirementDate:     m.RetirementDate,
		Reason:             domain.RetirementReason(m.Reason),
		Method:             m.Method,
		Condition:          m.Condition,
		Notes:              m.Notes,
		ReplacementAssetID: m.ReplacementAssetID,
		DisposalPlanned:    m.DisposalPlanned,
		PlannedDisposalAt:  m.PlannedDisposalAt,
		ApprovedBy:         m.ApprovedBy,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelDisposal converts a domain Disposal to its persistence model.
func ToModelDisposal(d domain.Disposal) models.Disposal {
	return models.Disposal{
		DisposalID:     d.DisposalID,
		AssetID:        d.AssetID,
		RetirementID:   d.RetirementID,
		BusinessUnitID: d.BusinessUnitID,
		DisposalDate:   d.DisposalDate,
		Method:         d.Method,
		Proceeds:       d.Proceeds,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDisposal converts a model Disposal to the domain form.
func ToDomainDisposal(m models.Disposal) domain.Disposal {
	return domain.Disposal{
		DisposalID:     m.DisposalID,
		AssetID:        m.AssetID,
		RetirementID:   m.RetirementID,
		BusinessUnitID: m.BusinessUnitID,
		DisposalDate:   m.DisposalDate,
		Method:         m.Method,
		Proceeds:       m.Proceeds,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDeployment converts a model Deployment to the domain form.
func ToDomainDeployment(m models.Deployment) domain.Deployment {
	return domain.Deployment{
		DeploymentID:   m.DeploymentID,
		AssetID:        m.AssetID,
		BusinessUnitID: m.BusinessUnitID,
		AssignedTo:     m.AssignedTo,
		Location:       m.Location,
		DeployedDate:   m.DeployedDate,
		ReturnedDate:   m.ReturnedDate,
		ReturnNotes:    m.ReturnNotes,
		Status:         domain.DeploymentStatus(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAssetHistory converts a domain history entry to its model.
func ToModelAssetHistory(d domain.AssetHistory) models.AssetHistory {
	m := models.AssetHistory{
		HistoryID:        d.HistoryID,
		AssetID:          d.AssetID,
		Action:           string(d.Action),
		PreviousLocation: d.PreviousLocation,
		NewLocation:      d.NewLocation,
		BookValueBefore:  d.BookValueBefore,
		BookValueAfter:   d.BookValueAfter,
		Notes:            d.Notes,
		ActedBy:          d.ActedBy,
		OccurredAt:       d.OccurredAt,
	}
	if d.PreviousStatus != nil {
		s := string(*d.PreviousStatus)
		m.PreviousStatus = &s
	}
	if d.NewStatus != nil {
		s := string(*d.NewStatus)
		m.NewStatus = &s
	}
	return m
}

// ToDomainAssetHistory converts a model history entry to the domain form.
func ToDomainAssetHistory(m models.AssetHistory) domain.AssetHistory {
	d := domain.AssetHistory{
		HistoryID:        m.HistoryID,
		AssetID:          m.AssetID,
		Action:           domain.HistoryAction(m.Action),
		PreviousLocation: m.PreviousLocation,
		NewLocation:      m.NewLocation,
		BookValueBefore:  m.BookValueBefore,
		BookValueAfter:   m.BookValueAfter,
		Notes:            m.Notes,
		ActedBy:          m.ActedBy,
		OccurredAt:       m.OccurredAt,
	}
	if m.PreviousStatus != nil {
		s := domain.AssetStatus(*m.PreviousStatus)
		d.PreviousStatus = &s
	}
	if m.NewStatus != nil {
		s := domain.AssetStatus(*m.NewStatus)
		d.NewStatus = &s
	}
	return d
}

// ToDomainAssetHistorySlice converts model history rows to domain entries.
func ToDomainAssetHistorySlice(ms []models.AssetHistory) []domain.AssetHistory {
	ds := make([]domain.AssetHistory, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAssetHistory(m)
	}
	return ds
}
