package mapping

import (
	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/fixedops/asset_management_app/internal/models"
)

// ToModelDepreciationEntry converts a domain ledger entry to its model.
func ToModelDepreciationEntry(d domain.DepreciationEntry) models.DepreciationEntry {
	return models.DepreciationEntry{
		EntryID:                      d.EntryID,
		AssetID:                      d.AssetID,
		CalculationDate:              d.CalculationDate,
		PeriodStart:                  d.PeriodStart,
		PeriodEnd:                    d.PeriodEnd,
		BookValueBefore:              d.BookValueBefore,
		BookValueAfter:               d.BookValueAfter,
		Amount:                       d.Amount,
		AccumulatedDepreciationAfter: d.AccumulatedDepreciationAfter,
		Method:                       models.DepreciationMethod(d.Method),
		Notes:                        d.Notes,
		AuditFields:                  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDepreciationEntry converts a model ledger entry to the domain form.
func ToDomainDepreciationEntry(m models.DepreciationEntry) domain.DepreciationEntry {
	return domain.DepreciationEntry{
		EntryID:                      m.EntryID,
		AssetID:                      m.AssetID,
		CalculationDate:              m.CalculationDate,
		PeriodStart:                  m.PeriodStart,
		PeriodEnd:                    m.PeriodEnd,
		BookValueBefore:              m.BookValueBefore,
		BookValueAfter:               m.BookValueAfter,
		Amount:                       m.Amount,
		AccumulatedDepreciationAfter: m.AccumulatedDepreciationAfter,
		Method:                       domain.DepreciationMethod(m.Method),
		Notes:                        m.Notes,
		AuditFields:                  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDepreciationEntrySlice converts model entries to domain entries.
func ToDomainDepreciationEntrySlice(ms []models.DepreciationEntry) []domain.DepreciationEntry {
	ds := make([]domain.DepreciationEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDepreciationEntry(m)
	}
	return ds
}

// ToModelScheduleConfig converts a domain schedule config to its model.
func ToModelScheduleConfig(d domain.ScheduleConfig) models.ScheduleConfig {
	return models.ScheduleConfig{
		ScheduleID:         d.ScheduleID,
		BusinessUnitID:     d.BusinessUnitID,
		Name:               d.Name,
		Description:        d.Description,
		Cadence:            string(d.Cadence),
		ExecutionDay:       d.ExecutionDay,
		IsActive:           d.IsActive,
		IncludeCategoryIDs: d.IncludeCategoryIDs,
		ExcludeCategoryIDs: d.ExcludeCategoryIDs,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainScheduleConfig converts a model schedule config to the domain form.
func ToDomainScheduleConfig(m models.ScheduleConfig) domain.ScheduleConfig {
	return domain.ScheduleConfig{
		ScheduleID:         m.ScheduleID,
		BusinessUnitID:     m.BusinessUnitID,
		Name:               m.Name,
		Description:        m.Description,
		Cadence:            domain.Cadence(m.Cadence),
		ExecutionDay:       m.ExecutionDay,
		IsActive:           m.IsActive,
		IncludeCategoryIDs: m.IncludeCategoryIDs,
		ExcludeCategoryIDs: m.ExcludeCategoryIDs,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelScheduleExecution converts a domain execution record to its model.
func ToModelScheduleExecution(d domain.ScheduleExecution) models.ScheduleExecution {
	return models.ScheduleExecution{
		ExecutionID:     d.ExecutionID,
		ScheduleID:      d.ScheduleID,
		BusinessUnitID:  d.BusinessUnitID,
		ExecutionDate:   d.ExecutionDate,
		Status:          string(d.Status),
		AssetsProcessed: d.AssetsProcessed,
		Succeeded:       d.Succeeded,
		Failed:          d.Failed,
		Skipped:         d.Skipped,
		TotalAmount:     d.TotalAmount,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainScheduleExecution converts a model execution record to the domain form.
func ToDomainScheduleExecution(m models.ScheduleExecution) domain.ScheduleExecution {
	return domain.ScheduleExecution{
		ExecutionID:     m.ExecutionID,
		ScheduleID:      m.ScheduleID,
		BusinessUnitID:  m.BusinessUnitID,
		ExecutionDate:   m.ExecutionDate,
		Status:          domain.ExecutionStatus(m.Status),
		AssetsProcessed: m.AssetsProcessed,
		Succeeded:       m.Succeeded,
		Failed:          m.Failed,
		Skipped:         m.Skipped,
		TotalAmount:     m.TotalAmount,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
