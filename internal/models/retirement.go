package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Retirement is the persistence model for a retirement record.
type Retirement struct {
	RetirementID       string     `json:"retirementID"`
	AssetID            string     `json:"assetID"`
	BusinessUnitID     string     `json:"businessUnitID"`
	RetirementDate     time.Time  `json:"retirementDate"`
	Reason             string     `json:"reason"`
	Method             string     `json:"method"`
	Condition          string     `json:"condition"`
	Notes              string     `json:"notes"`
	ReplacementAssetID *string    `json:"replacementAssetID"`
	DisposalPlanned    bool       `json:"disposalPlanned"`
	PlannedDisposalAt  *time.Time `json:"plannedDisposalAt"`
	ApprovedBy         string     `json:"approvedBy"`
	IsActive           bool       `json:"isActive"`
	AuditFields
}

// Disposal is the persistence model for a disposal record.
type Disposal struct {
	DisposalID     string          `json:"disposalID"`
	AssetID        string          `json:"assetID"`
	RetirementID   string          `json:"retirementID"`
	BusinessUnitID string          `json:"businessUnitID"`
	DisposalDate   time.Time       `json:"disposalDate"`
	Method         string          `json:"method"`
	Proceeds       decimal.Decimal `json:"proceeds"`
	Notes          string          `json:"notes"`
	AuditFields
}

// Deployment is the persistence model for an asset assignment row.
type Deployment struct {
	DeploymentID   string     `json:"deploymentID"`
	AssetID        string     `json:"assetID"`
	BusinessUnitID string     `json:"businessUnitID"`
	AssignedTo     string     `json:"assignedTo"`
	Location       string     `json:"location"`
	DeployedDate   time.Time  `json:"deployedDate"`
	ReturnedDate   *time.Time `json:"returnedDate"`
	ReturnNotes    string     `json:"returnNotes"`
	Status         string     `json:"status"`
	AuditFields
}

// AssetHistory is the persistence model for an audit trail row.
type AssetHistory struct {
	HistoryID        string           `json:"historyID"`
	AssetID          string           `json:"assetID"`
	Action           string           `json:"action"`
	PreviousStatus   *string          `json:"previousStatus"`
	NewStatus        *string          `json:"newStatus"`
	PreviousLocation *string          `json:"previousLocation"`
	NewLocation      *string          `json:"newLocation"`
	BookValueBefore  *decimal.Decimal `json:"bookValueBefore"`
	BookValueAfter   *decimal.Decimal `json:"bookValueAfter"`
	Notes            string           `json:"notes"`
	ActedBy          string           `json:"actedBy"`
	OccurredAt       time.Time        `json:"occurredAt"`
}
