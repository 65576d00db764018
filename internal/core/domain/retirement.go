package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RetirementReason is the enumerated cause for retiring an asset.
type RetirementReason string

const (
	ReasonEndOfLife    RetirementReason = "END_OF_LIFE"
	ReasonObsolete     RetirementReason = "OBSOLETE"
	ReasonDamagedBR    RetirementReason = "DAMAGED_BEYOND_REPAIR"
	ReasonLostOrStolen RetirementReason = "LOST_OR_STOLEN"
	ReasonSold         RetirementReason = "SOLD"
	ReasonDonated      RetirementReason = "DONATED"
	ReasonOther        RetirementReason = "OTHER"
)

// IsValid checks whether the reason is one of the enumerated causes.
func (r RetirementReason) IsValid() bool {
	switch r {
	case ReasonEndOfLife, ReasonObsolete, ReasonDamagedBR, ReasonLostOrStolen, ReasonSold, ReasonDonated, ReasonOther:
		return true
	default:
		return false
	}
}

// Retirement records the terminal administrative act of removing an asset
// from active service. At most one active Retirement exists per asset.
type Retirement struct {
	RetirementID       string           `json:"retirementID"` // Primary Key (UUID)
	AssetID            string           `json:"assetID"`      // FK -> assets, unique while active
	BusinessUnitID     string           `json:"businessUnitID"`
	RetirementDate     time.Time        `json:"retirementDate"`
	Reason             RetirementReason `json:"reason"`
	Method             string           `json:"method"`    // How the retirement was carried out
	Condition          string           `json:"condition"` // Observed condition at retirement
	Notes              string           `json:"notes"`
	ReplacementAssetID *string          `json:"replacementAssetID"`
	DisposalPlanned    bool             `json:"disposalPlanned"`
	PlannedDisposalAt  *time.Time       `json:"plannedDisposalAt"`
	ApprovedBy         string           `json:"approvedBy"`
	IsActive           bool             `json:"isActive"` // Cleared when the asset is disposed
	AuditFields
}

// Disposal records the physical/legal disposal of an already retired asset.
type Disposal struct {
	DisposalID     string          `json:"disposalID"` // Primary Key (UUID)
	AssetID        string          `json:"assetID"`
	RetirementID   string          `json:"retirementID"`
	BusinessUnitID string          `json:"businessUnitID"`
	DisposalDate   time.Time       `json:"disposalDate"`
	Method         string          `json:"method"`
	Proceeds       decimal.Decimal `json:"proceeds"`
	Notes          string          `json:"notes"`
	AuditFields
}
