package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus is the lifecycle state of an asset.
type AssetStatus string

const (
	StatusAvailable     AssetStatus = "AVAILABLE"
	StatusDeployed      AssetStatus = "DEPLOYED"
	StatusInMaintenance AssetStatus = "IN_MAINTENANCE"
	StatusDamaged       AssetStatus = "DAMAGED"
	StatusRetired       AssetStatus = "RETIRED"
	StatusDisposed      AssetStatus = "DISPOSED"
)

// IsValid checks whether the status is one of the known lifecycle states.
func (s AssetStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusDeployed, StatusInMaintenance, StatusDamaged, StatusRetired, StatusDisposed:
		return true
	default:
		return false
	}
}

// IsOperational reports whether the asset is still in active service
// (i.e. not in a terminal state).
func (s AssetStatus) IsOperational() bool {
	switch s {
	case StatusAvailable, StatusDeployed, StatusInMaintenance, StatusDamaged:
		return true
	default:
		return false
	}
}

func (s AssetStatus) String() string {
	return string(s)
}

// DepreciationMethod determines the periodic amortization formula.
type DepreciationMethod string

const (
	StraightLine      DepreciationMethod = "STRAIGHT_LINE"
	DecliningBalance  DepreciationMethod = "DECLINING_BALANCE"
	UnitsOfProduction DepreciationMethod = "UNITS_OF_PRODUCTION"
	SumOfYearsDigits  DepreciationMethod = "SUM_OF_YEARS_DIGITS"
)

// IsValid checks whether the method is a known depreciation method.
func (m DepreciationMethod) IsValid() bool {
	switch m {
	case StraightLine, DecliningBalance, UnitsOfProduction, SumOfYearsDigits:
		return true
	default:
		return false
	}
}

func (m DepreciationMethod) String() string {
	return string(m)
}

// Asset is the central entity tracked through its operational lifecycle.
type Asset struct {
	AssetID        string      `json:"assetID"`        // Primary Key (UUID)
	ItemCode       string      `json:"itemCode"`       // Unique, sequential per category prefix
	Description    string      `json:"description"`    //
	CategoryID     string      `json:"categoryID"`     // FK -> categories
	BusinessUnitID string      `json:"businessUnitID"` // FK -> business_units (NON-NULL)
	DepartmentID   *string     `json:"departmentID"`   // Nullable FK
	Quantity       int         `json:"quantity"`       //
	Location       string      `json:"location"`       // Free text
	Notes          string      `json:"notes"`          // Free text
	Status         AssetStatus `json:"status"`         //
	IsActive       bool        `json:"isActive"`       //
	AssignedTo     *string     `json:"assignedTo"`     // Current deployment target, nil when not deployed

	// Financial / depreciation attributes.
	PurchaseDate            *time.Time          `json:"purchaseDate"`
	PurchasePrice           decimal.Decimal     `json:"purchasePrice"`
	SalvageValue            decimal.Decimal     `json:"salvageValue"`
	Method                  *DepreciationMethod `json:"depreciationMethod"`
	UsefulLifeYears         int                 `json:"usefulLifeYears"`
	UsefulLifeExtraMonths   int                 `json:"usefulLifeExtraMonths"`
	DepreciationStartDate   *time.Time          `json:"depreciationStartDate"`
	BookValue               decimal.Decimal     `json:"bookValue"`
	AccumulatedDepreciation decimal.Decimal     `json:"accumulatedDepreciation"`
	MonthlyDepreciation     decimal.Decimal     `json:"monthlyDepreciation"`
	DecliningBalanceRate    decimal.Decimal     `json:"decliningBalanceRate"` // Annual rate, asset-configured
	TotalProductionUnits    decimal.Decimal     `json:"totalProductionUnits"`
	PerUnitRate             decimal.Decimal     `json:"perUnitRate"`
	LastDepreciationDate    *time.Time          `json:"lastDepreciationDate"`
	NextDepreciationDate    *time.Time          `json:"nextDepreciationDate"`
	IsFullyDepreciated      bool                `json:"isFullyDepreciated"`

	AuditFields
}

// UsefulLifeMonths is the total depreciation horizon in months.
func (a *Asset) UsefulLifeMonths() int {
	return a.UsefulLifeYears*12 + a.UsefulLifeExtraMonths
}

// HasDepreciationSetup reports whether the asset carries enough financial
// data to be depreciated at all.
func (a *Asset) HasDepreciationSetup() bool {
	return a.Method != nil &&
		a.PurchasePrice.IsPositive() &&
		a.DepreciationStartDate != nil
}
