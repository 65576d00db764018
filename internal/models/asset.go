package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus mirrors the domain lifecycle state at the persistence layer.
type AssetStatus string

// DepreciationMethod mirrors the domain method enum at the persistence layer.
type DepreciationMethod string

// Asset is the persistence model for an asset row.
type Asset struct {
	AssetID        string      `json:"assetID"`
	ItemCode       string      `json:"itemCode"`
	Description    string      `json:"description"`
	CategoryID     string      `json:"categoryID"`
	BusinessUnitID string      `json:"businessUnitID"`
	DepartmentID   *string     `json:"departmentID"`
	Quantity       int         `json:"quantity"`
	Location       string      `json:"location"`
	Notes          string      `json:"notes"`
	Status         AssetStatus `json:"status"`
	IsActive       bool        `json:"isActive"`
	AssignedTo     *string     `json:"assignedTo"`

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
	DecliningBalanceRate    decimal.Decimal     `json:"decliningBalanceRate"`
	TotalProductionUnits    decimal.Decimal     `json:"totalProductionUnits"`
	PerUnitRate             decimal.Decimal     `json:"perUnitRate"`
	LastDepreciationDate    *time.Time          `json:"lastDepreciationDate"`
	NextDepreciationDate    *time.Time          `json:"nextDepreciationDate"`
	IsFullyDepreciated      bool                `json:"isFullyDepreciated"`

	AuditFields
}

// AuditFields holds the audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// Category is the persistence model for a category row.
type Category struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	CodePrefix string `json:"codePrefix"`
	NextSeq    int    `json:"nextSeq"` // Item code sequence counter
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// BusinessUnit is the persistence model for a business unit row.
type BusinessUnit struct {
	BusinessUnitID string `json:"businessUnitID"`
	Name           string `json:"name"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}
