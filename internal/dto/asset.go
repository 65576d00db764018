package dto

import (
	"time"

	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAssetRequest is the payload for registering a new asset.
type CreateAssetRequest struct {
	ItemCode     string  `json:"itemCode"` // Optional; generated from the category prefix when empty
	Description  string  `json:"description" binding:"required"`
	CategoryID   string  `json:"categoryID" binding:"required"`
	DepartmentID *string `json:"departmentID"`
	Quantity     int     `json:"quantity" binding:"omitempty,min=1"`
	Location     string  `json:"location"`
	Notes        string  `json:"notes"`
	AssignedTo   *string `json:"assignedTo"` // Pre-assigned assets are created DEPLOYED

	PurchaseDate          *time.Time       `json:"purchaseDate"`
	PurchasePrice         *decimal.Decimal `json:"purchasePrice"`
	SalvageValue          *decimal.Decimal `json:"salvageValue"`
	DepreciationMethod    *string          `json:"depreciationMethod" binding:"omitempty,oneof=STRAIGHT_LINE DECLINING_BALANCE UNITS_OF_PRODUCTION SUM_OF_YEARS_DIGITS"`
	UsefulLifeYears       int              `json:"usefulLifeYears" binding:"omitempty,min=0"`
	UsefulLifeExtraMonths int              `json:"usefulLifeExtraMonths" binding:"omitempty,min=0,max=11"`
	DepreciationStartDate *time.Time       `json:"depreciationStartDate"`
	DecliningBalanceRate  *decimal.Decimal `json:"decliningBalanceRate"`
	TotalProductionUnits  *decimal.Decimal `json:"totalProductionUnits"`
}

// UpdateAssetRequest is the payload for updating an asset. Nil fields are
// left unchanged; changing method, price or life recomputes the
// depreciation parameters.
type UpdateAssetRequest struct {
	Description  *string `json:"description"`
	DepartmentID *string `json:"departmentID"`
	Quantity     *int    `json:"quantity" binding:"omitempty,min=1"`
	Location     *string `json:"location"`
	Notes        *string `json:"notes"`
	Status       *string `json:"status" binding:"omitempty,oneof=AVAILABLE DEPLOYED IN_MAINTENANCE DAMAGED"`

	PurchaseDate          *time.Time       `json:"purchaseDate"`
	PurchasePrice         *decimal.Decimal `json:"purchasePrice"`
	SalvageValue          *decimal.Decimal `json:"salvageValue"`
	DepreciationMethod    *string          `json:"depreciationMethod" binding:"omitempty,oneof=STRAIGHT_LINE DECLINING_BALANCE UNITS_OF_PRODUCTION SUM_OF_YEARS_DIGITS"`
	UsefulLifeYears       *int             `json:"usefulLifeYears" binding:"omitempty,min=0"`
	UsefulLifeExtraMonths *int             `json:"usefulLifeExtraMonths" binding:"omitempty,min=0,max=11"`
	DepreciationStartDate *time.Time       `json:"depreciationStartDate"`
	DecliningBalanceRate  *decimal.Decimal `json:"decliningBalanceRate"`
	TotalProductionUnits  *decimal.Decimal `json:"totalProductionUnits"`
}

// AssetResponse is the API representation of an asset.
type AssetResponse struct {
	AssetID        string  `json:"assetID"`
	ItemCode       string  `json:"itemCode"`
	Description    string  `json:"description"`
	CategoryID     string  `json:"categoryID"`
	BusinessUnitID string  `json:"businessUnitID"`
	DepartmentID   *string `json:"departmentID,omitempty"`
	Quantity       int     `json:"quantity"`
	Location       string  `json:"location"`
	Notes          string  `json:"notes,omitempty"`
	Status         string  `json:"status"`
	IsActive       bool    `json:"isActive"`
	AssignedTo     *string `json:"assignedTo,omitempty"`

	PurchaseDate            *time.Time      `json:"purchaseDate,omitempty"`
	PurchasePrice           decimal.Decimal `json:"purchasePrice"`
	SalvageValue            decimal.Decimal `json:"salvageValue"`
	DepreciationMethod      *string         `json:"depreciationMethod,omitempty"`
	UsefulLifeYears         int             `json:"usefulLifeYears"`
	UsefulLifeExtraMonths   int             `json:"usefulLifeExtraMonths"`
	DepreciationStartDate   *time.Time      `json:"depreciationStartDate,omitempty"`
	BookValue               decimal.Decimal `json:"bookValue"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulatedDepreciation"`
	MonthlyDepreciation     decimal.Decimal `json:"monthlyDepreciation"`
	LastDepreciationDate    *time.Time      `json:"lastDepreciationDate,omitempty"`
	NextDepreciationDate    *time.Time      `json:"nextDepreciationDate,omitempty"`
	IsFullyDepreciated      bool            `json:"isFullyDepreciated"`

	CreatedAt time.Time `json:"createdAt"`
}

// ToAssetResponse converts a domain Asset to its API representation.
func ToAssetResponse(a *domain.Asset) AssetResponse {
	var method *string
	if a.Method != nil {
		m := a.Method.String()
		method = &m
	}
	return AssetResponse{
		AssetID:        a.AssetID,
		ItemCode:       a.ItemCode,
		Description:    a.Description,
		CategoryID:     a.CategoryID,
		BusinessUnitID: a.BusinessUnitID,
		DepartmentID:   a.DepartmentID,
		Quantity:       a.Quantity,
		Location:       a.Location,
		Notes:          a.Notes,
		Status:         a.Status.String(),
		IsActive:       a.IsActive,
		AssignedTo:     a.AssignedTo,

		PurchaseDate:            a.PurchaseDate,
		PurchasePrice:           a.PurchasePrice,
		SalvageValue:            a.SalvageValue,
		DepreciationMethod:      method,
		UsefulLifeYears:         a.UsefulLifeYears,
		UsefulLifeExtraMonths:   a.UsefulLifeExtraMonths,
		DepreciationStartDate:   a.DepreciationStartDate,
		BookValue:               a.BookValue,
		AccumulatedDepreciation: a.AccumulatedDepreciation,
		MonthlyDepreciation:     a.MonthlyDepreciation,
		LastDepreciationDate:    a.LastDepreciationDate,
		NextDepreciationDate:    a.NextDepreciationDate,
		IsFullyDepreciated:      a.IsFullyDepreciated,

		CreatedAt: a.CreatedAt,
	}
}

// ToAssetResponses converts domain Assets to API representations.
func ToAssetResponses(assets []domain.Asset) []AssetResponse {
	out := make([]AssetResponse, len(assets))
	for i := range assets {
		out[i] = ToAssetResponse(&assets[i])
	}
	return out
}

// ListAssetsParams holds pagination parameters for asset listings.
type ListAssetsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListAssetsResponse is a page of assets.
type ListAssetsResponse struct {
	Assets    []AssetResponse `json:"assets"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// AssetHistoryResponse is the API representation of an audit trail entry.
type AssetHistoryResponse struct {
	HistoryID        string           `json:"historyID"`
	Action           string           `json:"action"`
	PreviousStatus   *string          `json:"previousStatus,omitempty"`
	NewStatus        *string          `json:"newStatus,omitempty"`
	PreviousLocation *string          `json:"previousLocation,omitempty"`
	NewLocation      *string          `json:"newLocation,omitempty"`
	BookValueBefore  *decimal.Decimal `json:"bookValueBefore,omitempty"`
	BookValueAfter   *decimal.Decimal `json:"bookValueAfter,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	ActedBy          string           `json:"actedBy"`
	OccurredAt       time.Time        `json:"occurredAt"`
}

// ToAssetHistoryResponses converts domain history entries to API form.
func ToAssetHistoryResponses(entries []domain.AssetHistory) []AssetHistoryResponse {
	out := make([]AssetHistoryResponse, len(entries))
	for i, h := range entries {
		var prev, next *string
		if h.PreviousStatus != nil {
			s := h.PreviousStatus.String()
			prev = &s
		}
		if h.NewStatus != nil {
			s := h.NewStatus.String()
			next = &s
		}
		out[i] = AssetHistoryResponse{
			HistoryID:        h.HistoryID,
			Action:           string(h.Action),
			PreviousStatus:   prev,
			NewStatus:        next,
			PreviousLocation: h.PreviousLocation,
			NewLocation:      h.NewLocation,
			BookValueBefore:  h.BookValueBefore,
			BookValueAfter:   h.BookValueAfter,
			Notes:            h.Notes,
			ActedBy:          h.ActedBy,
			OccurredAt:       h.OccurredAt,
		}
	}
	return out
}

// ListAssetHistoryResponse is a page of audit trail entries.
type ListAssetHistoryResponse struct {
	History   []AssetHistoryResponse `json:"history"`
	NextToken *string                `json:"nextToken,omitempty"`
}
