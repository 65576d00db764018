package dto

import (
	"time"

	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RetireAssetsRequest is the payload for a batch retirement.
type RetireAssetsRequest struct {
	AssetIDs           []string   `json:"assetIDs" binding:"required,min=1"`
	RetirementDate     time.Time  `json:"retirementDate" binding:"required"`
	Reason             string     `json:"reason" binding:"required,oneof=END_OF_LIFE OBSOLETE DAMAGED_BEYOND_REPAIR LOST_OR_STOLEN SOLD DONATED OTHER"`
	Method             string     `json:"method"`
	Condition          string     `json:"condition"`
	Notes              string     `json:"notes"`
	ReplacementAssetID *string    `json:"replacementAssetID"`
	DisposalPlanned    bool       `json:"disposalPlanned"`
	PlannedDisposalAt  *time.Time `json:"plannedDisposalAt"`
	ApprovedBy         string     `json:"approvedBy"`
}

// RetireAssetsResult reports the outcome of a batch retirement. The number
// of auto-closed deployments is a side-effect warning, not an error.
type RetireAssetsResult struct {
	Success                bool     `json:"success"`
	RetiredCount           int      `json:"retiredCount"`
	DeployedAssetsReturned int      `json:"deployedAssetsReturned"`
	Warnings               []string `json:"warnings,omitempty"`
}

// RetirableAssetsParams filters the retirable asset listing.
type RetirableAssetsParams struct {
	CategoryID *string `form:"categoryID"`
}

// CategoryResponse is the API representation of a category.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	CodePrefix string `json:"codePrefix"`
}

// ToCategoryResponses converts domain categories to API form.
func ToCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = CategoryResponse{CategoryID: c.CategoryID, Name: c.Name, CodePrefix: c.CodePrefix}
	}
	return out
}

// RetirableAssetsResponse is the read-only listing for operator selection.
type RetirableAssetsResponse struct {
	Assets     []AssetResponse    `json:"assets"`
	TotalCount int                `json:"totalCount"`
	Categories []CategoryResponse `json:"categories"`
}

// DisposeAssetRequest is the payload for disposing a retired asset.
type DisposeAssetRequest struct {
	AssetID      string           `json:"assetID" binding:"required"`
	DisposalDate time.Time        `json:"disposalDate" binding:"required"`
	Method       string           `json:"method" binding:"required"`
	Proceeds     *decimal.Decimal `json:"proceeds"`
	Notes        string           `json:"notes"`
}

// DisposalResponse is the API representation of a disposal record.
type DisposalResponse struct {
	DisposalID   string          `json:"disposalID"`
	AssetID      string          `json:"assetID"`
	RetirementID string          `json:"retirementID"`
	DisposalDate time.Time       `json:"disposalDate"`
	Method       string          `json:"method"`
	Proceeds     decimal.Decimal `json:"proceeds"`
	Notes        string          `json:"notes,omitempty"`
}

// ToDisposalResponse converts a domain Disposal to API form.
func ToDisposalResponse(d *domain.Disposal) DisposalResponse {
	return DisposalResponse{
		DisposalID:   d.DisposalID,
		AssetID:      d.AssetID,
		RetirementID: d.RetirementID,
		DisposalDate: d.DisposalDate,
		Method:       d.Method,
		Proceeds:     d.Proceeds,
		Notes:        d.Notes,
	}
}
