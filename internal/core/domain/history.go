package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryAction tags what kind of change an AssetHistory entry records.
type HistoryAction string

const (
	ActionCreated      HistoryAction = "CREATED"
	ActionUpdated      HistoryAction = "UPDATED"
	ActionStatusChange HistoryAction = "STATUS_CHANGED"
	ActionLocationMove HistoryAction = "LOCATION_CHANGED"
	ActionDepreciated  HistoryAction = "DEPRECIATED"
	ActionRetired      HistoryAction = "RETIRED"
	ActionDisposed     HistoryAction = "DISPOSED"
)

// AssetHistory is an append-only audit entry written by every mutating
// operation; entries are never mutated after creation.
type AssetHistory struct {
	HistoryID        string           `json:"historyID"` // Primary Key (UUID)
	AssetID          string           `json:"assetID"`
	Action           HistoryAction    `json:"action"`
	PreviousStatus   *AssetStatus     `json:"previousStatus"`
	NewStatus        *AssetStatus     `json:"newStatus"`
	PreviousLocation *string          `json:"previousLocation"`
	NewLocation      *string          `json:"newLocation"`
	BookValueBefore  *decimal.Decimal `json:"bookValueBefore"`
	BookValueAfter   *decimal.Decimal `json:"bookValueAfter"`
	Notes            string           `json:"notes"`
	ActedBy          string           `json:"actedBy"`
	OccurredAt       time.Time        `json:"occurredAt"`
}
