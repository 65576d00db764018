// Package lifecycle governs asset status transitions. The machine holds no
// data: callers pass current and target state and receive an allow/deny
// decision plus the side effects the transition requires.
package lifecycle

import (
	"fmt"

	"github.com/fixedops/asset_management_app/internal/apperrors"
	"github.com/fixedops/asset_management_app/internal/core/domain"
)

// Effects lists the side effects a caller must carry out alongside a legal
// transition. Retiring a deployed asset implies closing its open deployment.
type Effects struct {
	CloseDeployment bool
	ClearAssignment bool
}

// legal maps each state to the set of states it may transition into.
// RETIRED and DISPOSED are absorbing: nothing leads out of them except the
// single RETIRED -> DISPOSED edge.
var legal = map[domain.AssetStatus]map[domain.AssetStatus]bool{
	domain.StatusAvailable: {
		domain.StatusDeployed:      true,
		domain.StatusInMaintenance: true,
		domain.StatusDamaged:       true,
		domain.StatusRetired:       true,
	},
	domain.StatusDeployed: {
		domain.StatusAvailable:     true,
		domain.StatusInMaintenance: true,
		domain.StatusDamaged:       true,
		domain.StatusRetired:       true,
	},
	domain.StatusInMaintenance: {
		domain.StatusAvailable: true,
		domain.StatusDeployed:  true,
		domain.StatusDamaged:   true,
		domain.StatusRetired:   true,
	},
	domain.StatusDamaged: {
		domain.StatusAvailable:     true,
		domain.StatusInMaintenance: true,
		domain.StatusRetired:       true,
	},
	domain.StatusRetired: {
		domain.StatusDisposed: true,
	},
	domain.StatusDisposed: {},
}

// Transition validates a status change and returns the side effects it
// requires. Illegal transitions fail with an error wrapping
// apperrors.ErrState.
func Transition(from, to domain.AssetStatus) (Effects, error) {
	if !from.IsValid() || !to.IsValid() {
		return Effects{}, fmt.Errorf("%w: unknown status in transition %s -> %s", apperrors.ErrState, from, to)
	}
	if !legal[from][to] {
		return Effects{}, fmt.Errorf("%w: %s -> %s", apperrors.ErrState, from, to)
	}

	var fx Effects
	if to == domain.StatusRetired {
		fx.ClearAssignment = true
		if from == domain.StatusDeployed {
			fx.CloseDeployment = true
		}
	}
	return fx, nil
}

// CanRetire reports whether an asset in the given state may be retired.
func CanRetire(from domain.AssetStatus) bool {
	return legal[from][domain.StatusRetired]
}
