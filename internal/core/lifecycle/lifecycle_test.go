package lifecycle_test

import (
	"testing"

	"github.com/fixedops/asset_management_app/internal/apperrors"
	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/fixedops/asset_management_app/internal/core/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_LegalEdges(t *testing.T) {
	legal := [][2]domain.AssetStatus{
		{domain.StatusAvailable, domain.StatusDeployed},
		{domain.StatusAvailable, domain.StatusInMaintenance},
		{domain.StatusDeployed, domain.StatusAvailable},
		{domain.StatusDeployed, domain.StatusDamaged},
		{domain.StatusInMaintenance, domain.StatusDeployed},
		{domain.StatusDamaged, domain.StatusInMaintenance},
		{domain.StatusDamaged, domain.StatusRetired},
		{domain.StatusRetired, domain.StatusDisposed},
	}
	for _, edge := range legal {
		_, err := lifecycle.Transition(edge[0], edge[1])
		assert.NoError(t, err, "%s -> %s", edge[0], edge[1])
	}
}

func TestTransition_IllegalEdges(t *testing.T) {
	illegal := [][2]domain.AssetStatus{
		{domain.StatusDamaged, domain.StatusDeployed},
		{domain.StatusRetired, domain.StatusAvailable},
		{domain.StatusRetired, domain.StatusDeployed},
		{domain.StatusDisposed, domain.StatusAvailable},
		{domain.StatusDisposed, domain.StatusRetired},
		{domain.StatusAvailable, domain.StatusDisposed},
	}
	for _, edge := range illegal {
		_, err := lifecycle.Transition(edge[0], edge[1])
		assert.ErrorIs(t, err, apperrors.ErrState, "%s -> %s", edge[0], edge[1])
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	_, err := lifecycle.Transition(domain.AssetStatus("LIMBO"), domain.StatusAvailable)
	assert.ErrorIs(t, err, apperrors.ErrState)
}

func TestTransition_RetirementEffects(t *testing.T) {
	fx, err := lifecycle.Transition(domain.StatusDeployed, domain.StatusRetired)
	require.NoError(t, err)
	assert.True(t, fx.CloseDeployment)
	assert.True(t, fx.ClearAssignment)

	fx, err = lifecycle.Transition(domain.StatusAvailable, domain.StatusRetired)
	require.NoError(t, err)
	assert.False(t, fx.CloseDeployment)
	assert.True(t, fx.ClearAssignment)

	fx, err = lifecycle.Transition(domain.StatusAvailable, domain.StatusDeployed)
	require.NoError(t, err)
	assert.False(t, fx.CloseDeployment)
	assert.False(t, fx.ClearAssignment)
}

func TestCanRetire(t *testing.T) {
	assert.True(t, lifecycle.CanRetire(domain.StatusAvailable))
	assert.True(t, lifecycle.CanRetire(domain.StatusDeployed))
	assert.True(t, lifecycle.CanRetire(domain.StatusInMaintenance))
	assert.True(t, lifecycle.CanRetire(domain.StatusDamaged))
	assert.False(t, lifecycle.CanRetire(domain.StatusRetired))
	assert.False(t, lifecycle.CanRetire(domain.StatusDisposed))
}
