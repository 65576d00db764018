package pagination_test

import (
	"testing"
	"time"

	"github.com/fixedops/asset_management_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2024, 5, 17, 10, 30, 0, 123456789, time.UTC)
	id := "a2b9d9b0-1f44-4c37-9a93-000000000001"

	token := pagination.EncodeToken(createdAt, id)
	require.NotEmpty(t, token)

	gotTime, gotID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeTokenInvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeTokenMissingSeparator(t *testing.T) {
	_, _, err := pagination.DecodeToken("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.Error(t, err)
}
