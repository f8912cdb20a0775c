package pagination_test

import (
	"testing"
	"time"

	"github.com/novatrust/funds_transfer_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	date := time.Date(2025, 6, 3, 14, 22, 5, 123456789, time.UTC)
	id := "a4f1c2d3-0000-4000-8000-000000000001"

	token := pagination.EncodeToken(date, id)
	gotDate, gotID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(gotDate))
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.Error(t, err)
}
