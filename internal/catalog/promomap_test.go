package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promohub/pkg/models"
)

func TestBuildPromoPriceMap(t *testing.T) {
	raw := []models.RawPromotionRecord{
		// same product, one entry per store: the lower price wins
		{Code: 100, PromoPrice: models.Scalar("19,90")},
		{Code: 100, PromoPrice: models.Scalar("17,50")},
		{Code: 200, PromoPrice: models.Scalar("30")},
		// no code, no entry
		{Code: 0, PromoPrice: models.Scalar("5")},
		// no usable price, no entry
		{Code: 300, PromoPrice: models.Scalar("")},
		{Code: 400, PromoPrice: models.Scalar("0")},
	}

	got := BuildPromoPriceMap(raw)
	require.Len(t, got, 2)
	assert.True(t, got[100].Equal(decimal.RequireFromString("17.5")), "got %s", got[100])
	assert.True(t, got[200].Equal(decimal.NewFromInt(30)))
}
