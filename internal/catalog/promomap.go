package catalog

import (
	"github.com/shopspring/decimal"

	"promohub/pkg/models"
)

// BuildPromoPriceMap maps product code → the lowest promotional price seen
// across all raw entries for that code. The export repeats a product once
// per store location, so the minimum wins. Entries without a code or
// without a positive promo price are skipped.
//
// The quote builder consumes this map to overlay promo pricing on the
// plain product list; it owns everything else about the cart.
func BuildPromoPriceMap(raw []models.RawPromotionRecord) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(raw))
	for _, r := range raw {
		if r.Code == 0 {
			continue
		}
		price := coerceAmount(r.PromoPrice)
		if !price.IsPositive() {
			continue
		}
		if old, ok := out[r.Code]; !ok || price.LessThan(old) {
			out[r.Code] = price
		}
	}
	return out
}
