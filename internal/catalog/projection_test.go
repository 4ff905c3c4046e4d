package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promohub/pkg/models"
)

func promoFixture(code int, name, category string, promoPrice string, days *int, percent string) models.NormalizedPromotion {
	return models.NormalizedPromotion{
		Code:            code,
		Name:            name,
		Category:        category,
		PromoPrice:      decimal.RequireFromString(promoPrice),
		DiscountPercent: decimal.RequireFromString(percent),
		DaysRemaining:   days,
		Active:          true,
	}
}

func intPtr(n int) *int { return &n }

func TestFilterSearch(t *testing.T) {
	items := []models.NormalizedPromotion{
		{Code: 1, Name: "Shampoo Hidratante", Category: "Cabelos", Active: true},
		{Code: 2, Name: "Base Líquida", Category: "Maquiagem", Subcategory: "Rosto", Active: true},
		{Code: 3, Name: "Creme", ShortDescription: "hidratante corporal", Category: "Corpo", Active: true},
	}

	t.Run("empty term matches everything", func(t *testing.T) {
		assert.Len(t, Filter(items, "", ""), 3)
	})

	t.Run("term is case-insensitive and spans name and description", func(t *testing.T) {
		got := Filter(items, "HIDRATANTE", "")
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].Code)
		assert.Equal(t, 3, got[1].Code)
	})

	t.Run("term matches subcategory", func(t *testing.T) {
		got := Filter(items, "rosto", "")
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].Code)
	})

	t.Run("category is exact match", func(t *testing.T) {
		got := Filter(items, "", "Cabelos")
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].Code)

		assert.Empty(t, Filter(items, "", "cabelos"), "category filter does not fold case")
	})

	t.Run("filtered set is a subset of the input", func(t *testing.T) {
		got := Filter(items, "a", "Maquiagem")
		assert.LessOrEqual(t, len(got), len(items))
		for _, p := range got {
			assert.Equal(t, "Maquiagem", p.Category)
		}
	})
}

func TestSortModes(t *testing.T) {
	items := []models.NormalizedPromotion{
		promoFixture(1, "a", "", "50", intPtr(5), "10"),
		promoFixture(2, "b", "", "30", intPtr(2), "40"),
		promoFixture(3, "c", "", "40", nil, "25"),
	}

	codes := func(ps []models.NormalizedPromotion) []int {
		out := make([]int, len(ps))
		for i, p := range ps {
			out[i] = p.Code
		}
		return out
	}

	t.Run("urgency: soonest first, no deadline last", func(t *testing.T) {
		got := Project(items, "", "", SortUrgency)
		assert.Equal(t, []int{2, 1, 3}, codes(got))
	})

	t.Run("discount percent descending", func(t *testing.T) {
		got := Project(items, "", "", SortDiscountPercent)
		assert.Equal(t, []int{2, 3, 1}, codes(got))
	})

	t.Run("price ascending", func(t *testing.T) {
		got := Project(items, "", "", SortPriceAsc)
		assert.Equal(t, []int{2, 3, 1}, codes(got))
	})

	t.Run("discount value descending", func(t *testing.T) {
		valued := []models.NormalizedPromotion{
			{Code: 1, DiscountAmount: decimal.NewFromInt(5), Active: true},
			{Code: 2, DiscountAmount: decimal.NewFromInt(25), Active: true},
			{Code: 3, DiscountAmount: decimal.NewFromInt(10), Active: true},
		}
		got := Project(valued, "", "", SortDiscountValue)
		assert.Equal(t, []int{2, 3, 1}, codes(got))
	})

	t.Run("input order is never mutated", func(t *testing.T) {
		_ = Project(items, "", "", SortPriceAsc)
		assert.Equal(t, []int{1, 2, 3}, codes(items))
	})
}

func TestUrgencyTieBreakAndSentinel(t *testing.T) {
	items := []models.NormalizedPromotion{
		promoFixture(1, "small discount", "", "10", intPtr(3), "5"),
		promoFixture(2, "big discount", "", "10", intPtr(3), "50"),
		promoFixture(3, "far deadline", "", "10", intPtr(998), "99"),
		promoFixture(4, "no deadline", "", "10", nil, "99"),
	}

	got := Project(items, "", "", SortUrgency)
	require.Len(t, got, 4)

	// equal days remaining: larger discount percent first
	assert.Equal(t, 2, got[0].Code)
	assert.Equal(t, 1, got[1].Code)
	// 998 real days still beat the 999 no-deadline sentinel
	assert.Equal(t, 3, got[2].Code)
	assert.Equal(t, 4, got[3].Code)
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortUrgency, ParseSortMode(""))
	assert.Equal(t, SortUrgency, ParseSortMode("whatever"))
	assert.Equal(t, SortPriceAsc, ParseSortMode("preco_asc"))
	assert.Equal(t, SortDiscountValue, ParseSortMode("DESCONTO_VALOR"))
	assert.Equal(t, SortDiscountPercent, ParseSortMode("desconto_percentual"))
}

func TestCategoryOptions(t *testing.T) {
	items := []models.NormalizedPromotion{
		{Category: "Maquiagem"},
		{Category: "Cabelos"},
		{Category: ""},
		{Category: "Maquiagem"},
		{Category: "Água Micelar"},
	}

	got := CategoryOptions(items)
	// distinct, non-empty, pt-BR ordering keeps "Água" with the As
	assert.Equal(t, []string{"Água Micelar", "Cabelos", "Maquiagem"}, got)
}
