package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"promohub/pkg/models"
)

// SortMode selects the comparator for the projected catalog.
type SortMode string

const (
	// SortUrgency is the default: soonest-expiring first, ties broken by
	// the larger discount percentage.
	SortUrgency         SortMode = "urgencia"
	SortDiscountPercent SortMode = "desconto_percentual"
	SortDiscountValue   SortMode = "desconto_valor"
	SortPriceAsc        SortMode = "preco_asc"
)

// noDeadline is the urgency key for promotions without an end date, so
// "no deadline" sorts after every real countdown.
const noDeadline = 999

// ParseSortMode maps a query value onto a known mode. Unknown or empty
// values fall back to the urgency default.
func ParseSortMode(s string) SortMode {
	switch SortMode(strings.TrimSpace(strings.ToLower(s))) {
	case SortDiscountPercent:
		return SortDiscountPercent
	case SortDiscountValue:
		return SortDiscountValue
	case SortPriceAsc:
		return SortPriceAsc
	default:
		return SortUrgency
	}
}

// Project derives the display-ordered subset for one set of criteria:
// filter by search term, then by category, then sort. The input slice is
// never mutated and filtering never depends on sort order.
func Project(items []models.NormalizedPromotion, term, category string, mode SortMode) []models.NormalizedPromotion {
	out := Filter(items, term, category)
	Sort(out, mode)
	return out
}

// Filter returns the subset matching the case-insensitive free-text term
// and the exact-match category. An empty term or category matches
// everything.
func Filter(items []models.NormalizedPromotion, term, category string) []models.NormalizedPromotion {
	term = strings.ToLower(strings.TrimSpace(term))
	category = strings.TrimSpace(category)

	out := make([]models.NormalizedPromotion, 0, len(items))
	for _, p := range items {
		if term != "" && !strings.Contains(searchBlob(p), term) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

func searchBlob(p models.NormalizedPromotion) string {
	return strings.ToLower(p.Name + " " + p.ShortDescription + " " + p.Category + " " + p.Subcategory)
}

// Sort orders items in place. All comparators are stable.
func Sort(items []models.NormalizedPromotion, mode SortMode) {
	switch mode {
	case SortDiscountPercent:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].DiscountPercent.GreaterThan(items[j].DiscountPercent)
		})
	case SortDiscountValue:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].DiscountAmount.GreaterThan(items[j].DiscountAmount)
		})
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].PromoPrice.LessThan(items[j].PromoPrice)
		})
	default: // SortUrgency
		sort.SliceStable(items, func(i, j int) bool {
			di, dj := urgencyKey(items[i]), urgencyKey(items[j])
			if di != dj {
				return di < dj
			}
			return items[i].DiscountPercent.GreaterThan(items[j].DiscountPercent)
		})
	}
}

func urgencyKey(p models.NormalizedPromotion) int {
	if p.DaysRemaining == nil {
		return noDeadline
	}
	return *p.DaysRemaining
}

// CategoryOptions collects the distinct non-empty categories of the
// active set, ordered with pt-BR collation. The "all categories" sentinel
// is presentation chrome and is prepended by the rendering layer.
func CategoryOptions(items []models.NormalizedPromotion) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 8)
	for _, p := range items {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}

	collate.New(language.BrazilianPortuguese).SortStrings(out)
	return out
}
