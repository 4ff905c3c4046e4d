package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"promohub/pkg/models"
)

var hundred = decimal.NewFromInt(100)

// Normalize turns one raw export record into its derived commercial form.
// It is a total function: malformed numeric and date fields degrade to
// zero / absent instead of failing, so one bad record can never abort a
// catalog load. Activation is evaluated against now.
func Normalize(raw models.RawPromotionRecord, now time.Time) models.NormalizedPromotion {
	normal := coerceAmount(raw.NormalPrice)
	promo := coerceAmount(raw.PromoPrice)

	amount := normal.Sub(promo)
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	percent := decimal.Zero
	if explicit, ok := coerceOptionalAmount(raw.DiscountPercent); ok {
		percent = explicit
	} else if normal.IsPositive() {
		percent = amount.Div(normal).Mul(hundred).Round(1)
	}

	stock1 := coerceStock(raw.StockStore1)
	stock2 := coerceStock(raw.StockStore2)

	p := models.NormalizedPromotion{
		Code:             raw.Code,
		Name:             raw.Name,
		PromoName:        raw.PromoName,
		Category:         strings.TrimSpace(raw.Category),
		Subcategory:      raw.Subcategory,
		ShortDescription: raw.ShortDescription,
		Image:            imageFile(raw),
		NormalPrice:      normal,
		PromoPrice:       promo,
		DiscountAmount:   amount,
		DiscountPercent:  percent,
		StockStore1:      stock1,
		StockStore2:      stock2,
		TotalStock:       stock1 + stock2,
		UntilStockOut:    coerceFlag(raw.UntilStockOut),
		CashOnly:         coerceFlag(raw.CashOnly),
		EndDate:          parseEndDate(raw.EndDate),
	}

	p.Active, p.DaysRemaining = EvaluateActivation(p.EndDate, p.UntilStockOut, p.TotalStock, now)
	return p
}

// coerceAmount reads a monetary value. Comma decimal separators are
// accepted, anything unparseable or negative reads as zero.
func coerceAmount(f models.FlexScalar) decimal.Decimal {
	d, _ := coerceOptionalAmount(f)
	return d
}

func coerceOptionalAmount(f models.FlexScalar) (decimal.Decimal, bool) {
	if !f.IsSet {
		return decimal.Zero, false
	}
	s := strings.ReplaceAll(strings.TrimSpace(f.Text), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

func coerceStock(f models.FlexScalar) int {
	n := int(coerceAmount(f).IntPart())
	if n < 0 {
		return 0
	}
	return n
}

// coerceFlag accepts booleans, 0/1 and their string forms. The legacy
// export is not consistent about which one it writes.
func coerceFlag(f models.FlexScalar) bool {
	if !f.IsSet {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(f.Text)) {
	case "", "0", "false", "f", "nao", "não", "n":
		return false
	case "1", "true", "t", "sim", "s":
		return true
	}
	// any other non-empty string counts as set, matching the storefront
	if d, err := decimal.NewFromString(f.Text); err == nil {
		return !d.IsZero()
	}
	return true
}

// parseEndDate parses "2006-01-02" (full timestamps are tolerated and cut
// down to their date) and anchors the result at local midday. Empty or
// unparseable input yields nil: no end date.
func parseEndDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return nil
		}
		t = t.In(time.Local)
	}

	anchored := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.Local)
	return &anchored
}

func imageFile(raw models.RawPromotionRecord) string {
	if img := strings.TrimSpace(raw.Image); img != "" {
		return img
	}
	return fmt.Sprintf("%d.jpg", raw.Code)
}
