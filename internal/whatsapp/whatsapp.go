// Package whatsapp builds the storefront's outbound wa.me deep links with
// pre-filled messages. Templating only, no state.
package whatsapp

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"promohub/pkg/models"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders a monetary amount the way the storefront shows
// prices ("R$ 12,90").
func FormatBRL(v decimal.Decimal) string {
	return printer.Sprint(currency.Symbol(currency.BRL.Amount(v.InexactFloat64())))
}

// Builder produces links for one store number (international format,
// digits only).
type Builder struct {
	Number string
}

// PromotionLink is the "I saw this promotion, is it still available?"
// deep link for one card.
func (b Builder) PromotionLink(p models.NormalizedPromotion) string {
	msg := fmt.Sprintf(
		"Oi, vi a promoção *%s* do produto *%s* por %s no site e quero saber se ainda tem disponível.",
		promoTitle(p), p.Name, FormatBRL(p.PromoPrice),
	)
	return b.link(msg)
}

// ProductLink is the plain product enquiry used outside the promo grid.
func (b Builder) ProductLink(p models.NormalizedPromotion) string {
	msg := fmt.Sprintf(
		"Olá, vi o produto \"%s\" no site. Código: %d. Tem disponível?",
		p.Name, p.Code,
	)
	return b.link(msg)
}

func (b Builder) link(msg string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", b.Number, url.QueryEscape(msg))
}

func promoTitle(p models.NormalizedPromotion) string {
	if p.PromoName != "" {
		return p.PromoName
	}
	return p.Name
}
