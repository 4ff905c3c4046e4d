package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promohub/pkg/models"
)

func TestFormatBRL(t *testing.T) {
	got := FormatBRL(decimal.RequireFromString("12.90"))
	assert.Contains(t, got, "R$")
	assert.Contains(t, got, "12,90", "pt-BR uses the comma decimal separator")
}

func TestPromotionLink(t *testing.T) {
	b := Builder{Number: "556599990000"}
	p := models.NormalizedPromotion{
		Code:       42,
		Name:       "Shampoo Hidratante",
		PromoName:  "Semana do Cabelo",
		PromoPrice: decimal.RequireFromString("39.90"),
	}

	link := b.PromotionLink(p)
	require.True(t, strings.HasPrefix(link, "https://wa.me/556599990000?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	msg := u.Query().Get("text")
	assert.Contains(t, msg, "*Semana do Cabelo*")
	assert.Contains(t, msg, "*Shampoo Hidratante*")
	assert.Contains(t, msg, "39,90")
}

func TestPromotionLinkFallsBackToProductName(t *testing.T) {
	b := Builder{Number: "556599990000"}
	p := models.NormalizedPromotion{Code: 7, Name: "Creme", PromoPrice: decimal.NewFromInt(10)}

	u, err := url.Parse(b.PromotionLink(p))
	require.NoError(t, err)
	assert.Contains(t, u.Query().Get("text"), "promoção *Creme*")
}

func TestProductLink(t *testing.T) {
	b := Builder{Number: "556599990000"}
	p := models.NormalizedPromotion{Code: 7, Name: "Creme"}

	u, err := url.Parse(b.ProductLink(p))
	require.NoError(t, err)
	msg := u.Query().Get("text")
	assert.Contains(t, msg, `"Creme"`)
	assert.Contains(t, msg, "Código: 7")
}
