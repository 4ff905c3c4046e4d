package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawPromotionRecord is the canonical shape of one entry of the
// promotions export (promocoes_site.json) after the ingestion boundary
// has collapsed the legacy key variants (see internal/source).
//
// Scalar fields stay as FlexScalar because the export is untrusted:
// a price may arrive as 12.9, "12,90" or ""; all coercion happens in
// the Normalizer.
type RawPromotionRecord struct {
	Code             int        `json:"codigo"`
	Name             string     `json:"nome"`
	PromoName        string     `json:"promo_nome,omitempty"`
	Category         string     `json:"categoria,omitempty"`
	Subcategory      string     `json:"subcategoria,omitempty"`
	ShortDescription string     `json:"descricao_resumida,omitempty"`
	Image            string     `json:"imagem,omitempty"`
	NormalPrice      FlexScalar `json:"preco_normal"`
	PromoPrice       FlexScalar `json:"preco_promo"`
	DiscountPercent  FlexScalar `json:"desconto_percentual,omitempty"`
	StockStore1      FlexScalar `json:"estoque_loja1"`
	StockStore2      FlexScalar `json:"estoque_loja2"`
	UntilStockOut    FlexScalar `json:"duracao_estoque,omitempty"`
	EndDate          string     `json:"data_fim,omitempty"`
	CashOnly         FlexScalar `json:"somente_a_vista,omitempty"`
}

// NormalizedPromotion is the derived, display-ready form of one raw
// record. It is computed once per catalog load and never mutated
// afterwards; a new load fully replaces the in-memory set.
type NormalizedPromotion struct {
	Code             int    `json:"codigo"`
	Name             string `json:"nome"`
	PromoName        string `json:"promo_nome,omitempty"`
	Category         string `json:"categoria,omitempty"`
	Subcategory      string `json:"subcategoria,omitempty"`
	ShortDescription string `json:"descricao_resumida,omitempty"`
	Image            string `json:"imagem"`

	NormalPrice     decimal.Decimal `json:"preco_normal"`
	PromoPrice      decimal.Decimal `json:"preco_promo"`
	DiscountAmount  decimal.Decimal `json:"desconto_valor"`
	DiscountPercent decimal.Decimal `json:"desconto_percentual"`

	StockStore1 int `json:"estoque_loja1"`
	StockStore2 int `json:"estoque_loja2"`
	TotalStock  int `json:"estoque_total"`

	UntilStockOut bool `json:"duracao_estoque"`
	CashOnly      bool `json:"somente_a_vista,omitempty"`

	// EndDate is anchored at midday so "is it today" comparisons do not
	// drift across timezones. Nil when the export carried no usable date.
	EndDate *time.Time `json:"data_fim,omitempty"`

	// DaysRemaining is set only for dated promotions that are not
	// stock-bound and have not expired. 0 means "ends today".
	DaysRemaining *int `json:"dias_restantes,omitempty"`

	Active bool `json:"ativo"`
}

// HasDeadline reports whether this promotion carries a calendar countdown:
// dated, not stock-bound. Only these entries are tracked by the ticker.
func (p NormalizedPromotion) HasDeadline() bool {
	return p.EndDate != nil && !p.UntilStockOut
}
