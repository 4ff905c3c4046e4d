package source

import (
	"strings"

	"github.com/shopspring/decimal"

	"promohub/pkg/models"
)

// wireRecord accepts every key variant the legacy exports have used for
// the same concept. The product code and the promo price in particular
// appear under several names depending on which export wrote the file
// (site export vs. raw POS dump). collapse picks the first populated
// variant; all further coercion belongs to the Normalizer.
type wireRecord struct {
	Codigo        models.FlexScalar `json:"codigo"`
	CodigoProduto models.FlexScalar `json:"codigo_produto"`
	ProCodigo     models.FlexScalar `json:"pro_codigo"`
	ProCodigoPOS  models.FlexScalar `json:"PRO_CODIGO"`

	Nome              models.FlexScalar `json:"nome"`
	PromoNome         models.FlexScalar `json:"promo_nome"`
	Categoria         models.FlexScalar `json:"categoria"`
	Subcategoria      models.FlexScalar `json:"subcategoria"`
	DescricaoResumida models.FlexScalar `json:"descricao_resumida"`
	Imagem            models.FlexScalar `json:"imagem"`

	PrecoNormal models.FlexScalar `json:"preco_normal"`

	PrecoPromo   models.FlexScalar `json:"preco_promo"`
	PromValor    models.FlexScalar `json:"prom_valor"`
	PromValorPOS models.FlexScalar `json:"PROM_VALOR"`
	ValorPromo   models.FlexScalar `json:"valor_promo"`

	DescontoPercentual models.FlexScalar `json:"desconto_percentual"`

	EstoqueLoja1 models.FlexScalar `json:"estoque_loja1"`
	EstoqueLoja2 models.FlexScalar `json:"estoque_loja2"`

	DuracaoEstoque models.FlexScalar `json:"duracao_estoque"`
	DataFim        models.FlexScalar `json:"data_fim"`
	SomenteAVista  models.FlexScalar `json:"somente_a_vista"`
}

func (w wireRecord) collapse() models.RawPromotionRecord {
	return models.RawPromotionRecord{
		Code:             parseCode(firstSet(w.Codigo, w.CodigoProduto, w.ProCodigo, w.ProCodigoPOS)),
		Name:             firstSet(w.Nome).Text,
		PromoName:        w.PromoNome.Text,
		Category:         w.Categoria.Text,
		Subcategory:      w.Subcategoria.Text,
		ShortDescription: w.DescricaoResumida.Text,
		Image:            w.Imagem.Text,
		NormalPrice:      w.PrecoNormal,
		PromoPrice:       firstSet(w.PrecoPromo, w.PromValor, w.PromValorPOS, w.ValorPromo),
		DiscountPercent:  w.DescontoPercentual,
		StockStore1:      w.EstoqueLoja1,
		StockStore2:      w.EstoqueLoja2,
		UntilStockOut:    w.DuracaoEstoque,
		EndDate:          w.DataFim.Text,
		CashOnly:         w.SomenteAVista,
	}
}

func firstSet(candidates ...models.FlexScalar) models.FlexScalar {
	for _, c := range candidates {
		if c.IsSet {
			return c
		}
	}
	return models.FlexScalar{}
}

// parseCode reads a product code that may arrive as a number or a numeric
// string. Unparseable codes read as 0 (no code).
func parseCode(f models.FlexScalar) int {
	if !f.IsSet {
		return 0
	}
	s := strings.ReplaceAll(strings.TrimSpace(f.Text), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return int(d.IntPart())
}

func collapseAll(wire []wireRecord) []models.RawPromotionRecord {
	out := make([]models.RawPromotionRecord, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.collapse())
	}
	return out
}
