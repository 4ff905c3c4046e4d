package catalog

import (
	"fmt"

	"promohub/pkg/models"
)

// User-facing status messages. Load failure and "nothing matched your
// filters" are deliberately distinct states.
const (
	LoadErrorMessage   = "Erro ao carregar promoções. Tente novamente em instantes."
	EmptyFilterMessage = "Nenhuma promoção encontrada com esses filtros."
	NoPromosMessage    = "Ainda não temos promoções ativas. Volte amanhã!"
)

// Badge and deadline texts, in the storefront's locale.
const (
	BadgeLastUnits  = "Últimas unidades"
	BadgeToday      = "Acaba hoje"
	BadgeStocksLast = "Até acabar o estoque"
	BadgeActive     = "Promoção ativa"

	DeadlineEndsToday  = "Acaba hoje"
	DeadlineStocksLast = "Até acabar o estoque"
	DeadlineAskInStore = "Consulte na loja"
)

// Labels is the small human-facing label set derived per visible item at
// render time. It is recomputed on every render, never cached, so it
// always reflects the current urgency and stock state.
type Labels struct {
	Badge    string `json:"selo"`
	Deadline string `json:"prazo"`
	// ValidUntil is the "Válido até dd/mm/yyyy" line, empty for undated
	// promotions.
	ValidUntil string `json:"validade,omitempty"`
}

// Derive computes the labels for one promotion. Badge precedence, first
// match wins: low stock, one day left, up to three days left, stock-bound,
// generic.
func Derive(p models.NormalizedPromotion) Labels {
	l := Labels{
		Badge:    badge(p),
		Deadline: deadline(p),
	}
	if p.EndDate != nil {
		l.ValidUntil = fmt.Sprintf("Válido até %s", p.EndDate.Format("02/01/2006"))
	}
	return l
}

func badge(p models.NormalizedPromotion) string {
	days := urgencyKey(p)
	switch {
	case p.TotalStock <= 3:
		return BadgeLastUnits
	case days == 1:
		return BadgeToday
	case days > 1 && days <= 3:
		return fmt.Sprintf("Termina em %d dia(s)", days)
	case p.UntilStockOut:
		return BadgeStocksLast
	default:
		return BadgeActive
	}
}

func deadline(p models.NormalizedPromotion) string {
	switch {
	case p.UntilStockOut && p.EndDate == nil:
		return DeadlineStocksLast
	case !p.UntilStockOut && p.EndDate == nil:
		return DeadlineAskInStore
	case p.DaysRemaining == nil:
		// dated but stock-bound: the stock still decides the end
		return DeadlineStocksLast
	case *p.DaysRemaining <= 0:
		return DeadlineEndsToday
	case *p.DaysRemaining == 1:
		return "Resta 1 dia"
	default:
		return fmt.Sprintf("Restam %d dias", *p.DaysRemaining)
	}
}

// Summary is the "page X of Y" chrome text shown under the grid.
func Summary(page, totalPages, totalItems int) string {
	return fmt.Sprintf("Página %d de %d • %d promoções", page, totalPages, totalItems)
}
