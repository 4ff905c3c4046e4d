package promo

import (
	"promohub/internal/catalog"
	"promohub/internal/whatsapp"
	"promohub/pkg/models"
)

// AllCategoriesLabel is the sentinel option shown before the real
// categories; its empty value means "no category filter".
const AllCategoriesLabel = "Todas as categorias"

// CategoryOption is one entry of the category select.
type CategoryOption struct {
	Value string `json:"valor"`
	Label string `json:"rotulo"`
}

// RenderedItem is one visible card: the normalized promotion plus its
// derived labels and outbound link. Labels are computed here, per render,
// never cached.
type RenderedItem struct {
	models.NormalizedPromotion
	Labels      catalog.Labels `json:"rotulos"`
	WhatsAppURL string         `json:"whatsapp_url"`
}

// PageResponse is the JSON shape shared by the HTTP list endpoint and the
// live WebSocket page frames.
type PageResponse struct {
	Items      []RenderedItem   `json:"items"`
	Page       int              `json:"pagina"`
	TotalPages int              `json:"total_paginas"`
	Total      int              `json:"total"`
	Categories []CategoryOption `json:"categorias"`
	Summary    string           `json:"resumo"`
	Message    string           `json:"mensagem,omitempty"`
}

// Renderer decorates a projected page view with per-item labels and
// outbound links.
type Renderer struct {
	Links whatsapp.Builder
}

func (r Renderer) Page(view catalog.PageView) PageResponse {
	items := make([]RenderedItem, 0, len(view.Items))
	for _, p := range view.Items {
		items = append(items, r.Item(p))
	}

	return PageResponse{
		Items:      items,
		Page:       view.Page,
		TotalPages: view.TotalPages,
		Total:      view.TotalItems,
		Categories: categoryOptions(view.Categories),
		Summary:    view.Summary,
		Message:    view.Message,
	}
}

func (r Renderer) Item(p models.NormalizedPromotion) RenderedItem {
	return RenderedItem{
		NormalizedPromotion: p,
		Labels:              catalog.Derive(p),
		WhatsAppURL:         r.Links.PromotionLink(p),
	}
}

func categoryOptions(categories []string) []CategoryOption {
	out := make([]CategoryOption, 0, len(categories)+1)
	out = append(out, CategoryOption{Value: "", Label: AllCategoriesLabel})
	for _, c := range categories {
		out = append(out, CategoryOption{Value: c, Label: c})
	}
	return out
}
