package promo

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"promohub/internal/catalog"
)

type Handler struct {
	Store    *catalog.Store
	Loader   *catalog.Loader
	Renderer Renderer
	PageSize int
}

func NewHandler(store *catalog.Store, loader *catalog.Loader, renderer Renderer, pageSize int) *Handler {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &Handler{Store: store, Loader: loader, Renderer: renderer, PageSize: pageSize}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)               // GET /promocoes
	rg.GET("/precos", h.promoPrices) // GET /promocoes/precos
	rg.GET("/:codigo", h.getByCode)  // GET /promocoes/:codigo
	rg.POST("/refresh", h.refresh)   // POST /promocoes/refresh
}

// list is the stateless query surface over the same projection pipeline
// the live session uses: q + categoria + ordenar + pagina in, one page of
// rendered cards out.
func (h *Handler) list(c *gin.Context) {
	snap, ok := h.Store.Current()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": catalog.LoadErrorMessage})
		return
	}

	term := c.Query("q")
	category := c.Query("categoria")
	mode := catalog.ParseSortMode(c.Query("ordenar"))
	page := parseInt(c.Query("pagina"), 1)

	filtered := catalog.Project(snap.Active, term, category, mode)

	totalPages := catalog.TotalPages(len(filtered), h.PageSize)
	page = catalog.ClampPage(page, totalPages)

	view := catalog.PageView{
		Items:      catalog.PageSlice(filtered, page, h.PageSize),
		Page:       page,
		TotalPages: totalPages,
		TotalItems: len(filtered),
		Categories: snap.Categories,
		Summary:    catalog.Summary(page, totalPages, len(filtered)),
	}
	if len(filtered) == 0 {
		if len(snap.Active) == 0 {
			view.Message = catalog.NoPromosMessage
		} else {
			view.Message = catalog.EmptyFilterMessage
		}
	}

	c.JSON(http.StatusOK, h.Renderer.Page(view))
}

func (h *Handler) getByCode(c *gin.Context) {
	snap, ok := h.Store.Current()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": catalog.LoadErrorMessage})
		return
	}

	code, err := strconv.Atoi(c.Param("codigo"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid code"})
		return
	}

	p, found := snap.Find(code)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, h.Renderer.Item(p))
}

// promoPrices exposes the code → minimum promo price map the quote
// builder overlays on the plain product list.
func (h *Handler) promoPrices(c *gin.Context) {
	snap, ok := h.Store.Current()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": catalog.LoadErrorMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":  len(snap.PromoPrices),
		"precos": snap.PromoPrices,
	})
}

// refresh runs one full reload. There is no automatic retry anywhere
// else: a failed load keeps the previous snapshot and the user decides
// when to try again.
func (h *Handler) refresh(c *gin.Context) {
	snap, err := h.Loader.Load(c.Request.Context())
	if err != nil {
		if errors.Is(err, catalog.ErrStaleLoad) {
			c.JSON(http.StatusConflict, gin.H{"error": "a newer load finished first"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": catalog.LoadErrorMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"registros":  snap.RawCount,
		"ativas":     len(snap.Active),
		"categorias": len(snap.Categories),
	})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
