package promo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promohub/internal/catalog"
	"promohub/internal/whatsapp"
	"promohub/pkg/models"
)

type stubFetcher struct {
	records []models.RawPromotionRecord
	err     error
}

func (s *stubFetcher) Name() string { return "stub" }

func (s *stubFetcher) FetchAll(ctx context.Context) ([]models.RawPromotionRecord, error) {
	return s.records, s.err
}

func fixtureRecords(count int) []models.RawPromotionRecord {
	raw := make([]models.RawPromotionRecord, 0, count)
	for i := 1; i <= count; i++ {
		category := "Cabelos"
		if i%2 == 0 {
			category = "Maquiagem"
		}
		raw = append(raw, models.RawPromotionRecord{
			Code:        i,
			Name:        "Produto",
			Category:    category,
			NormalPrice: models.Scalar("100"),
			PromoPrice:  models.Scalar("80"),
			StockStore1: models.Scalar("10"),
		})
	}
	return raw
}

func testRouter(t *testing.T, fetcher *stubFetcher, loaded bool) (*gin.Engine, *catalog.Store, *catalog.Loader) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := catalog.NewStore()
	loader := catalog.NewLoader(fetcher, store)
	if loaded {
		_, err := loader.Load(context.Background())
		require.NoError(t, err)
	}

	renderer := Renderer{Links: whatsapp.Builder{Number: "556599990000"}}
	h := NewHandler(store, loader, renderer, 4)

	r := gin.New()
	h.RegisterRoutes(r.Group("/promocoes"))
	return r, store, loader
}

func doRequest(t *testing.T, r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) PageResponse {
	t.Helper()
	var page PageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	return page
}

func TestListBeforeFirstLoad(t *testing.T) {
	r, _, _ := testRouter(t, &stubFetcher{}, false)

	w := doRequest(t, r, http.MethodGet, "/promocoes")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), catalog.LoadErrorMessage)
}

func TestListPaging(t *testing.T) {
	r, _, _ := testRouter(t, &stubFetcher{records: fixtureRecords(10)}, true)

	w := doRequest(t, r, http.MethodGet, "/promocoes")
	require.Equal(t, http.StatusOK, w.Code)

	page := decodePage(t, w)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 10, page.Total)
	assert.Len(t, page.Items, 4)
	assert.Equal(t, "Página 1 de 3 • 10 promoções", page.Summary)
	assert.Empty(t, page.Message)

	// the category select leads with the all-categories sentinel
	require.NotEmpty(t, page.Categories)
	assert.Equal(t, CategoryOption{Value: "", Label: AllCategoriesLabel}, page.Categories[0])

	// every card carries its derived labels and an outbound link
	assert.NotEmpty(t, page.Items[0].Labels.Badge)
	assert.Contains(t, page.Items[0].WhatsAppURL, "wa.me/556599990000")

	t.Run("out-of-range page clamps", func(t *testing.T) {
		page := decodePage(t, doRequest(t, r, http.MethodGet, "/promocoes?pagina=99"))
		assert.Equal(t, 3, page.Page)
		assert.Len(t, page.Items, 2)
	})

	t.Run("garbage page falls back to 1", func(t *testing.T) {
		page := decodePage(t, doRequest(t, r, http.MethodGet, "/promocoes?pagina=abc"))
		assert.Equal(t, 1, page.Page)
	})
}

func TestListFilters(t *testing.T) {
	r, _, _ := testRouter(t, &stubFetcher{records: fixtureRecords(10)}, true)

	t.Run("category narrows the projection", func(t *testing.T) {
		page := decodePage(t, doRequest(t, r, http.MethodGet, "/promocoes?categoria=Maquiagem"))
		assert.Equal(t, 5, page.Total)
		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("nothing matched", func(t *testing.T) {
		page := decodePage(t, doRequest(t, r, http.MethodGet, "/promocoes?q=inexistente"))
		assert.Empty(t, page.Items)
		assert.Equal(t, catalog.EmptyFilterMessage, page.Message)
		assert.Equal(t, 1, page.TotalPages)
	})
}

func TestListEmptyCatalog(t *testing.T) {
	r, _, _ := testRouter(t, &stubFetcher{}, true)

	page := decodePage(t, doRequest(t, r, http.MethodGet, "/promocoes"))
	assert.Empty(t, page.Items)
	assert.Equal(t, catalog.NoPromosMessage, page.Message)
}

func TestGetByCode(t *testing.T) {
	r, _, _ := testRouter(t, &stubFetcher{records: fixtureRecords(4)}, true)

	t.Run("found", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/promocoes/2")
		require.Equal(t, http.StatusOK, w.Code)

		var item RenderedItem
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
		assert.Equal(t, 2, item.Code)
		assert.NotEmpty(t, item.Labels.Badge)
	})

	t.Run("not found", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/promocoes/999")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric code", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/promocoes/abc")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPromoPrices(t *testing.T) {
	records := []models.RawPromotionRecord{
		{Code: 100, PromoPrice: models.Scalar("19,90")},
		{Code: 100, PromoPrice: models.Scalar("17,50")},
		{Code: 200, PromoPrice: models.Scalar("30")},
	}
	r, _, _ := testRouter(t, &stubFetcher{records: records}, true)

	w := doRequest(t, r, http.MethodGet, "/promocoes/precos")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Total  int                        `json:"total"`
		Precos map[string]decimal.Decimal `json:"precos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	assert.True(t, body.Precos["100"].Equal(decimal.RequireFromString("17.5")), "got %s", body.Precos["100"])
}

func TestRefresh(t *testing.T) {
	fetcher := &stubFetcher{records: fixtureRecords(3)}
	r, store, _ := testRouter(t, fetcher, true)

	t.Run("reload replaces the snapshot", func(t *testing.T) {
		before, _ := store.Current()

		fetcher.records = fixtureRecords(6)
		w := doRequest(t, r, http.MethodPost, "/promocoes/refresh")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"registros":6`)

		after, ok := store.Current()
		require.True(t, ok)
		assert.NotEqual(t, before.LoadID, after.LoadID)
	})

	t.Run("failed reload keeps the snapshot", func(t *testing.T) {
		before, _ := store.Current()

		fetcher.err = errors.New("boom")
		w := doRequest(t, r, http.MethodPost, "/promocoes/refresh")
		assert.Equal(t, http.StatusBadGateway, w.Code)

		after, ok := store.Current()
		require.True(t, ok)
		assert.Equal(t, before.LoadID, after.LoadID)
		fetcher.err = nil
	})
}

func TestRendererValidUntil(t *testing.T) {
	end := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)
	renderer := Renderer{Links: whatsapp.Builder{Number: "556599990000"}}

	item := renderer.Item(models.NormalizedPromotion{
		Code:    7,
		Name:    "Creme",
		EndDate: &end,
	})
	assert.Equal(t, "Válido até 01/09/2026", item.Labels.ValidUntil)
	assert.Contains(t, item.WhatsAppURL, "Creme")
}
