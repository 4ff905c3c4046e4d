package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"promohub/pkg/models"
)

// HTTPSource fetches the promotions JSON over HTTP. A cache-busting query
// parameter defeats CDN and browser caches, matching how the storefront
// fetches the same file.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(rawURL string) *HTTPSource {
	return &HTTPSource{
		URL:    rawURL,
		Client: &http.Client{Timeout: 12 * time.Second},
	}
}

func (s *HTTPSource) Name() string { return "http" }

func (s *HTTPSource) FetchAll(ctx context.Context) ([]models.RawPromotionRecord, error) {
	u, err := url.Parse(s.URL)
	if err != nil {
		return nil, fmt.Errorf("source: parse url: %w", err)
	}
	q := u.Query()
	q.Set("v", fmt.Sprintf("%d", time.Now().UnixMilli()))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("source: build request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("source: status %d: %s", resp.StatusCode, string(body))
	}

	return decodeRecords(resp.Body)
}

// decodeRecords decodes the export payload. A payload that is not a JSON
// array is a load error, not something to silently tolerate.
func decodeRecords(r io.Reader) ([]models.RawPromotionRecord, error) {
	var wire []wireRecord
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("source: decode: %w", err)
	}
	return collapseAll(wire), nil
}
