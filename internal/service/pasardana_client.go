package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"sahamwatch/internal/domain"
)

const summaryPath = "/api/StockSearchResult/GetAll?pageBegin=0&pageLength=1000&sortField=Code&sortOrder=ASC"

// PasardanaClient fetches the IDX stock summary from Pasardana
type PasardanaClient struct {
	httpClient *http.Client
	baseURL    string
	log        zerolog.Logger
}

// NewPasardanaClient creates a new PasardanaClient
func NewPasardanaClient(baseURL string, timeout time.Duration, log zerolog.Logger) *PasardanaClient {
	return &PasardanaClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		log:     log.With().Str("component", "pasardana").Logger(),
	}
}

// pasardanaStock is the subset of the upstream summary record this app uses
type pasardanaStock struct {
	Code             string  `json:"Code"`
	Name             string  `json:"Name"`
	SectorName       string  `json:"SectorName"`
	Last             float64 `json:"Last"`
	PrevClosingPrice float64 `json:"PrevClosingPrice"`
}

// Fetch retrieves the full stock summary and normalizes it into a QuoteBatch.
// Any network, HTTP status, or payload failure is reported as ErrUpstream;
// there is no retry here, retry policy belongs to the caller.
func (c *PasardanaClient) Fetch(ctx context.Context) (*domain.QuoteBatch, error) {
	url := c.baseURL + summaryPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Referer", "https://pasardana.id/")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status=%d body=%s", domain.ErrUpstream, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrUpstream, err)
	}

	var stocks []pasardanaStock
	if err := json.Unmarshal(body, &stocks); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal response: %v", domain.ErrUpstream, err)
	}

	quotes := make([]domain.QuoteRecord, 0, len(stocks))
	for _, s := range stocks {
		if s.Code == "" {
			continue
		}
		quotes = append(quotes, domain.QuoteRecord{
			Code:          s.Code,
			Name:          s.Name,
			Sector:        s.SectorName,
			LastPrice:     s.Last,
			PreviousClose: s.PrevClosingPrice,
		})
	}

	c.log.Debug().
		Int("tickers", len(quotes)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched stock summary")

	return &domain.QuoteBatch{
		FetchedAt: time.Now(),
		Quotes:    quotes,
	}, nil
}
