package providers

import (
	"context"
	"net/url"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// DefaultMarketURL is the CoinGecko simple price endpoint.
const DefaultMarketURL = "https://api.coingecko.com/api/v3/simple/price"

// Market fetches the BTC spot price.
type Market struct {
	client  *Client
	enabled bool
	baseURL string
}

var _ driven.Fetcher[domain.MarketPrice] = (*Market)(nil)

// NewMarket creates a market provider.
func NewMarket(client *Client, enabled bool, baseURL string) *Market {
	if baseURL == "" {
		baseURL = DefaultMarketURL
	}
	return &Market{client: client, enabled: enabled, baseURL: baseURL}
}

// Fetch returns the USD price and its 24h change.
func (m *Market) Fetch(ctx context.Context) (domain.MarketPrice, error) {
	if !m.enabled {
		return domain.MarketPrice{}, domain.ErrProviderDisabled
	}

	var resp map[string]domain.MarketPrice
	err := m.client.GetJSON(ctx, m.baseURL, url.Values{
		"ids":                 {"bitcoin"},
		"vs_currencies":       {"usd"},
		"include_24hr_change": {"true"},
	}, &resp)
	if err != nil {
		return domain.MarketPrice{}, err
	}

	price, ok := resp["bitcoin"]
	if !ok {
		return domain.MarketPrice{}, badResponse(m.client.Name(), "bitcoin missing from response")
	}
	return price, nil
}
