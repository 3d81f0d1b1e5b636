package providers

import (
	"context"
	"net/url"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// DefaultVPSURL is the 64clouds service info endpoint.
const DefaultVPSURL = "https://api.64clouds.com/v1/getServiceInfo"

// VPS fetches the monthly bandwidth usage of a KiwiVM instance in percent.
type VPS struct {
	client  *Client
	veid    string
	apiKey  string
	baseURL string
}

var _ driven.Fetcher[int] = (*VPS)(nil)

// NewVPS creates a VPS usage provider.
func NewVPS(client *Client, veid, apiKey, baseURL string) *VPS {
	if baseURL == "" {
		baseURL = DefaultVPSURL
	}
	return &VPS{client: client, veid: veid, apiKey: apiKey, baseURL: baseURL}
}

type vpsResponse struct {
	Error           int     `json:"error"`
	DataCounter     float64 `json:"data_counter"`
	PlanMonthlyData float64 `json:"plan_monthly_data"`
}

// Fetch returns data_counter / plan_monthly_data as a whole percentage.
func (v *VPS) Fetch(ctx context.Context) (int, error) {
	if v.apiKey == "" || v.veid == "" {
		return 0, domain.ErrProviderDisabled
	}

	var resp vpsResponse
	err := v.client.GetJSON(ctx, v.baseURL, url.Values{
		"veid":    {v.veid},
		"api_key": {v.apiKey},
	}, &resp)
	if err != nil {
		return 0, err
	}
	if resp.Error != 0 {
		return 0, badResponse(v.client.Name(), "error code %d", resp.Error)
	}
	if resp.PlanMonthlyData <= 0 {
		return 0, badResponse(v.client.Name(), "plan_monthly_data is %v", resp.PlanMonthlyData)
	}
	return int(resp.DataCounter / resp.PlanMonthlyData * 100), nil
}
