package smmpanel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/boostlab/smm-order-service/internal/config"
	"github.com/boostlab/smm-order-service/internal/domain"
)

// Client speaks the de facto SMM panel API: a single endpoint taking
// form-encoded key/action requests and answering JSON.
type Client struct {
	apiURL string
	apiKey string
	client *http.Client
}

func NewClient(cfg config.SMMPanel) *Client {
	return &Client{
		apiURL: cfg.APIUrl,
		apiKey: cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type addOrderResponse struct {
	Order json.Number `json:"order"`
	Error string      `json:"error"`
}

func (c *Client) SubmitOrder(ctx context.Context, providerSvcID, link string, quantity int) (*domain.ProviderOrder, error) {
	form := url.Values{
		"action":   {"add"},
		"service":  {providerSvcID},
		"link":     {link},
		"quantity": {strconv.Itoa(quantity)},
	}

	body, err := c.call(ctx, form)
	if err != nil {
		return nil, err
	}

	var resp addOrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse panel add response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderRejected, resp.Error)
	}
	if resp.Order.String() == "" {
		return nil, fmt.Errorf("%w: panel returned no order id", domain.ErrProviderRejected)
	}

	return &domain.ProviderOrder{ExternalOrderID: resp.Order.String()}, nil
}

type orderStatusResponse struct {
	Status     string      `json:"status"`
	StartCount json.Number `json:"start_count"`
	Remains    json.Number `json:"remains"`
	Charge     json.Number `json:"charge"`
	Error      string      `json:"error"`
}

func (c *Client) GetOrderStatus(ctx context.Context, externalOrderID string) (*domain.ProviderOrderStatus, error) {
	form := url.Values{
		"action": {"status"},
		"order":  {externalOrderID},
	}

	body, err := c.call(ctx, form)
	if err != nil {
		return nil, err
	}

	var resp orderStatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse panel status response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("panel status error for order %s: %s", externalOrderID, resp.Error)
	}

	return toOrderStatus(externalOrderID, &resp), nil
}

func (c *Client) GetOrdersStatus(ctx context.Context, externalOrderIDs []string) (map[string]*domain.ProviderOrderStatus, error) {
	if len(externalOrderIDs) == 0 {
		return map[string]*domain.ProviderOrderStatus{}, nil
	}

	form := url.Values{
		"action": {"status"},
		"orders": {strings.Join(externalOrderIDs, ",")},
	}

	body, err := c.call(ctx, form)
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse panel multi-status response: %w", err)
	}

	statuses := make(map[string]*domain.ProviderOrderStatus, len(raw))
	for id, entry := range raw {
		var resp orderStatusResponse
		if err := json.Unmarshal(entry, &resp); err != nil {
			continue
		}
		if resp.Error != "" {
			continue
		}
		statuses[id] = toOrderStatus(id, &resp)
	}
	return statuses, nil
}

type serviceEntry struct {
	Service  json.Number `json:"service"`
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Category string      `json:"category"`
	Rate     json.Number `json:"rate"`
	Min      json.Number `json:"min"`
	Max      json.Number `json:"max"`
}

func (c *Client) FetchServices(ctx context.Context) ([]*domain.ProviderService, error) {
	body, err := c.call(ctx, url.Values{"action": {"services"}})
	if err != nil {
		return nil, err
	}

	var entries []serviceEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse panel services response: %w", err)
	}

	services := make([]*domain.ProviderService, 0, len(entries))
	for _, entry := range entries {
		services = append(services, &domain.ProviderService{
			ServiceID: entry.Service.String(),
			Name:      entry.Name,
			Type:      entry.Type,
			Category:  entry.Category,
			Rate:      toFloat(entry.Rate),
			Min:       toInt(entry.Min),
			Max:       toInt(entry.Max),
		})
	}
	return services, nil
}

type balanceResponse struct {
	Balance  json.Number `json:"balance"`
	Currency string      `json:"currency"`
	Error    string      `json:"error"`
}

func (c *Client) GetBalance(ctx context.Context) (float64, error) {
	body, err := c.call(ctx, url.Values{"action": {"balance"}})
	if err != nil {
		return 0, err
	}

	var resp balanceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("failed to parse panel balance response: %w", err)
	}
	if resp.Error != "" {
		return 0, fmt.Errorf("panel balance error: %s", resp.Error)
	}
	return toFloat(resp.Balance), nil
}

func (c *Client) call(ctx context.Context, form url.Values) ([]byte, error) {
	form.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create panel request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("panel request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read panel response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("panel API returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func toOrderStatus(id string, resp *orderStatusResponse) *domain.ProviderOrderStatus {
	return &domain.ProviderOrderStatus{
		ExternalOrderID: id,
		Status:          resp.Status,
		StartCount:      toInt(resp.StartCount),
		Remains:         toInt(resp.Remains),
		Charge:          toFloat(resp.Charge),
	}
}

func toInt(n json.Number) int {
	v, _ := strconv.Atoi(n.String())
	return v
}

func toFloat(n json.Number) float64 {
	v, _ := n.Float64()
	return v
}
