package budpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/boostlab/smm-order-service/internal/config"
	"github.com/boostlab/smm-order-service/internal/domain"
)

// Client talks to the BudPay REST API. Every payment collected in NGN
// goes through a dedicated virtual account created per order.
type Client struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewClient(cfg config.Budpay) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type bankTransferRequest struct {
	Email     string `json:"email"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
	Name      string `json:"name"`
}

type bankTransferResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AccountNumber string `json:"account_number"`
		AccountName   string `json:"account_name"`
		BankName      string `json:"bank_name"`
		BankCode      string `json:"bank_code"`
		Reference     string `json:"reference"`
	} `json:"data"`
}

func (c *Client) CreateVirtualAccount(ctx context.Context, amount float64, currency, reference string) (*domain.VirtualAccount, error) {
	payload := bankTransferRequest{
		Email:     fmt.Sprintf("%s@orders.boostlab.io", reference),
		Amount:    fmt.Sprintf("%.2f", amount),
		Currency:  currency,
		Reference: reference,
		Name:      accountHolderName(),
	}

	var resp bankTransferResponse
	if err := c.post(ctx, "/banktransfer/initialize", payload, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("budpay rejected virtual account request: %s", resp.Message)
	}

	return &domain.VirtualAccount{
		AccountNumber: resp.Data.AccountNumber,
		AccountName:   resp.Data.AccountName,
		BankName:      resp.Data.BankName,
		BankCode:      resp.Data.BankCode,
		Reference:     resp.Data.Reference,
		ExpiresAt:     time.Now().Add(30 * time.Minute),
	}, nil
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Reference string `json:"reference"`
		Amount    string `json:"amount"`
		Currency  string `json:"currency"`
		Status    string `json:"status"`
		PaidAt    string `json:"paid_at"`
	} `json:"data"`
}

func (c *Client) VerifyPayment(ctx context.Context, reference string) (*domain.GatewayTransaction, error) {
	var resp verifyResponse
	path := fmt.Sprintf("/transaction/verify/%s", reference)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("budpay verify failed for %s: %s", reference, resp.Message)
	}

	amount, err := parseAmount(resp.Data.Amount)
	if err != nil {
		return nil, fmt.Errorf("budpay verify %s: %w", reference, err)
	}

	return &domain.GatewayTransaction{
		Reference: resp.Data.Reference,
		Amount:    amount,
		Currency:  resp.Data.Currency,
		Status:    resp.Data.Status,
		PaidAt:    parsePaidAt(resp.Data.PaidAt),
	}, nil
}

type accountTransactionsResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    []struct {
		Reference string `json:"reference"`
		Amount    string `json:"amount"`
		Currency  string `json:"currency"`
		Status    string `json:"status"`
		PaidAt    string `json:"created_at"`
	} `json:"data"`
}

func (c *Client) ListAccountTransactions(ctx context.Context, accountRef string) ([]*domain.GatewayTransaction, error) {
	var resp accountTransactionsResponse
	path := fmt.Sprintf("/payment/account/transactions?reference=%s", accountRef)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("budpay account transactions failed for %s: %s", accountRef, resp.Message)
	}

	txns := make([]*domain.GatewayTransaction, 0, len(resp.Data))
	for _, item := range resp.Data {
		amount, err := parseAmount(item.Amount)
		if err != nil {
			continue
		}
		txns = append(txns, &domain.GatewayTransaction{
			Reference: item.Reference,
			Amount:    amount,
			Currency:  item.Currency,
			Status:    item.Status,
			PaidAt:    parsePaidAt(item.PaidAt),
		})
	}
	return txns, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal budpay request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create budpay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create budpay request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("budpay request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read budpay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("budpay API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse budpay response: %w", err)
	}
	return nil
}
