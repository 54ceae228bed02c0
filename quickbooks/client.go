// Package quickbooks calls the QuickBooks Online v3 API, passing
// response bodies through with minimal unwrapping.
package quickbooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/qbotools/quickbooksrelay/httperror"
)

// ProductionURL is the live QuickBooks API host
const ProductionURL string = "https://quickbooks.api.intuit.com/"

// SandboxURL is the QuickBooks developer sandbox host
const SandboxURL string = "https://sandbox-quickbooks.api.intuit.com/"

// customerQuery selects every customer of the authorized company
const customerQuery = "select * from Customer"

// Client calls the QuickBooks API for one environment. Every call
// attaches the caller's bearer token; the client itself is stateless.
type Client struct {
	baseURL    string
	httpclient *http.Client
}

// NewClient selects the API host from the environment selector
// ("production" or anything else for the sandbox). A non-empty baseURL
// overrides the host, which tests use to point at a stub server.
func NewClient(environment, baseURL string) *Client {
	if baseURL == "" {
		baseURL = SandboxURL
		if environment == "production" {
			baseURL = ProductionURL
		}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpclient: &http.Client{Timeout: time.Second * 10},
	}
}

// CompanyInfo returns the authorized company's name.
func (c *Client) CompanyInfo(ctx context.Context, accessToken, realmID string) (string, error) {
	var payload struct {
		CompanyInfo struct {
			CompanyName string `json:"CompanyName"`
		} `json:"CompanyInfo"`
	}
	u := fmt.Sprintf("%s/v3/company/%s/companyinfo/%s", c.baseURL, realmID, realmID)
	if err := c.get(ctx, accessToken, u, &payload); err != nil {
		return "", err
	}
	return payload.CompanyInfo.CompanyName, nil
}

// Customers runs the customer query and returns the result collection
// exactly as the API returned it, or an empty array when the company
// has no customers.
func (c *Client) Customers(ctx context.Context, accessToken, realmID string) (json.RawMessage, error) {
	var payload struct {
		QueryResponse struct {
			Customer json.RawMessage `json:"Customer"`
		} `json:"QueryResponse"`
	}
	u := fmt.Sprintf("%s/v3/company/%s/query?query=%s",
		c.baseURL, realmID, url.QueryEscape(customerQuery))
	if err := c.get(ctx, accessToken, u, &payload); err != nil {
		return nil, err
	}
	if payload.QueryResponse.Customer == nil {
		return json.RawMessage("[]"), nil
	}
	return payload.QueryResponse.Customer, nil
}

// CreateInvoice posts an invoice and passes the upstream response
// through untouched.
func (c *Client) CreateInvoice(ctx context.Context, accessToken, realmID string, inv Invoice) (json.RawMessage, error) {
	body, err := json.Marshal(inv)
	if err != nil {
		return nil, fmt.Errorf("invoice encode: %w", err)
	}
	u := fmt.Sprintf("%s/v3/company/%s/invoice", c.baseURL, realmID)
	return c.do(ctx, http.MethodPost, accessToken, u, bytes.NewReader(body))
}

// Transactions returns the TransactionList report object untouched.
func (c *Client) Transactions(ctx context.Context, accessToken, realmID string) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/v3/company/%s/reports/TransactionList", c.baseURL, realmID)
	return c.do(ctx, http.MethodGet, accessToken, u, nil)
}

// do performs one bearer-authenticated call and returns the raw body
// on a 200. Any other status becomes a ClientError carrying the
// upstream code.
func (c *Client) do(ctx context.Context, method, accessToken, callURL string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, callURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quickbooks callout: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("quickbooks body read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &httperror.ClientError{Code: resp.StatusCode, Message: string(b)}
	}
	return json.RawMessage(b), nil
}

func (c *Client) get(ctx context.Context, accessToken, callURL string, out any) error {
	b, err := c.do(ctx, http.MethodGet, accessToken, callURL, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("quickbooks decode: %w", err)
	}
	return nil
}
