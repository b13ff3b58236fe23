// Package chain talks to the public explorer for confirmation detail lookups.
package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"goldium/internal/models"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"
)

const (
	DefaultExplorerAPIURL = "https://public-api.solscan.io"
	DefaultExplorerWebURL = "https://solscan.io"
)

type Client struct {
	http        *httpclient.Client
	apiBase     string
	explorerWeb string
}

func NewClient(apiBase, explorerWeb string) *Client {
	if apiBase == "" {
		apiBase = DefaultExplorerAPIURL
	}
	if explorerWeb == "" {
		explorerWeb = DefaultExplorerWebURL
	}

	backoff := heimdall.NewConstantBackoff(500*time.Millisecond, 100*time.Millisecond)
	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(10*time.Second),
		httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
		httpclient.WithRetryCount(2),
	)

	return &Client{http: client, apiBase: apiBase, explorerWeb: explorerWeb}
}

// ExplorerURL resolves a signature to the human-viewable explorer page.
func (c *Client) ExplorerURL(signature string) string {
	return fmt.Sprintf("%s/tx/%s", c.explorerWeb, signature)
}

type transactionDetail struct {
	Status string   `json:"status"`
	Slot   *int64   `json:"slot"`
	Fee    *float64 `json:"fee"`
}

// TransactionStatus queries the explorer for a signature. A 404 means the
// transaction is not visible yet and maps to pending; transport and server
// errors are returned to the caller for retry.
func (c *Client) TransactionStatus(ctx context.Context, signature string) (*models.ChainStatus, error) {
	url := fmt.Sprintf("%s/transaction/%s", c.apiBase, signature)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return &models.ChainStatus{Status: models.TxStatusPending}, nil
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("explorer returned %d for %s", res.StatusCode, signature)
	}

	var detail transactionDetail
	if err := json.NewDecoder(res.Body).Decode(&detail); err != nil {
		return nil, err
	}

	status := models.TransactionStatus(detail.Status)
	switch status {
	case models.TxStatusConfirmed, models.TxStatusFailed, models.TxStatusPending:
	case "success", "finalized":
		status = models.TxStatusConfirmed
	case "fail":
		status = models.TxStatusFailed
	default:
		status = models.TxStatusPending
	}

	return &models.ChainStatus{Status: status, Slot: detail.Slot, Fee: detail.Fee}, nil
}
