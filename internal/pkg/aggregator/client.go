// Package aggregator proxies quote and swap-transaction requests to the DEX
// aggregator HTTP API. Routing itself is entirely the aggregator's business;
// payloads pass through untouched.
package aggregator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"
)

const DefaultAPIURL = "https://quote-api.jup.ag/v6"

type Client struct {
	http    *httpclient.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	backoff := heimdall.NewExponentialBackoff(250*time.Millisecond, 2*time.Second, 2, 50*time.Millisecond)
	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(15*time.Second),
		httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
		httpclient.WithRetryCount(2),
	)

	return &Client{http: client, baseURL: baseURL}
}

// Quote asks the aggregator for the best route. The response is kept opaque so
// it can be handed back verbatim to SwapTransaction.
func (c *Client) Quote(ctx context.Context, inputMint, outputMint string, amount int64, slippageBps int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("inputMint", inputMint)
	params.Set("outputMint", outputMint)
	params.Set("amount", strconv.FormatInt(amount, 10))
	params.Set("slippageBps", strconv.Itoa(slippageBps))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/quote?%s", c.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aggregator quote returned %d", res.StatusCode)
	}

	var quote json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&quote); err != nil {
		return nil, err
	}
	return quote, nil
}

type swapRequest struct {
	QuoteResponse    json.RawMessage `json:"quoteResponse"`
	UserPublicKey    string          `json:"userPublicKey"`
	WrapAndUnwrapSol bool            `json:"wrapAndUnwrapSol"`
}

type SwapTransaction struct {
	SwapTransaction      string `json:"swapTransaction"`
	LastValidBlockHeight int64  `json:"lastValidBlockHeight"`
}

// SwapTransaction exchanges a quote for a signable transaction blob.
func (c *Client) SwapTransaction(ctx context.Context, quote json.RawMessage, userAddress string) (*SwapTransaction, error) {
	body, err := json.Marshal(swapRequest{
		QuoteResponse:    quote,
		UserPublicKey:    userAddress,
		WrapAndUnwrapSol: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/swap", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aggregator swap returned %d", res.StatusCode)
	}

	var out SwapTransaction
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
