// Package zerox queries the 0x swap API for same-chain quotes.
package zerox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ArbiterXofficial/arbiterx-quotes/models"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "zerox").Logger()
}

const aggregatorName = "0x"

var feeRate = decimal.RequireFromString("0.001")

// Client queries the 0x swap API (v1).
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a 0x client. The API key may be empty.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid 0x base url: %w", err)
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}, nil
}

// Name returns the aggregator label used in quotes.
func (c *Client) Name() string { return aggregatorName }

type quoteResponse struct {
	BuyAmount    string      `json:"buyAmount"`
	EstimatedGas json.Number `json:"estimatedGas"`
	Sources      []struct {
		Name       string `json:"name"`
		Proportion string `json:"proportion"`
	} `json:"sources"`
	EstimatedPriceImpact string `json:"estimatedPriceImpact"`
}

// QuoteSwap fetches a same-chain swap quote. Amounts are in the token's
// smallest units. The chain id is accepted for interface parity; 0x routes
// by API host, not by query parameter.
func (c *Client) QuoteSwap(
	ctx context.Context,
	chainID int64,
	fromToken string,
	toToken string,
	amount string,
) (*models.Quote, error) {
	params := url.Values{}
	params.Set("sellToken", fromToken)
	params.Set("buyToken", toToken)
	params.Set("sellAmount", amount)

	fullURL := fmt.Sprintf("%s/swap/v1/quote?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build 0x request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("0x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("0x request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read 0x response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var data quoteResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse 0x response: %w", err)
	}
	if data.BuyAmount == "" {
		return nil, fmt.Errorf("0x response has no output amount")
	}

	gas := data.EstimatedGas.String()
	if gas == "" {
		gas = "150000"
	}

	route := make([]string, 0, len(data.Sources))
	for _, s := range data.Sources {
		proportion, err := decimal.NewFromString(s.Proportion)
		if err != nil || proportion.Sign() <= 0 {
			continue
		}
		route = append(route, s.Name)
	}
	if len(route) == 0 {
		route = []string{"Direct"}
	}

	priceImpact := data.EstimatedPriceImpact
	if priceImpact == "" {
		priceImpact = "0.1"
	}

	amountDec, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	log.Debug().
		Int64("chain_id", chainID).
		Str("to_amount", data.BuyAmount).
		Msg("0x quote received")

	return &models.Quote{
		Aggregator:    aggregatorName,
		FromAmount:    amount,
		ToAmount:      data.BuyAmount,
		EstimatedGas:  gas,
		Route:         route,
		PriceImpact:   priceImpact,
		Fee:           amountDec.Mul(feeRate).Truncate(0).String(),
		ExecutionTime: "30s",
	}, nil
}
