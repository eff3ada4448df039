// Package oneinch queries the 1inch swap API for same-chain quotes.
package oneinch

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
	log = zerolog.New(out).With().Timestamp().Str("component", "oneinch").Logger()
}

const aggregatorName = "1inch"

// feeRate is the flat fee charged on the input amount.
var feeRate = decimal.RequireFromString("0.001")

// Client queries the 1inch aggregation API (v6).
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a 1inch client. The API key may be empty, in which case
// requests are sent unauthenticated.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid 1inch base url: %w", err)
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
	ToAmount  string      `json:"toAmount"`
	DstAmount string      `json:"dstAmount"`
	Gas       json.Number `json:"gas"`
	Protocols [][]struct {
		Name string `json:"name"`
	} `json:"protocols"`
}

// QuoteSwap fetches a same-chain swap quote. Amounts are in the token's
// smallest units.
func (c *Client) QuoteSwap(
	ctx context.Context,
	chainID int64,
	fromToken string,
	toToken string,
	amount string,
) (*models.Quote, error) {
	params := url.Values{}
	params.Set("src", fromToken)
	params.Set("dst", toToken)
	params.Set("amount", amount)

	fullURL := fmt.Sprintf("%s/swap/v6.0/%d/quote?%s", c.baseURL, chainID, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build 1inch request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("1inch request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read 1inch response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var data quoteResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse 1inch response: %w", err)
	}

	toAmount := data.ToAmount
	if toAmount == "" {
		toAmount = data.DstAmount
	}
	if toAmount == "" {
		return nil, fmt.Errorf("1inch response has no output amount")
	}

	gas := data.Gas.String()
	if gas == "" {
		gas = "150000"
	}

	route := []string{"Direct"}
	if len(data.Protocols) > 0 && len(data.Protocols[0]) > 0 {
		route = make([]string, len(data.Protocols[0]))
		for i, p := range data.Protocols[0] {
			route[i] = p.Name
		}
	}

	amountDec, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	log.Debug().
		Int64("chain_id", chainID).
		Str("to_amount", toAmount).
		Msg("1inch quote received")

	return &models.Quote{
		Aggregator:    aggregatorName,
		FromAmount:    amount,
		ToAmount:      toAmount,
		EstimatedGas:  gas,
		Route:         route,
		PriceImpact:   "0.1",
		Fee:           amountDec.Mul(feeRate).Truncate(0).String(),
		ExecutionTime: "30s",
	}, nil
}
