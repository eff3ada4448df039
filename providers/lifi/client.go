// Package lifi queries the LI.FI API for cross-chain bridge quotes.
package lifi

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
	log = zerolog.New(out).With().Timestamp().Str("component", "lifi").Logger()
}

const aggregatorName = "LiFi"

var (
	feeRate      = decimal.RequireFromString("0.003")
	slippageRate = decimal.RequireFromString("0.98")
)

// Client queries the LI.FI quote API (v1).
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a LI.FI client.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid lifi base url: %w", err)
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}, nil
}

// Name returns the aggregator label used in quotes.
func (c *Client) Name() string { return aggregatorName }

type quoteResponse struct {
	Estimate struct {
		ToAmount string `json:"toAmount"`
		GasCosts []struct {
			Amount string `json:"amount"`
		} `json:"gasCosts"`
		PriceImpact       string  `json:"priceImpact"`
		ExecutionDuration float64 `json:"executionDuration"`
	} `json:"estimate"`
	ToolDetails struct {
		Name string `json:"name"`
	} `json:"toolDetails"`
}

// QuoteBridge fetches a cross-chain bridge quote. Amounts are in the source
// token's smallest units.
func (c *Client) QuoteBridge(
	ctx context.Context,
	fromChainID int64,
	toChainID int64,
	fromToken string,
	toToken string,
	amount string,
	fromAddress string,
) (*models.Quote, error) {
	amountDec, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	params := url.Values{}
	params.Set("fromChain", fmt.Sprintf("%d", fromChainID))
	params.Set("toChain", fmt.Sprintf("%d", toChainID))
	params.Set("fromToken", fromToken)
	params.Set("toToken", toToken)
	params.Set("fromAmount", amount)
	params.Set("fromAddress", fromAddress)

	fullURL := fmt.Sprintf("%s/v1/quote?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build lifi request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lifi request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read lifi response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var data quoteResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse lifi response: %w", err)
	}

	toAmount := data.Estimate.ToAmount
	if toAmount == "" {
		toAmount = amountDec.Mul(slippageRate).Truncate(0).String()
	}

	gas := "250000"
	if len(data.Estimate.GasCosts) > 0 && data.Estimate.GasCosts[0].Amount != "" {
		gas = data.Estimate.GasCosts[0].Amount
	}

	bridge := data.ToolDetails.Name
	if bridge == "" {
		bridge = "Bridge"
	}

	priceImpact := data.Estimate.PriceImpact
	if priceImpact == "" {
		priceImpact = "0.5"
	}

	executionTime := "5m"
	if data.Estimate.ExecutionDuration > 0 {
		minutes := int64(data.Estimate.ExecutionDuration / 60)
		if float64(minutes*60) < data.Estimate.ExecutionDuration {
			minutes++
		}
		executionTime = fmt.Sprintf("%dm", minutes)
	}

	log.Debug().
		Int64("from_chain", fromChainID).
		Int64("to_chain", toChainID).
		Str("bridge", bridge).
		Str("to_amount", toAmount).
		Msg("lifi quote received")

	return &models.Quote{
		Aggregator:    aggregatorName,
		FromAmount:    amount,
		ToAmount:      toAmount,
		EstimatedGas:  gas,
		Route:         []string{bridge, "Swap"},
		PriceImpact:   priceImpact,
		Fee:           amountDec.Mul(feeRate).Truncate(0).String(),
		ExecutionTime: executionTime,
	}, nil
}
