package aggregator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zeebo/assert"

	. "github.com/ArbiterXofficial/arbiterx-quotes/aggregator"
	"github.com/ArbiterXofficial/arbiterx-quotes/models"
	"github.com/ArbiterXofficial/arbiterx-quotes/registry"
)

type stubDex struct {
	name    string
	quote   *models.Quote
	err     error
	calls   int
	chainID int64
}

func (s *stubDex) Name() string { return s.name }

func (s *stubDex) QuoteSwap(
	ctx context.Context, chainID int64, fromToken, toToken, amount string,
) (*models.Quote, error) {
	s.calls++
	s.chainID = chainID
	if s.err != nil {
		return nil, s.err
	}
	q := *s.quote
	q.FromAmount = amount
	return &q, nil
}

type stubBridge struct {
	quote       *models.Quote
	err         error
	calls       int
	fromChainID int64
	toChainID   int64
	fromAddress string
}

func (s *stubBridge) Name() string { return "LiFi" }

func (s *stubBridge) QuoteBridge(
	ctx context.Context, fromChainID, toChainID int64,
	fromToken, toToken, amount, fromAddress string,
) (*models.Quote, error) {
	s.calls++
	s.fromChainID = fromChainID
	s.toChainID = toChainID
	s.fromAddress = fromAddress
	if s.err != nil {
		return nil, s.err
	}
	q := *s.quote
	q.FromAmount = amount
	return &q, nil
}

func dexQuote(name, toAmount string) *models.Quote {
	return &models.Quote{
		Aggregator:    name,
		ToAmount:      toAmount,
		EstimatedGas:  "150000",
		Route:         []string{"Direct"},
		PriceImpact:   "0.1",
		Fee:           "0",
		ExecutionTime: "30s",
	}
}

func sameChainRequest() *models.SwapRequest {
	return &models.SwapRequest{
		FromChain: "ethereum",
		ToChain:   "ethereum",
		FromToken: "USDT",
		ToToken:   "USDC",
		Amount:    "1000000",
	}
}

func TestGetQuote_SameChain_SortedBestFirst(t *testing.T) {
	oneinch := &stubDex{name: "1inch", quote: dexQuote("1inch", "998000")}
	zerox := &stubDex{name: "0x", quote: dexQuote("0x", "999500")}
	bridge := &stubBridge{quote: dexQuote("LiFi", "1")}

	agg := New(registry.Default(), []DexQuoter{oneinch, zerox}, bridge, time.Second)

	result, err := agg.GetQuote(context.Background(), sameChainRequest())
	assert.NoError(t, err)
	assert.False(t, result.IsCrossChain)
	assert.Equal(t, len(result.Quotes), 2)
	assert.Equal(t, result.Quotes[0].Aggregator, "0x")
	assert.Equal(t, result.Quotes[1].Aggregator, "1inch")
	assert.Equal(t, result.BestQuote.Aggregator, "0x")
	assert.Equal(t, result.BestQuote.ToAmount, "999500")
	assert.True(t, result.Timestamp > 0)

	// both DEX providers queried on ethereum, the bridge untouched
	assert.Equal(t, oneinch.calls, 1)
	assert.Equal(t, zerox.calls, 1)
	assert.Equal(t, oneinch.chainID, int64(1))
	assert.Equal(t, bridge.calls, 0)
}

func TestGetQuote_SameChain_PartialFailure(t *testing.T) {
	oneinch := &stubDex{name: "1inch", err: errors.New("HTTP 500")}
	zerox := &stubDex{name: "0x", quote: dexQuote("0x", "42")}

	agg := New(registry.Default(), []DexQuoter{oneinch, zerox}, nil, time.Second)

	result, err := agg.GetQuote(context.Background(), sameChainRequest())
	assert.NoError(t, err)
	assert.Equal(t, len(result.Quotes), 1)
	assert.Equal(t, result.BestQuote.Aggregator, "0x")
}

func TestGetQuote_SameChain_AllFail_SimulatedFallback(t *testing.T) {
	oneinch := &stubDex{name: "1inch", err: errors.New("HTTP 500")}
	zerox := &stubDex{name: "0x", err: errors.New("HTTP 429")}

	agg := New(registry.Default(), []DexQuoter{oneinch, zerox}, nil, time.Second)

	result, err := agg.GetQuote(context.Background(), sameChainRequest())
	assert.NoError(t, err)
	assert.Equal(t, len(result.Quotes), 1)
	assert.Equal(t, result.BestQuote.Aggregator, "ArbiterX")
}

func TestGetQuote_CrossChain_Bridge(t *testing.T) {
	oneinch := &stubDex{name: "1inch", quote: dexQuote("1inch", "1")}
	bridge := &stubBridge{quote: &models.Quote{
		Aggregator:    "LiFi",
		ToAmount:      "6180000000000000000",
		EstimatedGas:  "310000",
		Route:         []string{"Stargate", "Swap"},
		PriceImpact:   "0.42",
		Fee:           "3000000000000000",
		ExecutionTime: "3m",
	}}

	agg := New(registry.Default(), []DexQuoter{oneinch}, bridge, time.Second)

	result, err := agg.GetQuote(context.Background(), &models.SwapRequest{
		FromChain:   "ethereum",
		ToChain:     "bsc",
		FromToken:   "ETH",
		ToToken:     "BNB",
		Amount:      "1000000000000000000",
		UserAddress: "0xdAC17F958D2ee523a2206206994597C13D831ec7",
	})
	assert.NoError(t, err)
	assert.True(t, result.IsCrossChain)
	assert.Equal(t, len(result.Quotes), 1)
	assert.Equal(t, result.BestQuote.Aggregator, "LiFi")

	assert.Equal(t, bridge.calls, 1)
	assert.Equal(t, bridge.fromChainID, int64(1))
	assert.Equal(t, bridge.toChainID, int64(56))
	assert.Equal(t, bridge.fromAddress, "0xdAC17F958D2ee523a2206206994597C13D831ec7")
	// cross-chain requests never hit the DEX aggregators
	assert.Equal(t, oneinch.calls, 0)
}

func TestGetQuote_CrossChain_BridgeFails_SimulatedRate(t *testing.T) {
	bridge := &stubBridge{err: errors.New("no routes found")}

	agg := New(registry.Default(), nil, bridge, time.Second)

	result, err := agg.GetQuote(context.Background(), &models.SwapRequest{
		FromChain: "ethereum",
		ToChain:   "bsc",
		FromToken: "ETH",
		ToToken:   "BNB",
		Amount:    "1000000000000000000",
	})
	assert.NoError(t, err)
	assert.True(t, result.IsCrossChain)
	assert.Equal(t, len(result.Quotes), 1)

	best := result.BestQuote
	assert.Equal(t, best.Aggregator, "ArbiterX")
	// 1 ETH at rate 6.23 minus 0.3% slippage
	assert.Equal(t, best.ToAmount, "6211310000000000000")
	assert.Equal(t, best.Fee, "1000000000000000")
	assert.Equal(t, best.EstimatedGas, "250000")
	assert.DeepEqual(t, best.Route, []string{"Bridge", "DEX Aggregator"})
	assert.Equal(t, best.PriceImpact, "0.3")
	assert.Equal(t, best.ExecutionTime, "3-5m")
}

func TestGetQuote_CrossChain_UnknownPair_RateDefaultsToOne(t *testing.T) {
	agg := New(registry.Default(), nil, &stubBridge{err: errors.New("down")}, time.Second)

	result, err := agg.GetQuote(context.Background(), &models.SwapRequest{
		FromChain: "ethereum",
		ToChain:   "polygon",
		FromToken: "FOO",
		ToToken:   "BAR",
		Amount:    "1000000",
	})
	assert.NoError(t, err)
	assert.Equal(t, result.BestQuote.ToAmount, "997000")
}

func TestGetQuote_ChainCaseInsensitive(t *testing.T) {
	bridge := &stubBridge{quote: dexQuote("LiFi", "5")}
	agg := New(registry.Default(), nil, bridge, time.Second)

	result, err := agg.GetQuote(context.Background(), &models.SwapRequest{
		FromChain: "Ethereum",
		ToChain:   "ETHEREUM",
		FromToken: "ETH",
		ToToken:   "USDT",
		Amount:    "1",
	})
	assert.NoError(t, err)
	// same chain regardless of identifier casing
	assert.False(t, result.IsCrossChain)
	assert.Equal(t, bridge.calls, 0)
}

func TestGetQuote_DefaultUserAddress(t *testing.T) {
	bridge := &stubBridge{quote: dexQuote("LiFi", "5")}
	agg := New(registry.Default(), nil, bridge, time.Second)

	_, err := agg.GetQuote(context.Background(), &models.SwapRequest{
		FromChain: "ethereum",
		ToChain:   "bsc",
		FromToken: "ETH",
		ToToken:   "BNB",
		Amount:    "1000",
	})
	assert.NoError(t, err)
	assert.Equal(t, bridge.fromAddress, "0x0000000000000000000000000000000000000000")
}

func TestGetQuote_Validation(t *testing.T) {
	dex := &stubDex{name: "1inch", quote: dexQuote("1inch", "1")}
	bridge := &stubBridge{quote: dexQuote("LiFi", "1")}
	agg := New(registry.Default(), []DexQuoter{dex}, bridge, time.Second)

	cases := []struct {
		name string
		req  *models.SwapRequest
	}{
		{"nil request", nil},
		{"missing chains", &models.SwapRequest{FromToken: "ETH", ToToken: "BNB", Amount: "1"}},
		{"missing tokens", &models.SwapRequest{FromChain: "ethereum", ToChain: "bsc", Amount: "1"}},
		{"missing amount", &models.SwapRequest{FromChain: "ethereum", ToChain: "bsc", FromToken: "ETH", ToToken: "BNB"}},
		{"fractional amount", &models.SwapRequest{FromChain: "ethereum", ToChain: "bsc", FromToken: "ETH", ToToken: "BNB", Amount: "1.5"}},
		{"negative amount", &models.SwapRequest{FromChain: "ethereum", ToChain: "bsc", FromToken: "ETH", ToToken: "BNB", Amount: "-3"}},
		{"non-numeric amount", &models.SwapRequest{FromChain: "ethereum", ToChain: "bsc", FromToken: "ETH", ToToken: "BNB", Amount: "abc"}},
		{"bad user address", &models.SwapRequest{FromChain: "ethereum", ToChain: "bsc", FromToken: "ETH", ToToken: "BNB", Amount: "1", UserAddress: "not-an-address"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := agg.GetQuote(context.Background(), tc.req)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRequest))
		})
	}

	// validation failures never reach the providers
	assert.Equal(t, dex.calls, 0)
	assert.Equal(t, bridge.calls, 0)
}

func TestGetQuote_SlippageIgnored(t *testing.T) {
	dex := &stubDex{name: "1inch", quote: dexQuote("1inch", "998000")}
	agg := New(registry.Default(), []DexQuoter{dex}, nil, time.Second)

	// any slippage value is accepted, including out-of-range ones
	slippage := 200.0
	result, err := agg.GetQuote(context.Background(), &models.SwapRequest{
		FromChain: "ethereum",
		ToChain:   "ethereum",
		FromToken: "USDT",
		ToToken:   "USDC",
		Amount:    "1000000",
		Slippage:  &slippage,
	})
	assert.NoError(t, err)
	assert.Equal(t, result.BestQuote.Aggregator, "1inch")
	assert.Equal(t, dex.calls, 1)
}

func TestGetQuote_ZeroAmountAllowed(t *testing.T) {
	agg := New(registry.Default(), nil, &stubBridge{err: errors.New("down")}, time.Second)

	result, err := agg.GetQuote(context.Background(), &models.SwapRequest{
		FromChain: "ethereum",
		ToChain:   "bsc",
		FromToken: "ETH",
		ToToken:   "BNB",
		Amount:    "0",
	})
	assert.NoError(t, err)
	assert.Equal(t, result.BestQuote.ToAmount, "0")
}

func TestSupportedChains(t *testing.T) {
	agg := New(registry.Default(), nil, nil, time.Second)

	chains := agg.SupportedChains()
	assert.Equal(t, len(chains), 7)
	assert.Equal(t, chains[0].ID, "ethereum")
	assert.Equal(t, chains[0].ChainID, int64(1))
	assert.Equal(t, chains[0].NativeCurrency, "ETH")
}

func TestSupportedTokens(t *testing.T) {
	agg := New(registry.Default(), nil, nil, time.Second)

	tokens := agg.SupportedTokens("ethereum")
	assert.True(t, len(tokens) > 0)
	for _, tok := range tokens {
		assert.True(t, tok.Symbol != "")
		assert.True(t, tok.Address != "")
	}

	// unknown chains fall back to the primary chain's table
	fallback := agg.SupportedTokens("solana")
	assert.DeepEqual(t, fallback, tokens)
}
