// Package aggregator gathers swap quotes from DEX aggregators and bridges,
// normalizes them and picks the best rate.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ArbiterXofficial/arbiterx-quotes/metrics"
	"github.com/ArbiterXofficial/arbiterx-quotes/models"
	"github.com/ArbiterXofficial/arbiterx-quotes/registry"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "aggregator").Logger()
}

// ErrInvalidRequest marks request validation failures. Callers can use
// errors.Is to map these to client errors.
var ErrInvalidRequest = errors.New("invalid swap request")

// DexQuoter fetches same-chain swap quotes from a DEX aggregator.
type DexQuoter interface {
	Name() string
	QuoteSwap(
		ctx context.Context,
		chainID int64,
		fromToken string,
		toToken string,
		amount string,
	) (*models.Quote, error)
}

// BridgeQuoter fetches cross-chain bridge quotes.
type BridgeQuoter interface {
	Name() string
	QuoteBridge(
		ctx context.Context,
		fromChainID int64,
		toChainID int64,
		fromToken string,
		toToken string,
		amount string,
		fromAddress string,
	) (*models.Quote, error)
}

// Aggregator fans quote requests out to the configured providers.
type Aggregator struct {
	registry *registry.Registry
	dex      []DexQuoter
	bridge   BridgeQuoter
	timeout  time.Duration
}

// New creates an Aggregator. The provider timeout bounds each upstream call;
// if zero, a 10 second default is used.
func New(reg *registry.Registry, dex []DexQuoter, bridge BridgeQuoter, timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Aggregator{
		registry: reg,
		dex:      dex,
		bridge:   bridge,
		timeout:  timeout,
	}
}

// GetQuote resolves the request against the chain registry, gathers quotes
// from the relevant providers and returns them sorted best-first. The result
// always carries at least one quote; when every provider fails, a simulated
// quote stands in.
func (a *Aggregator) GetQuote(ctx context.Context, req *models.SwapRequest) (*models.QuoteResult, error) {
	if err := a.validate(req); err != nil {
		return nil, err
	}

	userAddress := req.UserAddress
	if userAddress == "" {
		userAddress = common.Address{}.Hex()
	}

	isCrossChain := !strings.EqualFold(req.FromChain, req.ToChain)

	var quotes []models.Quote
	if isCrossChain {
		quotes = a.gatherCrossChain(ctx, req, userAddress)
	} else {
		quotes = a.gatherSameChain(ctx, req)
	}

	if len(quotes) == 0 {
		route := "same_chain"
		if isCrossChain {
			route = "cross_chain"
		}
		metrics.SimulatedFallbacksTotal.WithLabelValues(route).Inc()
		log.Warn().
			Str("from_chain", req.FromChain).
			Str("to_chain", req.ToChain).
			Msg("all providers failed, using simulated quote")
		quotes = append(quotes, a.SimulatedQuote(req.Amount, req.FromToken, req.ToToken))
	}

	sortByToAmount(quotes)

	return &models.QuoteResult{
		IsCrossChain: isCrossChain,
		Quotes:       quotes,
		BestQuote:    quotes[0],
		Timestamp:    time.Now().UnixMilli(),
	}, nil
}

func (a *Aggregator) validate(req *models.SwapRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidRequest)
	}
	if req.FromChain == "" || req.ToChain == "" {
		return fmt.Errorf("%w: fromChain and toChain are required", ErrInvalidRequest)
	}
	if req.FromToken == "" || req.ToToken == "" {
		return fmt.Errorf("%w: fromToken and toToken are required", ErrInvalidRequest)
	}
	if req.Amount == "" {
		return fmt.Errorf("%w: amount is required", ErrInvalidRequest)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsInteger() || amount.Sign() < 0 {
		return fmt.Errorf("%w: amount must be a non-negative integer in smallest units", ErrInvalidRequest)
	}
	if req.UserAddress != "" && !common.IsHexAddress(req.UserAddress) {
		return fmt.Errorf("%w: userAddress is not a valid address", ErrInvalidRequest)
	}
	// slippage is accepted and ignored; it never affects ranking or validity
	return nil
}

// gatherSameChain queries every DEX aggregator in parallel and keeps the
// quotes that succeed.
func (a *Aggregator) gatherSameChain(ctx context.Context, req *models.SwapRequest) []models.Quote {
	chain := a.registry.ChainOrPrimary(req.FromChain)
	fromAddr := a.registry.TokenAddress(req.FromChain, req.FromToken)
	toAddr := a.registry.TokenAddress(req.FromChain, req.ToToken)

	results := make([]*models.Quote, len(a.dex))
	var wg sync.WaitGroup
	for i, quoter := range a.dex {
		wg.Add(1)
		go func(i int, quoter DexQuoter) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			start := time.Now()
			quote, err := quoter.QuoteSwap(callCtx, chain.ChainID, fromAddr, toAddr, req.Amount)
			metrics.ProviderRequestDuration.WithLabelValues(quoter.Name()).Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.ProviderRequestsTotal.WithLabelValues(quoter.Name(), "error").Inc()
				log.Warn().Err(err).Str("provider", quoter.Name()).Msg("dex quote failed")
				return
			}
			metrics.ProviderRequestsTotal.WithLabelValues(quoter.Name(), "success").Inc()
			results[i] = quote
		}(i, quoter)
	}
	wg.Wait()

	quotes := make([]models.Quote, 0, len(results))
	for _, q := range results {
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	return quotes
}

// gatherCrossChain queries the bridge provider. A failed bridge call is not
// an error for the caller; the simulated fallback takes over.
func (a *Aggregator) gatherCrossChain(ctx context.Context, req *models.SwapRequest, userAddress string) []models.Quote {
	if a.bridge == nil {
		return nil
	}

	fromChain := a.registry.ChainOrPrimary(req.FromChain)
	toChain := a.registry.ChainOrPrimary(req.ToChain)
	fromAddr := a.registry.TokenAddress(req.FromChain, req.FromToken)
	toAddr := a.registry.TokenAddress(req.ToChain, req.ToToken)

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	quote, err := a.bridge.QuoteBridge(callCtx,
		fromChain.ChainID, toChain.ChainID, fromAddr, toAddr, req.Amount, userAddress)
	metrics.ProviderRequestDuration.WithLabelValues(a.bridge.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(a.bridge.Name(), "error").Inc()
		log.Warn().Err(err).Str("provider", a.bridge.Name()).Msg("bridge quote failed")
		return nil
	}
	metrics.ProviderRequestsTotal.WithLabelValues(a.bridge.Name(), "success").Inc()
	return []models.Quote{*quote}
}

// sortByToAmount orders quotes by output amount, best first. Quotes with
// unparseable amounts sink to the end.
func sortByToAmount(quotes []models.Quote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		a, errA := decimal.NewFromString(quotes[i].ToAmount)
		b, errB := decimal.NewFromString(quotes[j].ToAmount)
		if errA != nil {
			return false
		}
		if errB != nil {
			return true
		}
		return a.GreaterThan(b)
	})
}

// SupportedChains lists the chains the service can quote on.
func (a *Aggregator) SupportedChains() []models.ChainInfo {
	chains := a.registry.Chains()
	out := make([]models.ChainInfo, len(chains))
	for i, c := range chains {
		out[i] = models.ChainInfo{
			ID:             c.Key,
			ChainID:        c.ChainID,
			Name:           c.Name,
			RPCURL:         c.RPCURL,
			NativeCurrency: c.NativeCurrency,
		}
	}
	return out
}

// SupportedTokens lists the known tokens on a chain. Unknown chains fall back
// to the primary chain's token table.
func (a *Aggregator) SupportedTokens(chain string) []models.TokenInfo {
	tokens := a.registry.Tokens(chain)
	out := make([]models.TokenInfo, len(tokens))
	for i, t := range tokens {
		out[i] = models.TokenInfo{
			Symbol:  t.Symbol,
			Address: t.Address,
		}
	}
	return out
}
