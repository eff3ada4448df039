// Package registry holds the static chain, token and exchange-rate tables
// the aggregator resolves requests against. A Registry is built once at
// process start and never mutated afterwards, so it is safe to share across
// concurrent request handlers without locking.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// NativePlaceholder is the pseudo-address used for a chain's native asset
// and for any token symbol the registry cannot resolve.
const NativePlaceholder = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"

// Chain describes one supported blockchain network.
type Chain struct {
	Key            string // lowercase identifier, e.g. "ethereum"
	ChainID        int64
	Name           string
	RPCURL         string
	NativeCurrency string
}

// Token is a symbol/address pair on a specific chain.
type Token struct {
	Symbol  string
	Address string
}

// Registry is the immutable lookup table for chains, per-chain token
// addresses and the simulated symbol-to-symbol exchange rates.
type Registry struct {
	primary string
	chains  map[string]Chain
	tokens  map[string]map[string]string
	rates   map[string]map[string]decimal.Decimal
}

// New builds a Registry from explicit tables. Rates are given as decimal
// strings and parsed eagerly so a malformed table fails at startup, not per
// request. The primary chain key must be present in chains; it is the
// fallback for unknown chain identifiers.
func New(
	primary string,
	chains []Chain,
	tokens map[string]map[string]string,
	rates map[string]map[string]string,
) (*Registry, error) {
	if len(chains) == 0 {
		return nil, fmt.Errorf("no chains configured")
	}

	chainMap := make(map[string]Chain, len(chains))
	for _, c := range chains {
		key := strings.ToLower(c.Key)
		if key == "" {
			return nil, fmt.Errorf("chain with empty key")
		}
		if c.ChainID <= 0 {
			return nil, fmt.Errorf("chain %q: chain id must be positive", key)
		}
		c.Key = key
		chainMap[key] = c
	}

	primary = strings.ToLower(primary)
	if _, ok := chainMap[primary]; !ok {
		return nil, fmt.Errorf("primary chain %q not in chain table", primary)
	}

	tokenMap := make(map[string]map[string]string, len(tokens))
	for chainKey, table := range tokens {
		chainKey = strings.ToLower(chainKey)
		if _, ok := chainMap[chainKey]; !ok {
			return nil, fmt.Errorf("token table for unknown chain %q", chainKey)
		}
		byToken := make(map[string]string, len(table))
		for symbol, address := range table {
			byToken[symbol] = address
		}
		tokenMap[chainKey] = byToken
	}

	rateMap := make(map[string]map[string]decimal.Decimal, len(rates))
	for from, table := range rates {
		byTo := make(map[string]decimal.Decimal, len(table))
		for to, raw := range table {
			rate, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("rate %s/%s: %w", from, to, err)
			}
			byTo[to] = rate
		}
		rateMap[from] = byTo
	}

	return &Registry{
		primary: primary,
		chains:  chainMap,
		tokens:  tokenMap,
		rates:   rateMap,
	}, nil
}

// Chain resolves a case-insensitive chain identifier.
func (r *Registry) Chain(key string) (Chain, bool) {
	c, ok := r.chains[strings.ToLower(key)]
	return c, ok
}

// ChainOrPrimary resolves a chain identifier, falling back to the primary
// chain when the identifier is unknown or empty.
func (r *Registry) ChainOrPrimary(key string) Chain {
	if c, ok := r.Chain(key); ok {
		return c
	}
	return r.chains[r.primary]
}

// PrimaryKey returns the key of the fallback chain.
func (r *Registry) PrimaryKey() string {
	return r.primary
}

// TokenAddress resolves a token symbol on the given chain. Unknown chains
// and unknown symbols resolve to the native-asset placeholder, matching the
// contract that a request never fails on resolution.
func (r *Registry) TokenAddress(chainKey, symbol string) string {
	table, ok := r.tokens[strings.ToLower(chainKey)]
	if !ok {
		return NativePlaceholder
	}
	if address, ok := table[symbol]; ok {
		return address
	}
	return NativePlaceholder
}

// Chains returns all configured chains ordered by numeric chain ID.
func (r *Registry) Chains() []Chain {
	out := make([]Chain, 0, len(r.chains))
	for _, c := range r.chains {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChainID < out[j].ChainID })
	return out
}

// Tokens returns the token table for a chain in symbol order. Unknown or
// empty chain identifiers yield the primary chain's table.
func (r *Registry) Tokens(chainKey string) []Token {
	key := strings.ToLower(chainKey)
	table, ok := r.tokens[key]
	if !ok {
		table = r.tokens[r.primary]
	}
	out := make([]Token, 0, len(table))
	for symbol, address := range table {
		out = append(out, Token{Symbol: symbol, Address: address})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Rate returns the simulated exchange rate between two token symbols,
// defaulting to 1 for pairs the table does not cover.
func (r *Registry) Rate(fromSymbol, toSymbol string) decimal.Decimal {
	if table, ok := r.rates[fromSymbol]; ok {
		if rate, ok := table[toSymbol]; ok {
			return rate
		}
	}
	return decimal.NewFromInt(1)
}
