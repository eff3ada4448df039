// Package models holds the wire types shared by the aggregator, the
// upstream provider clients and the RPC layer.
package models

// SwapRequest is the inbound getQuote payload. Amounts are integer strings
// in the smallest on-chain unit of the source token.
type SwapRequest struct {
	FromChain   string   `json:"fromChain"`
	ToChain     string   `json:"toChain"`
	FromToken   string   `json:"fromToken"`
	ToToken     string   `json:"toToken"`
	Amount      string   `json:"amount"`
	UserAddress string   `json:"userAddress,omitempty"`
	Slippage    *float64 `json:"slippage,omitempty"` // accepted for forward compatibility, not used in ranking
}

// Quote is one normalized quote from an upstream aggregator (or the
// simulated fallback). ToAmount uses the same smallest-unit convention as
// FromAmount.
type Quote struct {
	Aggregator    string   `json:"aggregator"`
	FromAmount    string   `json:"fromAmount"`
	ToAmount      string   `json:"toAmount"`
	EstimatedGas  string   `json:"estimatedGas"`
	Route         []string `json:"route"`
	PriceImpact   string   `json:"priceImpact"`
	Fee           string   `json:"fee"`
	ExecutionTime string   `json:"executionTime"`
}

// QuoteResult is the getQuote response body. Quotes are sorted descending
// by ToAmount and BestQuote is always Quotes[0]; the list is never empty.
type QuoteResult struct {
	IsCrossChain bool    `json:"isCrossChain"`
	Quotes       []Quote `json:"quotes"`
	BestQuote    Quote   `json:"bestQuote"`
	Timestamp    int64   `json:"timestamp"` // unix milliseconds
}

// ChainInfo is one entry of the getSupportedChains response.
type ChainInfo struct {
	ID             string `json:"id"`
	ChainID        int64  `json:"chainId"`
	Name           string `json:"name"`
	RPCURL         string `json:"rpcUrl"`
	NativeCurrency string `json:"nativeCurrency"`
}

// TokenInfo is one entry of the getSupportedTokens response.
type TokenInfo struct {
	Symbol  string `json:"symbol"`
	Address string `json:"address"`
}
