package registry

// Built-in tables matching the chains and tokens the ArbiterX front end
// ships with. A TOML registry file (see the config package) replaces these
// wholesale when provided.

var defaultChains = []Chain{
	{Key: "ethereum", ChainID: 1, Name: "Ethereum", RPCURL: "https://eth.llamarpc.com", NativeCurrency: "ETH"},
	{Key: "bsc", ChainID: 56, Name: "BSC", RPCURL: "https://bsc-dataseed.binance.org", NativeCurrency: "BNB"},
	{Key: "polygon", ChainID: 137, Name: "Polygon", RPCURL: "https://polygon-rpc.com", NativeCurrency: "MATIC"},
	{Key: "arbitrum", ChainID: 42161, Name: "Arbitrum", RPCURL: "https://arb1.arbitrum.io/rpc", NativeCurrency: "ETH"},
	{Key: "optimism", ChainID: 10, Name: "Optimism", RPCURL: "https://mainnet.optimism.io", NativeCurrency: "ETH"},
	{Key: "avalanche", ChainID: 43114, Name: "Avalanche", RPCURL: "https://api.avax.network/ext/bc/C/rpc", NativeCurrency: "AVAX"},
	{Key: "base", ChainID: 8453, Name: "Base", RPCURL: "https://mainnet.base.org", NativeCurrency: "ETH"},
}

var defaultTokens = map[string]map[string]string{
	"ethereum": {
		"ETH":  NativePlaceholder,
		"USDT": "0xdAC17F958D2ee523a2206206994597C13D831ec7",
		"USDC": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		"WETH": "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		"DAI":  "0x6B175474E89094C44Da98b954EedeAC495271d0F",
	},
	"bsc": {
		"BNB":  NativePlaceholder,
		"USDT": "0x55d398326f99059fF775485246999027B3197955",
		"USDC": "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d",
		"WBNB": "0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c",
	},
	"polygon": {
		"MATIC":  NativePlaceholder,
		"USDT":   "0xc2132D05D31c914a87C6611C10748AEb04B58e8F",
		"USDC":   "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174",
		"WMATIC": "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270",
	},
	"arbitrum": {
		"ETH":  NativePlaceholder,
		"USDT": "0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9",
		"USDC": "0xaf88d065e77c8cC2239327C5EDb3A432268e5831",
	},
}

// Simulated cross-pair exchange rates used when no live provider answers.
var defaultRates = map[string]map[string]string{
	"ETH":   {"BNB": "6.23", "MATIC": "2100", "SOL": "15.5", "USDT": "2650", "USDC": "2650"},
	"BNB":   {"ETH": "0.16", "MATIC": "337", "SOL": "2.49", "USDT": "425", "USDC": "425"},
	"MATIC": {"ETH": "0.00048", "BNB": "0.003", "SOL": "0.007", "USDT": "1.26", "USDC": "1.26"},
	"SOL":   {"ETH": "0.065", "BNB": "0.4", "MATIC": "135", "USDT": "171", "USDC": "171"},
	"USDT":  {"ETH": "0.00038", "BNB": "0.0024", "MATIC": "0.79", "SOL": "0.0058"},
	"USDC":  {"ETH": "0.00038", "BNB": "0.0024", "MATIC": "0.79", "SOL": "0.0058"},
}

// Default returns the registry built from the compiled-in tables.
func Default() *Registry {
	reg, err := New("ethereum", defaultChains, defaultTokens, defaultRates)
	if err != nil {
		// the built-in tables are covered by tests; this cannot happen at runtime
		panic(err)
	}
	return reg
}
