package registry_test

import (
	"testing"

	"github.com/zeebo/assert"

	"github.com/ArbiterXofficial/arbiterx-quotes/registry"
)

func TestChainLookupIsCaseInsensitive(t *testing.T) {
	reg := registry.Default()

	c, ok := reg.Chain("Ethereum")
	assert.True(t, ok)
	assert.Equal(t, int64(1), c.ChainID)

	c, ok = reg.Chain("BSC")
	assert.True(t, ok)
	assert.Equal(t, int64(56), c.ChainID)

	_, ok = reg.Chain("dogechain")
	assert.False(t, ok)
}

func TestChainOrPrimaryFallsBackToChainOne(t *testing.T) {
	reg := registry.Default()

	c := reg.ChainOrPrimary("dogechain")
	assert.Equal(t, int64(1), c.ChainID)
	assert.Equal(t, "ethereum", c.Key)

	c = reg.ChainOrPrimary("")
	assert.Equal(t, int64(1), c.ChainID)
}

func TestTokenAddressResolution(t *testing.T) {
	reg := registry.Default()

	assert.Equal(t,
		"0xdAC17F958D2ee523a2206206994597C13D831ec7",
		reg.TokenAddress("ethereum", "USDT"))

	// unknown symbol resolves to the native placeholder
	assert.Equal(t, registry.NativePlaceholder, reg.TokenAddress("ethereum", "SHIB"))

	// unknown chain resolves to the native placeholder too
	assert.Equal(t, registry.NativePlaceholder, reg.TokenAddress("dogechain", "USDT"))

	// native assets map to the placeholder directly
	assert.Equal(t, registry.NativePlaceholder, reg.TokenAddress("bsc", "BNB"))
}

func TestChainsAreOrderedByChainID(t *testing.T) {
	reg := registry.Default()

	chains := reg.Chains()
	assert.Equal(t, 7, len(chains))
	for i := 1; i < len(chains); i++ {
		assert.True(t, chains[i-1].ChainID < chains[i].ChainID)
	}
	assert.Equal(t, "ethereum", chains[0].Key)
}

func TestTokensDefaultToPrimaryChain(t *testing.T) {
	reg := registry.Default()

	tokens := reg.Tokens("")
	assert.Equal(t, 5, len(tokens))
	// symbol-sorted: DAI first
	assert.Equal(t, "DAI", tokens[0].Symbol)

	same := reg.Tokens("ethereum")
	assert.DeepEqual(t, tokens, same)

	bsc := reg.Tokens("BSC")
	assert.Equal(t, 4, len(bsc))
}

func TestRateDefaultsToOne(t *testing.T) {
	reg := registry.Default()

	assert.Equal(t, "6.23", reg.Rate("ETH", "BNB").String())
	assert.Equal(t, "1", reg.Rate("ETH", "ETH").String())
	assert.Equal(t, "1", reg.Rate("FOO", "BAR").String())
}

func TestNewRejectsBadTables(t *testing.T) {
	_, err := registry.New("ethereum", nil, nil, nil)
	assert.Error(t, err)

	_, err = registry.New("missing", []registry.Chain{
		{Key: "ethereum", ChainID: 1, Name: "Ethereum"},
	}, nil, nil)
	assert.Error(t, err)

	_, err = registry.New("ethereum", []registry.Chain{
		{Key: "ethereum", ChainID: 1, Name: "Ethereum"},
	}, nil, map[string]map[string]string{
		"ETH": {"BNB": "not-a-number"},
	})
	assert.Error(t, err)

	_, err = registry.New("ethereum", []registry.Chain{
		{Key: "ethereum", ChainID: 0, Name: "Ethereum"},
	}, nil, nil)
	assert.Error(t, err)
}
