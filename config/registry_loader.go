package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ArbiterXofficial/arbiterx-quotes/registry"
)

// RegistryFile is the on-disk shape of a chain/token registry.
type RegistryFile struct {
	Primary string                       `toml:"primary"`
	Chains  []RegistryChain              `toml:"chains"`
	Rates   map[string]map[string]string `toml:"rates"`
}

// RegistryChain is one chain entry in a registry file.
type RegistryChain struct {
	Key            string            `toml:"key"`
	ChainID        int64             `toml:"chain_id"`
	Name           string            `toml:"name"`
	RPCURL         string            `toml:"rpc_url"`
	NativeCurrency string            `toml:"native_currency"`
	Tokens         map[string]string `toml:"tokens"`
}

// RegistryLoader loads chain/token registries from TOML files and converts
// them to the registry types used by the aggregator.
type RegistryLoader struct{}

// NewRegistryLoader creates a new registry loader.
func NewRegistryLoader() *RegistryLoader {
	return &RegistryLoader{}
}

// LoadFromFile loads a registry from a TOML file.
func (l *RegistryLoader) LoadFromFile(filePath string) (*registry.Registry, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}

	var file RegistryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse TOML registry: %w", err)
	}

	return l.ConvertToRegistry(&file)
}

// ConvertToRegistry converts a RegistryFile to a registry.Registry.
func (l *RegistryLoader) ConvertToRegistry(file *RegistryFile) (*registry.Registry, error) {
	if file == nil || len(file.Chains) == 0 {
		return nil, fmt.Errorf("no chains in registry file")
	}

	chains := make([]registry.Chain, 0, len(file.Chains))
	tokens := make(map[string]map[string]string)

	for _, c := range file.Chains {
		if c.Key == "" {
			return nil, fmt.Errorf("chain entry is missing a key")
		}
		chains = append(chains, registry.Chain{
			Key:            c.Key,
			ChainID:        c.ChainID,
			Name:           c.Name,
			RPCURL:         c.RPCURL,
			NativeCurrency: c.NativeCurrency,
		})
		if len(c.Tokens) > 0 {
			table := make(map[string]string, len(c.Tokens))
			for symbol, address := range c.Tokens {
				table[symbol] = address
			}
			tokens[c.Key] = table
		}
	}

	reg, err := registry.New(file.Primary, chains, tokens, file.Rates)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}
	return reg, nil
}
