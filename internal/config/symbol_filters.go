package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SymbolFilter mirrors the exchange's per-symbol trading rules that matter
// before submission: how many decimal places prices and quantities may carry
// and the smallest tradable quantity.
type SymbolFilter struct {
	PricePrecision    int     `yaml:"price_precision"`
	QuantityPrecision int     `yaml:"quantity_precision"`
	MinQuantity       float64 `yaml:"min_quantity"`
}

type SymbolFilters struct {
	Symbols map[string]SymbolFilter `yaml:"symbols"`
}

// LoadSymbolFilters reads the optional per-symbol filters file. An empty
// path or a missing file yields empty filters, not an error — orders for
// unlisted symbols are validated by the exchange alone.
func LoadSymbolFilters(path string) (SymbolFilters, error) {
	if path == "" {
		return SymbolFilters{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return SymbolFilters{}, nil
		}
		return SymbolFilters{}, fmt.Errorf("read symbol filters: %w", err)
	}

	var filters SymbolFilters
	if err := yaml.Unmarshal(data, &filters); err != nil {
		return SymbolFilters{}, fmt.Errorf("parse symbol filters: %w", err)
	}

	return filters, nil
}

func (sf SymbolFilters) For(symbol string) (SymbolFilter, bool) {
	f, ok := sf.Symbols[strings.ToUpper(symbol)]
	return f, ok
}
