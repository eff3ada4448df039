package aggregator

import (
	"github.com/shopspring/decimal"

	"github.com/ArbiterXofficial/arbiterx-quotes/models"
)

const simulatedAggregator = "ArbiterX"

var (
	simulatedSlippage = decimal.RequireFromString("0.997")
	simulatedFeeRate  = decimal.RequireFromString("0.001")
)

// SimulatedQuote builds an indicative quote from the registry rate table.
// It stands in when every upstream provider fails, so a getQuote response
// always carries at least one quote. Amounts are truncated to whole
// smallest units.
func (a *Aggregator) SimulatedQuote(amount, fromToken, toToken string) models.Quote {
	amountDec, err := decimal.NewFromString(amount)
	if err != nil {
		amountDec = decimal.Zero
	}

	rate := a.registry.Rate(fromToken, toToken)
	toAmount := amountDec.Mul(rate).Mul(simulatedSlippage).Truncate(0)

	return models.Quote{
		Aggregator:    simulatedAggregator,
		FromAmount:    amount,
		ToAmount:      toAmount.String(),
		EstimatedGas:  "250000",
		Route:         []string{"Bridge", "DEX Aggregator"},
		PriceImpact:   "0.3",
		Fee:           amountDec.Mul(simulatedFeeRate).Truncate(0).String(),
		ExecutionTime: "3-5m",
	}
}
