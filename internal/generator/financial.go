package generator

import (
	"github.com/shopspring/decimal"

	"project-tracker/internal/models"
)

// Contract value ranges in 万元.
const (
	epcContractMin    = 20000
	epcContractMax    = 500000
	designContractMin = 500
	designContractMax = 8000
)

var hundred = decimal.NewFromInt(100)

// Financials draws a contract value for the business type and a payment
// that trails progress by up to 20 points. received is always in [0, contract].
func (g *Generator) Financials(bt models.BusinessType, progress int) (contract, received int64) {
	if bt == models.BusinessEPC {
		contract = g.s.Int64Range(epcContractMin, epcContractMax)
	} else {
		contract = g.s.Int64Range(designContractMin, designContractMax)
	}

	lag := decimal.NewFromFloat(g.s.Float64() * 0.2)
	ratio := decimal.NewFromInt(int64(progress)).Div(hundred).Sub(lag)
	if ratio.IsNegative() {
		ratio = decimal.Zero
	}
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		ratio = decimal.NewFromInt(1)
	}
	received = decimal.NewFromInt(contract).Mul(ratio).Floor().IntPart()
	return contract, received
}
