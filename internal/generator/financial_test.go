package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"project-tracker/internal/models"
)

func TestFinancials_Bounds(t *testing.T) {
	g := New(NewSource(31))
	for i := 0; i < 3000; i++ {
		progress := i % 101

		contract, received := g.Financials(models.BusinessEPC, progress)
		assert.GreaterOrEqual(t, contract, int64(epcContractMin))
		assert.LessOrEqual(t, contract, int64(epcContractMax))
		assert.GreaterOrEqual(t, received, int64(0))
		assert.LessOrEqual(t, received, contract)

		contract, received = g.Financials(models.BusinessDesign, progress)
		assert.GreaterOrEqual(t, contract, int64(designContractMin))
		assert.LessOrEqual(t, contract, int64(designContractMax))
		assert.GreaterOrEqual(t, received, int64(0))
		assert.LessOrEqual(t, received, contract)
	}
}

func TestFinancials_TracksProgress(t *testing.T) {
	g := New(NewSource(32))
	for i := 0; i < 500; i++ {
		_, received := g.Financials(models.BusinessDesign, 0)
		assert.Zero(t, received)

		contract, received := g.Financials(models.BusinessEPC, 100)
		assert.GreaterOrEqual(t, received, contract*8/10-1, "payment lags progress by at most 20 points")
	}
}
