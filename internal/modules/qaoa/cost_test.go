package qaoa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQUBOCost_EmptySelection(t *testing.T) {
	q := [][]float64{{1, 2}, {2, 3}}
	assert.Equal(t, 0.0, QUBOCost([]bool{false, false}, q))
}

func TestQUBOCost_SingleAsset(t *testing.T) {
	q := [][]float64{{1.5, 2}, {2, 3.5}}
	assert.Equal(t, 1.5, QUBOCost([]bool{true, false}, q))
	assert.Equal(t, 3.5, QUBOCost([]bool{false, true}, q))
}

func TestExpectedReturn_EmptyAndSingle(t *testing.T) {
	returns := []float64{0.1, 0.2, 0.3}
	assert.Equal(t, 0.0, ExpectedReturn([]bool{false, false, false}, returns))
	assert.InDelta(t, 0.2, ExpectedReturn([]bool{false, true, false}, returns), 1e-12)
}

func TestExpectedReturn_UnweightedMean(t *testing.T) {
	returns := []float64{0.1, 0.2, 0.3}
	assert.InDelta(t, 0.2, ExpectedReturn([]bool{true, true, true}, returns), 1e-12)
}

func TestPortfolioRisk_EmptyAndSingle(t *testing.T) {
	risk := [][]float64{{0.04, 0.01}, {0.01, 0.02}}
	assert.Equal(t, 0.0, PortfolioRisk([]bool{false, false}, risk))
	assert.InDelta(t, 0.04, PortfolioRisk([]bool{true, false}, risk), 1e-12)
}

func TestPortfolioRisk_DividesBySquareOfSelectionCount(t *testing.T) {
	risk := [][]float64{
		{0.04, 0.01, 0.00},
		{0.01, 0.02, 0.00},
		{0.00, 0.00, 0.03},
	}
	x := []bool{true, true, false}
	sum := risk[0][0] + risk[0][1] + risk[1][0] + risk[1][1]
	assert.InDelta(t, sum/4, PortfolioRisk(x, risk), 1e-12)
}

func TestSelectedAssets(t *testing.T) {
	names := []string{"AAPL", "MSFT", "GOOGL", "TSLA"}
	got := SelectedAssets([]bool{true, false, true, false}, names)
	assert.Equal(t, []string{"AAPL", "GOOGL"}, got)
}
