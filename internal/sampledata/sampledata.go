// Package sampledata generates synthetic demo portfolios and random QAOA
// angle sets for callers that don't have real market data or a tuned
// parameter set handy. It is an external collaborator to the qaoa core:
// nothing here is required to run an optimization, only to demo one.
package sampledata

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/qoptimizer/internal/modules/qaoa"
)

// Generate builds a synthetic n-asset portfolio: returns and a covariance
// matrix estimated from simulated daily-return series, so the demo risk
// matrix is a real sample covariance rather than a hand-picked constant.
func Generate(n int, rng *rand.Rand) (*qaoa.PortfolioData, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sampledata: n must be positive, got %d", n)
	}

	const observations = 252
	series := mat.NewDense(observations, n, nil)
	names := make([]string, n)
	drift := make([]float64, n)
	for i := 0; i < n; i++ {
		names[i] = fmt.Sprintf("ASSET-%d", i+1)
		drift[i] = 0.0002 + 0.0006*rng.Float64()
		vol := 0.01 + 0.02*rng.Float64()
		for row := 0; row < observations; row++ {
			series.Set(row, i, drift[i]+vol*rng.NormFloat64())
		}
	}

	returns := make([]float64, n)
	for i := 0; i < n; i++ {
		col := mat.Col(nil, i, series)
		returns[i] = stat.Mean(col, nil) * float64(observations)
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, series, nil)
	risk := make([][]float64, n)
	for i := 0; i < n; i++ {
		risk[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			risk[i][j] = cov.At(i, j) * float64(observations)
		}
	}

	return qaoa.NewPortfolioData(returns, risk, names, 10000, 1.0)
}

// RandomAngles draws a QAOAParameters with betas uniform in [0, pi] and
// gammas uniform in [0, 2*pi], per the core's documented external
// random-angle-generation contract.
func RandomAngles(layers, samples int, rng *rand.Rand) (*qaoa.QAOAParameters, error) {
	betas := make([]float64, layers)
	gammas := make([]float64, layers)
	for i := 0; i < layers; i++ {
		betas[i] = rng.Float64() * math.Pi
		gammas[i] = rng.Float64() * 2 * math.Pi
	}
	return qaoa.NewQAOAParameters(layers, betas, gammas, samples)
}
