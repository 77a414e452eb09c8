package qaoa

import (
	"math"
	"math/rand"
)

// TuneProgress reports the state of a grid-search tuning run after one
// (beta, gamma) grid point has been evaluated.
type TuneProgress struct {
	BetaIndex       int
	GammaIndex      int
	TotalGridPoints int
	BestCostSoFar   float64
	BestBetaSoFar   float64
	BestGammaSoFar  float64
}

// OptimizeParameters scans a gridSize x gridSize grid of (beta, gamma)
// angles, applying the same angle to every layer, and returns the
// parameter set whose Optimize run achieved the lowest cost. Ties are
// broken by the earliest (beta index, then gamma index).
//
// gamma is scanned over [0, pi), the same range as beta, rather than the
// full [0, 2*pi) domain.
//
// onProgress, if non-nil, is invoked once per grid point after that
// point's Optimize run completes. It never alters the search, and it
// does not consume rng itself.
func OptimizeParameters(portfolio *PortfolioData, layers, gridSize, samples int, rng *rand.Rand, onProgress func(TuneProgress)) (*QAOAParameters, error) {
	step := math.Pi / float64(gridSize)

	var best *QAOAParameters
	bestCost := math.Inf(1)
	total := gridSize * gridSize

	for b := 0; b < gridSize; b++ {
		beta := float64(b) * step
		for g := 0; g < gridSize; g++ {
			gamma := float64(g) * step

			betas := make([]float64, layers)
			gammas := make([]float64, layers)
			for l := 0; l < layers; l++ {
				betas[l] = beta
				gammas[l] = gamma
			}
			candidate, err := NewQAOAParameters(layers, betas, gammas, samples)
			if err != nil {
				return nil, err
			}

			result, err := Optimize(portfolio, candidate, rng)
			if err != nil {
				return nil, err
			}
			if result.Cost < bestCost {
				bestCost = result.Cost
				best = candidate
			}

			if onProgress != nil {
				progress := TuneProgress{
					BetaIndex:       b,
					GammaIndex:      g,
					TotalGridPoints: total,
					BestCostSoFar:   bestCost,
				}
				if layers > 0 {
					progress.BestBetaSoFar = best.Betas[0]
					progress.BestGammaSoFar = best.Gammas[0]
				}
				onProgress(progress)
			}
		}
	}

	return best, nil
}
