package qaoa

import (
	"math"
	"math/rand"
)

// Optimize builds the QUBO/Ising forms for portfolio, runs params.Samples
// shots of the QAOA circuit, and returns the lowest-cost bitstring
// observed. rng must not be shared across concurrent calls to Optimize:
// callers own their own random source.
func Optimize(portfolio *PortfolioData, params *QAOAParameters, rng *rand.Rand) (*Result, error) {
	if len(params.Betas) != params.Layers || len(params.Gammas) != params.Layers {
		return nil, &ShapeError{Field: "params", Detail: "betas/gammas length must equal layers"}
	}

	n := portfolio.N()
	q := BuildQUBO(portfolio)
	h, j := QUBOToIsing(q)

	bestCost := math.Inf(1)
	bestBitstring := make([]bool, n)

	dim := 1 << uint(n)
	psi := make([]complex128, dim)

	for s := 0; s < params.Samples; s++ {
		initializeSuperposition(psi, n)
		for l := 0; l < params.Layers; l++ {
			qaoaLayer(psi, n, h, j, params.Gammas[l], params.Betas[l])
		}
		x := measureAll(psi, n, rng)
		cost := QUBOCost(x, q)
		if cost < bestCost {
			bestCost = cost
			bestBitstring = x
		}
	}

	return &Result{
		BestBitstring:  bestBitstring,
		SelectedAssets: SelectedAssets(bestBitstring, portfolio.Names),
		ExpectedReturn: ExpectedReturn(bestBitstring, portfolio.Returns),
		Risk:           PortfolioRisk(bestBitstring, portfolio.Risk),
		Cost:           bestCost,
		SampleCount:    params.Samples,
	}, nil
}
