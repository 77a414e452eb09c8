// Package qaoa builds a QUBO from portfolio data, converts it to an Ising
// model, and simulates a QAOA circuit on a classical state vector to search
// for a low-cost asset selection. It has no I/O of its own: callers pass in
// an explicit RNG and get a Result back.
package qaoa

import "fmt"

// ShapeError reports a dimension or length mismatch in caller-supplied
// data. It is the only error the core ever returns.
type ShapeError struct {
	Field  string
	Detail string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("qaoa: shape error in %s: %s", e.Field, e.Detail)
}

// PortfolioData is the immutable input to the optimizer: candidate assets,
// their expected returns, their covariance/risk matrix, and the scalar
// weight applied to risk in the cost function.
type PortfolioData struct {
	Returns       []float64
	Risk          [][]float64
	Names         []string
	Budget        float64
	RiskTolerance float64
}

// N returns the number of assets.
func (p *PortfolioData) N() int {
	return len(p.Returns)
}

// NewPortfolioData validates shape invariants and returns a ready-to-use
// PortfolioData. Budget and RiskTolerance are carried through unchecked by
// the core; external validators enforce Budget > 0 and RiskTolerance >= 0.
func NewPortfolioData(returns []float64, risk [][]float64, names []string, budget, riskTolerance float64) (*PortfolioData, error) {
	n := len(returns)
	if len(names) != n {
		return nil, &ShapeError{Field: "names", Detail: fmt.Sprintf("expected length %d, got %d", n, len(names))}
	}
	if len(risk) != n {
		return nil, &ShapeError{Field: "risk", Detail: fmt.Sprintf("expected %d rows, got %d", n, len(risk))}
	}
	for i, row := range risk {
		if len(row) != n {
			return nil, &ShapeError{Field: "risk", Detail: fmt.Sprintf("row %d: expected length %d, got %d", i, n, len(row))}
		}
	}
	return &PortfolioData{
		Returns:       returns,
		Risk:          risk,
		Names:         names,
		Budget:        budget,
		RiskTolerance: riskTolerance,
	}, nil
}

// QAOAParameters is the immutable circuit configuration: the per-layer
// mixer and cost angles, and the number of shots to sample.
type QAOAParameters struct {
	Layers  int
	Betas   []float64
	Gammas  []float64
	Samples int
}

// NewQAOAParameters validates that Betas and Gammas each have length
// Layers.
func NewQAOAParameters(layers int, betas, gammas []float64, samples int) (*QAOAParameters, error) {
	if len(betas) != layers {
		return nil, &ShapeError{Field: "betas", Detail: fmt.Sprintf("expected length %d, got %d", layers, len(betas))}
	}
	if len(gammas) != layers {
		return nil, &ShapeError{Field: "gammas", Detail: fmt.Sprintf("expected length %d, got %d", layers, len(gammas))}
	}
	return &QAOAParameters{Layers: layers, Betas: betas, Gammas: gammas, Samples: samples}, nil
}

// Result is the outcome of a single optimize call.
type Result struct {
	BestBitstring   []bool
	SelectedAssets  []string
	ExpectedReturn  float64
	Risk            float64
	Cost            float64
	SampleCount     int
}
