package qaoa

// QUBOCost evaluates the QUBO energy of a bitstring x against Q.
func QUBOCost(x []bool, q [][]float64) float64 {
	cost := 0.0
	n := len(x)
	for i := 0; i < n; i++ {
		if !x[i] {
			continue
		}
		cost += q[i][i]
		for j := i + 1; j < n; j++ {
			if x[j] {
				cost += q[i][j]
			}
		}
	}
	return cost
}

// ExpectedReturn is the arithmetic mean of the returns of selected assets.
// It is an unweighted per-asset average, not a budget-weighted portfolio
// return; that is intentional, not a bug.
func ExpectedReturn(x []bool, returns []float64) float64 {
	sum := 0.0
	k := 0
	for i, selected := range x {
		if selected {
			sum += returns[i]
			k++
		}
	}
	if k == 0 {
		return 0
	}
	return sum / float64(k)
}

// PortfolioRisk sums risk[i][j] over every ordered pair of selected assets
// (including i == j) and divides by k^2, k the number of selected assets.
// The k^2 divisor (rather than k(k-1)) is intentional and preserved.
func PortfolioRisk(x []bool, risk [][]float64) float64 {
	selected := make([]int, 0, len(x))
	for i, s := range x {
		if s {
			selected = append(selected, i)
		}
	}
	k := len(selected)
	if k == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range selected {
		for _, j := range selected {
			sum += risk[i][j]
		}
	}
	return sum / float64(k*k)
}

// SelectedAssets returns the names of selected assets in ascending index
// order.
func SelectedAssets(x []bool, names []string) []string {
	out := make([]string, 0, len(x))
	for i, s := range x {
		if s {
			out = append(out, names[i])
		}
	}
	return out
}
