package handlers

import (
	"fmt"

	"github.com/aristath/qoptimizer/internal/modules/qaoa"
)

// validateExternal enforces the request-level invariants the core assumes
// are already true: positive budget, non-negative risk tolerance,
// positive layer count, positive sample count. Shape mismatches within
// portfolio itself are caught earlier by NewPortfolioData.
func validateExternal(portfolio *qaoa.PortfolioData, layers, samples int) error {
	if portfolio.Budget <= 0 {
		return fmt.Errorf("budget must be positive, got %v", portfolio.Budget)
	}
	if portfolio.RiskTolerance < 0 {
		return fmt.Errorf("risk_tolerance must be non-negative, got %v", portfolio.RiskTolerance)
	}
	if layers <= 0 {
		return fmt.Errorf("layers must be positive, got %d", layers)
	}
	if samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", samples)
	}
	return nil
}

func parsePositiveInt(s string) (int, error) {
	n := 0
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("value must be positive, got %d", n)
	}
	return n, nil
}
