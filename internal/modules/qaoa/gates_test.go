package qaoa

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stateNorm(psi []complex128) float64 {
	sum := 0.0
	for _, amp := range psi {
		sum += real(amp)*real(amp) + imag(amp)*imag(amp)
	}
	return sum
}

func statesClose(t *testing.T, want, got []complex128, tol float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, real(want[i]), real(got[i]), tol)
		assert.InDelta(t, imag(want[i]), imag(got[i]), tol)
	}
}

func TestInitializeSuperposition_UniformAmplitude(t *testing.T) {
	n := 3
	psi := make([]complex128, 1<<uint(n))
	initializeSuperposition(psi, n)

	expected := 1 / math.Sqrt(float64(len(psi)))
	for _, amp := range psi {
		assert.InDelta(t, expected, real(amp), 1e-12)
		assert.InDelta(t, 0, imag(amp), 1e-12)
	}
	assert.InDelta(t, 1.0, stateNorm(psi), 1e-12)
}

func TestApplyMixer_ZeroAngleIsIdentity(t *testing.T) {
	n := 2
	psi := make([]complex128, 1<<uint(n))
	initializeSuperposition(psi, n)
	before := append([]complex128(nil), psi...)

	applyMixer(psi, n, 0)

	statesClose(t, before, psi, 1e-12)
}

func TestApplyCostHamiltonian_ZeroAngleIsIdentity(t *testing.T) {
	n := 2
	psi := make([]complex128, 1<<uint(n))
	initializeSuperposition(psi, n)
	before := append([]complex128(nil), psi...)

	h := []float64{0.3, -0.5}
	j := [][]float64{{0, 0.2}, {0.2, 0}}
	applyCostHamiltonian(psi, n, h, j, 0)

	statesClose(t, before, psi, 1e-12)
}

func TestApplyMixer_Unitary(t *testing.T) {
	n := 3
	psi := make([]complex128, 1<<uint(n))
	initializeSuperposition(psi, n)
	before := append([]complex128(nil), psi...)

	beta := 0.7
	applyMixer(psi, n, beta)
	applyMixer(psi, n, -beta)

	statesClose(t, before, psi, 1e-10)
}

func TestApplyCostHamiltonian_Unitary(t *testing.T) {
	n := 3
	psi := make([]complex128, 1<<uint(n))
	initializeSuperposition(psi, n)
	before := append([]complex128(nil), psi...)

	h := []float64{0.2, -0.1, 0.4}
	j := [][]float64{
		{0, 0.15, 0.05},
		{0.15, 0, 0.3},
		{0.05, 0.3, 0},
	}
	gamma := 0.9
	applyCostHamiltonian(psi, n, h, j, gamma)
	applyCostHamiltonian(psi, n, h, j, -gamma)

	statesClose(t, before, psi, 1e-10)
}

func TestCouplingThreshold_SkipsNegligibleCoupling(t *testing.T) {
	n := 2
	psi := make([]complex128, 1<<uint(n))
	initializeSuperposition(psi, n)
	before := append([]complex128(nil), psi...)

	h := []float64{0, 0}
	j := [][]float64{{0, couplingThreshold / 2}, {couplingThreshold / 2, 0}}
	applyCostHamiltonian(psi, n, h, j, 1.0)

	statesClose(t, before, psi, 1e-12)
}
