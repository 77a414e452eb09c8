package qaoa

import "math/rand"

// initializeSuperposition resets psi to the zero state and applies a
// Hadamard to every qubit, producing a uniform superposition over all
// 2^n basis states.
func initializeSuperposition(psi []complex128, n int) {
	for i := range psi {
		psi[i] = 0
	}
	psi[0] = 1
	for q := 0; q < n; q++ {
		hadamard(psi, q)
	}
}

// applyMixer applies Rx(2*beta) to every qubit.
func applyMixer(psi []complex128, n int, beta float64) {
	for q := 0; q < n; q++ {
		rx(psi, q, 2*beta)
	}
}

// applyCostHamiltonian applies the diagonal cost unitary encoded by the
// Ising fields h and couplings J at angle gamma. Couplings whose magnitude
// is at or below couplingThreshold are skipped as numerically irrelevant.
func applyCostHamiltonian(psi []complex128, n int, h []float64, j [][]float64, gamma float64) {
	for i := 0; i < n; i++ {
		rz(psi, i, 2*gamma*h[i])
	}
	for i := 0; i < n; i++ {
		for k := i + 1; k < n; k++ {
			coupling := j[i][k]
			if coupling < 0 {
				coupling = -coupling
			}
			if coupling <= couplingThreshold {
				continue
			}
			cnot(psi, i, k)
			rz(psi, k, 2*gamma*j[i][k])
			cnot(psi, i, k)
		}
	}
}

// qaoaLayer applies one cost-then-mixer round.
func qaoaLayer(psi []complex128, n int, h []float64, j [][]float64, gamma, beta float64) {
	applyCostHamiltonian(psi, n, h, j, gamma)
	applyMixer(psi, n, beta)
}

// measureAll samples one basis state from |psi|^2 and returns the
// corresponding bitstring, bit i of the sampled index selecting asset i.
func measureAll(psi []complex128, n int, rng *rand.Rand) []bool {
	u := rng.Float64()
	cumulative := 0.0
	k := len(psi) - 1
	for i, amp := range psi {
		prob := real(amp) * real(amp)
		prob += imag(amp) * imag(amp)
		cumulative += prob
		if u <= cumulative {
			k = i
			break
		}
	}
	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		bits[i] = k&(1<<uint(i)) != 0
	}
	return bits
}
