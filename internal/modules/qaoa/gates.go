package qaoa

import (
	"math"
	"math/cmplx"
)

// hadamard applies H to qubit q of psi in place. Qubit 0 is the
// least-significant bit of the state index; this convention holds across
// every gate in this file and in measureAll.
func hadamard(psi []complex128, q int) {
	factor := complex(1/math.Sqrt2, 0)
	bit := 1 << uint(q)
	n := len(psi)
	next := make([]complex128, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			next[i] = factor * (psi[i] + psi[j])
			next[j] = factor * (psi[i] - psi[j])
		}
	}
	copy(psi, next)
}

// rx applies Rx(theta) to qubit q of psi in place.
func rx(psi []complex128, q int, theta float64) {
	bit := 1 << uint(q)
	n := len(psi)
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	next := make([]complex128, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			next[i] = c*psi[i] + s*psi[j]
			next[j] = s*psi[i] + c*psi[j]
		}
	}
	copy(psi, next)
}

// rz applies Rz(theta) to qubit q of psi in place.
func rz(psi []complex128, q int, theta float64) {
	bit := 1 << uint(q)
	plus := cmplx.Exp(complex(0, theta/2))
	minus := cmplx.Conj(plus)
	for i := range psi {
		if i&bit != 0 {
			psi[i] *= plus
		} else {
			psi[i] *= minus
		}
	}
}

// cnot applies a controlled-X with control qubit c and target qubit t.
func cnot(psi []complex128, c, t int) {
	cBit := 1 << uint(c)
	tBit := 1 << uint(t)
	for i := range psi {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			psi[i], psi[j] = psi[j], psi[i]
		}
	}
}
