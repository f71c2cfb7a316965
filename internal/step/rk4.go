package step

import "regulab/internal/ss"

// rk4 is a classical fixed-step Runge-Kutta integrator with reusable
// scratch buffers for the state-space model.
type rk4 struct {
	k1, k2, k3, k4 []float64
	scratch        []float64
}

func newRK4(n int) *rk4 {
	return &rk4{
		k1:      make([]float64, n),
		k2:      make([]float64, n),
		k3:      make([]float64, n),
		k4:      make([]float64, n),
		scratch: make([]float64, n),
	}
}

// step advances x in place by dt under constant input u.
func (r *rk4) step(m *ss.StateSpace, x []float64, u, dt float64) {
	n := len(x)

	m.Derivative(r.k1, x, u)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	m.Derivative(r.k2, r.scratch, u)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	m.Derivative(r.k3, r.scratch, u)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	m.Derivative(r.k4, r.scratch, u)

	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		x[i] += dt6 * (r.k1[i] + 2*r.k2[i] + 2*r.k3[i] + r.k4[i])
	}
}
