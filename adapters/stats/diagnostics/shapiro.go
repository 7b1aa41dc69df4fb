package diagnostics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// shapiroWilk computes the W statistic and its p-value for 3 <= n <= 5000
// samples, using Royston's AS R94 approximation for the coefficients and
// the normalizing transforms.
func shapiroWilk(sample []float64) (w, pValue float64, err error) {
	n := len(sample)
	if n < 3 {
		return 0, 0, fmt.Errorf("shapiro-wilk requires at least 3 observations, got %d", n)
	}
	if n > 5000 {
		return 0, 0, fmt.Errorf("shapiro-wilk approximation unreliable beyond 5000 observations, got %d", n)
	}

	x := append([]float64(nil), sample...)
	sort.Float64s(x)
	if x[0] == x[n-1] {
		return 0, 0, fmt.Errorf("shapiro-wilk undefined for constant sample")
	}

	norm := distuv.Normal{Mu: 0, Sigma: 1}

	// Expected normal order statistics (Blom scores).
	m := make([]float64, n)
	ssm := 0.0
	for i := 0; i < n; i++ {
		m[i] = norm.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		ssm += m[i] * m[i]
	}

	// Royston polynomial corrections for the extreme weights.
	a := make([]float64, n)
	u := 1 / math.Sqrt(float64(n))
	cn := m[n-1] / math.Sqrt(ssm)
	an := -2.706056*pow5(u) + 4.434685*pow4(u) - 2.071190*pow3(u) - 0.147981*u*u + 0.221157*u + cn

	var phi float64
	if n > 5 {
		cn1 := m[n-2] / math.Sqrt(ssm)
		an1 := -3.582633*pow5(u) + 5.682633*pow4(u) - 1.752461*pow3(u) - 0.293762*u*u + 0.042981*u + cn1
		phi = (ssm - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
		a[n-1] = an
		a[n-2] = an1
		a[0] = -an
		a[1] = -an1
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
	} else {
		phi = (ssm - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
		a[n-1] = an
		a[0] = -an
		for i := 1; i < n-1; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
	}

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	num := 0.0
	den := 0.0
	for i := 0; i < n; i++ {
		num += a[i] * x[i]
		den += (x[i] - mean) * (x[i] - mean)
	}
	w = num * num / den
	if w > 1 {
		w = 1
	}

	pValue = shapiroPValue(w, n)
	return w, pValue, nil
}

// shapiroPValue normalizes W to an approximate standard normal deviate and
// returns the upper-tail probability.
func shapiroPValue(w float64, n int) float64 {
	norm := distuv.Normal{Mu: 0, Sigma: 1}

	if n == 3 {
		// Exact for n=3.
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return clamp01(p)
	}

	fn := float64(n)
	var z float64
	if n <= 11 {
		gamma := 0.459*fn - 2.273
		wPrime := -math.Log(gamma - math.Log(1-w))
		mu := 0.5440 - 0.39978*fn + 0.025054*fn*fn - 0.0006714*fn*fn*fn
		sigma := math.Exp(1.3822 - 0.77857*fn + 0.062767*fn*fn - 0.0020322*fn*fn*fn)
		z = (wPrime - mu) / sigma
	} else {
		u := math.Log(fn)
		mu := -1.5861 - 0.31082*u - 0.083751*u*u + 0.0038915*u*u*u
		sigma := math.Exp(-0.4803 - 0.082676*u + 0.0030302*u*u)
		z = (math.Log(1-w) - mu) / sigma
	}
	return clamp01(1 - norm.CDF(z))
}

func clamp01(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func pow3(x float64) float64 { return x * x * x }
func pow4(x float64) float64 { return x * x * x * x }
func pow5(x float64) float64 { return x * x * x * x * x }
