package dealias

import (
	"math"

	"github.com/wxradar/radarcore/internal/polar"
	"github.com/wxradar/radarcore/internal/settings"
)

// unfold performs the Nyquist unfolding search of spec section 4.5: for
// every bin with both a model and a measurement defined, choose the integer
// k in [-N, N] minimizing |meas + 2*k*vny - wModel|, breaking ties toward
// the smaller |k|. k is visited in ascending |k| order (0, 1, -1, 2, -2, ...)
// and only a strict improvement replaces the current best, which makes the
// smaller-|k| tie-break automatic.
func unfold(vrad *polar.Moment, d, wModels [][][]float64, vnyMin float64, cfg *settings.Settings) [][][]float64 {
	dvrads := polar.NaNCube(vrad)
	if math.IsInf(vnyMin, 1) || vnyMin <= 0 {
		return dvrads
	}
	n := int(math.Floor(cfg.MaxWind() / vnyMin))
	ks := candidateKs(n)

	for e := 0; e < vrad.Nel; e++ {
		V := vrad.Vny[e]
		for a := 0; a < vrad.Naz[e]; a++ {
			for r := 0; r < vrad.Nr[e]; r++ {
				if math.IsNaN(d[e][a][r]) {
					continue
				}
				meas := vrad.Meas[e][a][r]
				model := wModels[e][a][r]
				if math.IsNaN(meas) || math.IsNaN(model) {
					continue
				}

				bestDist := math.Inf(1)
				bestK := 0
				for _, k := range ks {
					cand := meas + 2*float64(k)*V
					dist := math.Abs(cand - model)
					if dist < bestDist {
						bestDist = dist
						bestK = k
					}
				}
				dvrads[e][a][r] = meas + 2*float64(bestK)*V
			}
		}
	}
	return dvrads
}

// candidateKs returns integers from -n to n ordered by ascending |k|:
// 0, 1, -1, 2, -2, ..., n, -n.
func candidateKs(n int) []int {
	ks := make([]int, 0, 2*n+1)
	ks = append(ks, 0)
	for k := 1; k <= n; k++ {
		ks = append(ks, k, -k)
	}
	return ks
}
