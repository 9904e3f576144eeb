// Package dealias implements the Doppler velocity dealiasing pipeline:
// model quantities (spec section 4.2), height sectors (4.3), the per-sector
// wind fit (4.4), and the Nyquist unfolding search (4.5).
package dealias

import (
	"math"

	"github.com/wxradar/radarcore/internal/polar"
)

// ModelQuantities holds the per-bin A, B, D cubes (spec section 4.2) and the
// smallest Nyquist velocity across elevations, which bounds the unfolding
// search in section 4.5.
type ModelQuantities struct {
	A, B, D [][][]float64
	VnyMin  float64

	cosEl  []float64
	cosAz  [][]float64
	sinAz  [][]float64
}

// computeModelQuantities builds A, B, D for every VRAD bin, per spec
// section 4.2. f1(v) = sin(pi*v/V); f3(v) = (V/pi)*cos(pi*v/V). D is the
// wrap-aware azimuthal derivative of f3.
func computeModelQuantities(vrad *polar.Moment) *ModelQuantities {
	mq := &ModelQuantities{
		A:      polar.NaNCube(vrad),
		B:      polar.NaNCube(vrad),
		D:      polar.NaNCube(vrad),
		VnyMin: math.Inf(1),
		cosEl:  make([]float64, vrad.Nel),
		cosAz:  make([][]float64, vrad.Nel),
		sinAz:  make([][]float64, vrad.Nel),
	}

	for e := 0; e < vrad.Nel; e++ {
		V := vrad.Vny[e]
		if !math.IsNaN(V) && V > 0 && V < mq.VnyMin {
			mq.VnyMin = V
		}

		mq.cosEl[e] = math.Cos(vrad.Elangle[e])
		naz := vrad.Naz[e]
		mq.cosAz[e] = make([]float64, naz)
		mq.sinAz[e] = make([]float64, naz)
		for a := 0; a < naz; a++ {
			mq.cosAz[e][a] = math.Cos(vrad.Azimuths[e][a])
			mq.sinAz[e][a] = math.Sin(vrad.Azimuths[e][a])
		}

		// f3 is needed at every azimuth before D can be differenced, so
		// compute it into a scratch row-major cache first.
		f3 := make([][]float64, naz)
		for a := 0; a < naz; a++ {
			nr := vrad.Nr[e]
			f3[a] = make([]float64, nr)
			for r := 0; r < nr; r++ {
				v := vrad.Meas[e][a][r]
				f3[a][r] = (V / math.Pi) * math.Cos(math.Pi*v/V)
			}
		}

		for a := 0; a < naz; a++ {
			aNext := (a + 1) % naz
			aPrev := (a - 1 + naz) % naz
			dAz := vrad.Azimuths[e][aNext] - vrad.Azimuths[e][aPrev]
			if a == 0 || a == naz-1 {
				dAz += 2 * math.Pi
			}

			for r := 0; r < vrad.Nr[e]; r++ {
				v := vrad.Meas[e][a][r]
				if math.IsNaN(v) {
					continue // A, B, D stay NaN for this bin
				}
				f1 := math.Sin(math.Pi * v / V)
				mq.A[e][a][r] = mq.cosEl[e] * mq.cosAz[e][a] * f1
				mq.B[e][a][r] = mq.cosEl[e] * mq.sinAz[e][a] * f1
				mq.D[e][a][r] = (f3[aNext][r] - f3[aPrev][r]) / dAz
			}
		}
	}
	return mq
}
