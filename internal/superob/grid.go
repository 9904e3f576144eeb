// Package superob implements the spatial downsampling of DBZ/TH and VRAD
// moments onto a coarser polar grid: grid preparation (spec section 4.6),
// adaptive ray-bin borders (4.7), and the DBZ/VRAD aggregators (4.8, 4.9).
package superob

import (
	"github.com/wxradar/radarcore/internal/polar"
	"github.com/wxradar/radarcore/internal/settings"
)

// prepareGrid computes the coarse per-elevation dimensions and coordinate
// arrays for a source moment (spec section 4.6). It returns a Moment whose
// Meas/Ths/Quals are allocated (NaN-filled) and ready for the aggregators to
// fill in, and whose scalar geometry fields are fully populated.
func prepareGrid(src *polar.Moment, cfg *settings.Settings) *polar.Moment {
	out := polar.NewMoment(src.Nel)
	binFactor := cfg.RangeBinFactor()
	rayFactor := cfg.RayAngleFactor()

	for e := 0; e < src.Nel; e++ {
		nrPrime := src.Nr[e] / binFactor
		nazPrime := src.Naz[e] / rayFactor

		out.Resize(e, nazPrime, nrPrime)
		out.Elangle[e] = src.Elangle[e]
		out.Datasets[e] = src.Datasets[e]
		out.Vny[e] = src.Vny[e]

		rscalePrime := float64(binFactor) * src.Rscale[e]
		out.SetRangeGeometry(e, src.Rstart[e], rscalePrime)
	}
	return out
}
