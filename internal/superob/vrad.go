package superob

import (
	"math"

	"github.com/wxradar/radarcore/internal/polar"
	"github.com/wxradar/radarcore/internal/settings"
)

// aggregateVRAD produces the superobed VRAD moment (spec section 4.9):
// mean/std gating with a good-fraction threshold. srcCube is either the
// dealiased VRAD cube or the raw VRAD measurement cube, per the caller's
// choice (spec section 4.9: "if dealiasing was performed, use dvrads; else
// use raw vrad.meas").
func aggregateVRAD(src *polar.Moment, srcCube [][][]float64, cfg *settings.Settings) *polar.Moment {
	out := prepareGrid(src, cfg)

	for e := 0; e < src.Nel; e++ {
		bins := adaptiveRayBins(src.Naz[e], src.Nr[e], src.Rscale[e], cfg)
		naz := src.Naz[e]
		rolled := rollAzimuth(srcCube[e], bins.zmax)

		nrPrime := len(bins.startRay)
		for j := 0; j < nrPrime; j++ {
			startBin, endBin := bins.rangeBorders[j], bins.rangeBorders[j+1]
			nazPrime := len(bins.startRay[j])
			for k := 0; k < nazPrime; k++ {
				startRay, endRay := bins.startRay[j][k], bins.endRay[j][k]

				var sum, sumSq float64
				var nGood int
				for a := startRay; a < endRay; a++ {
					aIdx := ((a % naz) + naz) % naz
					for r := startBin; r < endBin; r++ {
						v := rolled[aIdx][r]
						if math.IsNaN(v) {
							continue
						}
						nGood++
						sum += v
						sumSq += v * v
					}
				}

				n := (endRay - startRay) * (endBin - startBin)
				if nGood == 0 {
					continue
				}
				avg := sum / float64(nGood)
				variance := (sumSq - sum*avg) / float64(nGood)
				if variance < 0 {
					variance = 0
				}
				std := math.Sqrt(variance)

				if float64(nGood) > cfg.VradPercentage()*float64(n) && std < cfg.VradMaxStd() {
					out.Meas[e][k][j] = avg
					out.Quals[e][k][j] = 1.0
				}
			}
		}
	}
	return out
}
