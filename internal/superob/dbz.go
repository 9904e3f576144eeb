package superob

import (
	"math"

	"github.com/wxradar/radarcore/internal/polar"
	"github.com/wxradar/radarcore/internal/settings"
)

const thSentinel = 1e5

// aggregateDBZ produces the superobed DBZ/TH moment (spec section 4.8):
// clear-sky-aware wet/dry averaging gated by per-bin quality and a
// wet-fraction threshold.
func aggregateDBZ(src *polar.Moment, cfg *settings.Settings) *polar.Moment {
	out := prepareGrid(src, cfg)
	globalMin := cubeMin(src.Meas)

	for e := 0; e < src.Nel; e++ {
		bins := adaptiveRayBins(src.Naz[e], src.Nr[e], src.Rscale[e], cfg)
		naz := src.Naz[e]
		rolledMeas := rollAzimuth(src.Meas[e], bins.zmax)
		rolledQual := rollAzimuth(src.Quals[e], bins.zmax)
		rolledTh := rollAzimuth(src.Ths[e], bins.zmax)

		nrPrime := len(bins.startRay)
		for j := 0; j < nrPrime; j++ {
			startBin, endBin := bins.rangeBorders[j], bins.rangeBorders[j+1]
			nazPrime := len(bins.startRay[j])
			for k := 0; k < nazPrime; k++ {
				startRay, endRay := bins.startRay[j][k], bins.endRay[j][k]

				var wetSum, thWetSum float64
				var nWet, nDry, nThWet int
				for a := startRay; a < endRay; a++ {
					aIdx := ((a % naz) + naz) % naz
					for r := startBin; r < endBin; r++ {
						q := rolledQual[aIdx][r]
						if math.IsNaN(q) || q <= cfg.MinQuality() {
							continue
						}
						meas := rolledMeas[aIdx][r]
						if math.IsNaN(meas) {
							continue
						}
						if meas > cfg.DbzClearsky() {
							nWet++
							wetSum += meas
							th := rolledTh[aIdx][r]
							if !math.IsNaN(th) && th < thSentinel {
								thWetSum += th
								nThWet++
							}
						} else {
							nDry++
						}
					}
				}

				n := (endRay - startRay) * (endBin - startBin)
				switch {
				case float64(nWet) > cfg.DbzPercentage()*float64(n):
					out.Meas[e][k][j] = wetSum / float64(nWet)
					out.Quals[e][k][j] = 1.0
					if nThWet > 0 {
						out.Ths[e][k][j] = thWetSum / float64(nThWet)
					}
				case nDry > 0:
					out.Meas[e][k][j] = globalMin
					out.Quals[e][k][j] = 1.0
				}
			}
		}
	}
	return out
}

func cubeMin(cube [][][]float64) float64 {
	min := math.Inf(1)
	for _, plane := range cube {
		for _, row := range plane {
			for _, v := range row {
				if !math.IsNaN(v) && v < min {
					min = v
				}
			}
		}
	}
	return min
}
