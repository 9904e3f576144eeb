package superob

import (
	"math"

	"github.com/wxradar/radarcore/internal/settings"
)

// rayBins holds the per-elevation coarse-cell source-index borders computed
// by spec section 4.7: which rectangle of original (azimuth, range) bins
// feeds coarse cell (j, k).
type rayBins struct {
	rangeBorders []int   // len nrPrime+1, or nrPrime+2 when binFactor does not divide nr
	startRay     [][]int // [j][k]
	endRay       [][]int // [j][k]
	zmax         int
}

// adaptiveRayBins computes the arc-length-limited sub-ray-count scheme of
// spec section 4.7 for one elevation, given its original ray count, range
// gate count, and range-gate spacing.
func adaptiveRayBins(naz, nr int, rscale float64, cfg *settings.Settings) rayBins {
	binFactor := cfg.RangeBinFactor()
	rayFactor := cfg.RayAngleFactor()
	nrPrime := nr / binFactor
	nazPrime := naz / rayFactor
	zmax := (rayFactor - 1) / 2

	rangeBorders := []int{0}
	for b := binFactor; b < nr; b += binFactor {
		rangeBorders = append(rangeBorders, b)
	}
	rangeBorders = append(rangeBorders, nr)

	L := (360.0 * 360.0 * cfg.MaxArcSize()) / (2 * math.Pi * float64(naz) * float64(binFactor) * rscale)

	type tier struct {
		limIdx, facSub int
	}
	tiers := make([]tier, 0, zmax+1)
	for z := 0; z <= zmax; z++ {
		fac := 2*(zmax-z) + 1
		limIdx := int(math.Floor(L/float64(fac)-1)) + 1
		if limIdx > len(rangeBorders) {
			limIdx = len(rangeBorders)
		}
		if limIdx < 0 {
			limIdx = 0
		}
		tiers = append(tiers, tier{limIdx, z})
	}
	if len(tiers) > 0 {
		tiers[len(tiers)-1].limIdx = len(rangeBorders)
	}

	facSub := func(j int) int {
		for _, t := range tiers {
			if j < t.limIdx {
				return t.facSub
			}
		}
		return zmax
	}

	startRay := make([][]int, nrPrime)
	endRay := make([][]int, nrPrime)
	for j := 0; j < nrPrime; j++ {
		startRay[j] = make([]int, nazPrime)
		endRay[j] = make([]int, nazPrime)
		fs := facSub(j)
		for k := 0; k < nazPrime; k++ {
			origStart := k * rayFactor
			origEnd := (k + 1) * rayFactor
			startRay[j][k] = origStart + fs
			endRay[j][k] = origEnd - fs
		}
	}

	return rayBins{
		rangeBorders: rangeBorders,
		startRay:     startRay,
		endRay:       endRay,
		zmax:         zmax,
	}
}
