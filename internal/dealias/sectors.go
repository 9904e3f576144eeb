package dealias

import (
	"math"

	"github.com/wxradar/radarcore/internal/polar"
	"github.com/wxradar/radarcore/internal/settings"
)

// heightSectors partitions eligible VRAD bins into vertical height slabs
// (spec section 4.3). A bin is eligible for sector n when its height, its
// measurement, and its D quantity are all defined, and its height is at or
// below the sector ceiling.
func heightSectors(vol *polar.PolarVolume, vrad *polar.Moment, d [][][]float64, cfg *settings.Settings) (zStarts, zEnds []float64, zIdxs [][]polar.BinIndex) {
	zStart := vol.SiteHeight
	zDataMax := math.Inf(-1)
	any := false
	for e := 0; e < vrad.Nel; e++ {
		for a := 0; a < vrad.Naz[e]; a++ {
			for r := 0; r < vrad.Nr[e]; r++ {
				z := vrad.Zs[e][a][r]
				if math.IsNaN(z) {
					continue
				}
				any = true
				if z > zDataMax {
					zDataMax = z
				}
			}
		}
	}
	if !any {
		return nil, nil, nil
	}

	zCeil := math.Min(zDataMax, cfg.ZMax())
	dz := cfg.ZSectorSize()
	nl := int(math.Floor((zCeil-zStart)/dz)) + 1
	if nl < 1 {
		nl = 1
	}

	zStarts = make([]float64, nl)
	zEnds = make([]float64, nl)
	zIdxs = make([][]polar.BinIndex, nl)
	for n := 0; n < nl; n++ {
		zStarts[n] = zStart + float64(n)*dz
		zEnds[n] = zStarts[n] + dz
	}

	for e := 0; e < vrad.Nel; e++ {
		for a := 0; a < vrad.Naz[e]; a++ {
			for r := 0; r < vrad.Nr[e]; r++ {
				z := vrad.Zs[e][a][r]
				if math.IsNaN(z) || math.IsNaN(vrad.Meas[e][a][r]) || math.IsNaN(d[e][a][r]) {
					continue
				}
				// Inclusive at the ceiling: when zCeil == zDataMax (the
				// common case, zMax rarely binds), a strict "<" would
				// arbitrarily drop every bin tied for the maximum height.
				if z > zCeil {
					continue
				}
				n := int(math.Floor((z - zStart) / dz))
				if n < 0 {
					n = 0
				}
				if n >= nl {
					continue
				}
				zIdxs[n] = append(zIdxs[n], polar.BinIndex{E: e, A: a, R: r})
			}
		}
	}
	return zStarts, zEnds, zIdxs
}
