package polar

import (
	"math"
	"testing"
)

func TestHeightMapNonNegativeAboveSiteForPositiveElevation(t *testing.T) {
	vol := &PolarVolume{SiteHeight: 150}
	vrad := NewMoment(1)
	vrad.Resize(0, 1, 3)
	vrad.Elangle[0] = 0.01 // radians, > 0
	vrad.SetRangeGeometry(0, 1000, 250)
	vol.Vrad = *vrad

	HeightMap(vol)

	for r, z := range vol.Vrad.Zs[0][0] {
		if z < vol.SiteHeight-1e-6 {
			t.Errorf("z[%d] = %v, want >= site height %v", r, z, vol.SiteHeight)
		}
	}
}

func TestHeightMapIncreasesWithRange(t *testing.T) {
	vol := &PolarVolume{SiteHeight: 0}
	vrad := NewMoment(1)
	vrad.Resize(0, 1, 4)
	vrad.Elangle[0] = 0.02
	vrad.SetRangeGeometry(0, 1000, 20000)
	vol.Vrad = *vrad

	HeightMap(vol)

	zs := vol.Vrad.Zs[0][0]
	for r := 1; r < len(zs); r++ {
		if zs[r] <= zs[r-1] {
			t.Errorf("z not increasing with range: z[%d]=%v <= z[%d]=%v", r, zs[r], r-1, zs[r-1])
		}
		if math.IsNaN(zs[r]) {
			t.Errorf("z[%d] is NaN", r)
		}
	}
}
