package dealias

import (
	"math"

	"github.com/wxradar/radarcore/internal/polar"
	"github.com/wxradar/radarcore/internal/report"
	"github.com/wxradar/radarcore/internal/settings"
)

// Run executes the dealiasing pipeline (spec sections 4.1-4.5) against vol,
// attaching Dvrads, ZStarts, ZEnds, ZIdxs and WModels on success.
//
// Error handling follows spec section 7: an empty or entirely-NaN VRAD
// moment is fatal for the file and returned as an error; an underdetermined
// height sector is silently skipped; an over-speed wind solution drops only
// the affected bin.
func Run(vol *polar.PolarVolume, cfg *settings.Settings, rep *report.Reporter) error {
	vrad := &vol.Vrad
	if vrad.Nel == 0 {
		return rep.Errorf("dealiasing: VRAD moment is empty")
	}
	if allNaN(vrad) {
		return rep.Errorf("dealiasing: VRAD moment is entirely NaN")
	}

	polar.HeightMap(vol)

	mq := computeModelQuantities(vrad)
	if math.IsInf(mq.VnyMin, 1) {
		return rep.Errorf("dealiasing: no elevation has a usable Nyquist velocity")
	}

	zStarts, zEnds, zIdxs := heightSectors(vol, vrad, mq.D, cfg)
	wModels := fitWindModel(vrad, mq, zIdxs, cfg, rep)
	dvrads := unfold(vrad, mq.D, wModels, mq.VnyMin, cfg)

	vol.ZStarts = zStarts
	vol.ZEnds = zEnds
	vol.ZIdxs = zIdxs
	vol.WModels = wModels
	vol.Dvrads = dvrads
	return nil
}

func allNaN(m *polar.Moment) bool {
	for e := 0; e < m.Nel; e++ {
		for a := 0; a < m.Naz[e]; a++ {
			for r := 0; r < m.Nr[e]; r++ {
				if !math.IsNaN(m.Meas[e][a][r]) {
					return false
				}
			}
		}
	}
	return true
}
