package superob

import (
	"math"

	"github.com/wxradar/radarcore/internal/polar"
	"github.com/wxradar/radarcore/internal/report"
	"github.com/wxradar/radarcore/internal/settings"
)

// Run executes the superobing pipeline (spec sections 4.6-4.9) against vol,
// attaching Sdbz and/or Svrad. It prefers the dealiased VRAD cube
// (vol.Dvrads) over raw VRAD measurements when dealiasing has already run.
//
// Error handling follows spec section 7: both DBZ and VRAD empty is fatal;
// an entirely-NaN moment on either side is a warning, not an error, and
// still produces coarse NaN output.
func Run(vol *polar.PolarVolume, cfg *settings.Settings, rep *report.Reporter) error {
	if vol.Dbz.Nel == 0 && vol.Vrad.Nel == 0 {
		return rep.Errorf("superobing: both DBZ and VRAD moments are empty")
	}

	if vol.Dbz.Nel > 0 {
		if allNaN(vol.Dbz.Meas) {
			rep.Warnf("superobing: DBZ moment is entirely NaN")
		}
		vol.Sdbz = *aggregateDBZ(&vol.Dbz, cfg)
	}

	if vol.Vrad.Nel > 0 {
		srcCube := vol.Dvrads
		if srcCube == nil {
			srcCube = vol.Vrad.Meas
		}
		if allNaN(srcCube) {
			rep.Warnf("superobing: VRAD source is entirely NaN")
		}
		vol.Svrad = *aggregateVRAD(&vol.Vrad, srcCube, cfg)
	}

	return nil
}

func allNaN(cube [][][]float64) bool {
	for _, plane := range cube {
		for _, row := range plane {
			for _, v := range row {
				if !math.IsNaN(v) {
					return false
				}
			}
		}
	}
	return true
}
