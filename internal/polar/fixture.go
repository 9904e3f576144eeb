package polar

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Fixture is a compact synthetic-volume JSON format used by cmd/radarcore to
// drive the core end to end without a real ODIM-H5/HDF5 reader, which is out
// of scope for this module. A production deployment replaces LoadFixture
// with the homogenizer's PolarVolume handoff; nothing downstream of that
// handoff changes.
type Fixture struct {
	SiteHeight float64          `json:"site_height"`
	Dbz        *FixtureMoment   `json:"dbz,omitempty"`
	Vrad       *FixtureMoment   `json:"vrad,omitempty"`
}

// FixtureMoment mirrors Moment but in a JSON-friendly, fully ragged shape.
type FixtureMoment struct {
	Elevations []FixtureElevation `json:"elevations"`
}

// FixtureElevation is one elevation's worth of scalars plus its measurement
// grid, given as [azimuth][range].
type FixtureElevation struct {
	Elangle float64 `json:"elangle"`
	Rstart  float64 `json:"rstart"`
	Rscale  float64 `json:"rscale"`
	Vny     float64 `json:"vny,omitempty"`
	Dataset string  `json:"dataset,omitempty"`

	// Meas[a][r]; nil entries decode to NaN (missing). Ths/Quals apply to
	// DBZ fixtures only.
	Meas  [][]*float64 `json:"meas"`
	Ths   [][]*float64 `json:"ths,omitempty"`
	Quals [][]*float64 `json:"quals,omitempty"`
}

// LoadFixture reads a Fixture JSON file and builds a PolarVolume from it.
func LoadFixture(path string) (*PolarVolume, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %q: %w", path, err)
	}
	var fx Fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture %q: %w", path, err)
	}

	vol := &PolarVolume{SiteHeight: fx.SiteHeight}
	if fx.Dbz != nil {
		vol.Dbz = *buildMoment(fx.Dbz, true)
	}
	if fx.Vrad != nil {
		vol.Vrad = *buildMoment(fx.Vrad, false)
	}
	return vol, nil
}

func buildMoment(fm *FixtureMoment, hasQuality bool) *Moment {
	nel := len(fm.Elevations)
	m := NewMoment(nel)
	for e, fe := range fm.Elevations {
		naz := len(fe.Meas)
		nr := 0
		if naz > 0 {
			nr = len(fe.Meas[0])
		}
		m.Resize(e, naz, nr)
		m.Elangle[e] = fe.Elangle
		m.SetRangeGeometry(e, fe.Rstart, fe.Rscale)
		m.Datasets[e] = fe.Dataset
		if fe.Vny != 0 {
			m.Vny[e] = fe.Vny
		}
		for a := 0; a < naz; a++ {
			for r := 0; r < nr; r++ {
				m.Meas[e][a][r] = derefOrNaN(fe.Meas[a][r])
				if hasQuality {
					if fe.Ths != nil {
						m.Ths[e][a][r] = derefOrNaN(fe.Ths[a][r])
					}
					if fe.Quals != nil {
						m.Quals[e][a][r] = derefOrNaN(fe.Quals[a][r])
					}
				}
			}
		}
	}
	return m
}

func derefOrNaN(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}
