// Package polar provides the typed polar-volume data model shared by the
// dealiasing and superobing stages: per-elevation azimuth/range grids and
// the dense measurement cubes indexed by (elevation, azimuth, range).
//
// Layout follows the teacher's archive2 package in spirit (per-elevation
// slices, radians for angles, meters for range) but generalizes the fixed
// NEXRAD message31 fields into ragged per-elevation arrays sized exactly
// naz[e] x nr[e]; cells beyond those bounds simply don't exist, which
// satisfies the "padded with NaN" invariant without actually allocating
// padding.
package polar

import (
	"math"

	"github.com/samber/lo"
)

// Moment holds one radar moment (DBZ, TH-companion, or VRAD) across a full
// volume scan.
type Moment struct {
	Nel int

	Naz     []int
	Nr      []int
	Rstart  []float64
	Rscale  []float64
	Elangle []float64
	Vny     []float64 // NaN where not applicable (non-VRAD moments)

	Datasets []string

	Azimuths [][]float64 // [e][a], radians, uniformly spaced on [0, 2pi)
	Ranges   [][]float64 // [e][r], meters, centers

	Meas  [][][]float64 // [e][a][r], NaN = missing/invalid
	Ths   [][][]float64 // DBZ only: linear reflectivity, NaN = missing
	Quals [][][]float64 // DBZ only: total quality in [0, 1], NaN = missing
	Zs    [][][]float64 // VRAD only: height above ground, see HeightMap

	NazMax int
	NrMax  int
}

// NewMoment allocates the per-elevation scalar slices for a moment with nel
// elevations. Per-elevation grids (Azimuths, Ranges, Meas, ...) are left nil
// until Resize is called for each elevation.
func NewMoment(nel int) *Moment {
	return &Moment{
		Nel:      nel,
		Naz:      make([]int, nel),
		Nr:       make([]int, nel),
		Rstart:   make([]float64, nel),
		Rscale:   make([]float64, nel),
		Elangle:  make([]float64, nel),
		Vny:      fillNaN(make([]float64, nel)),
		Datasets: make([]string, nel),
		Azimuths: make([][]float64, nel),
		Ranges:   make([][]float64, nel),
		Meas:     make([][][]float64, nel),
		Ths:      make([][][]float64, nel),
		Quals:    make([][][]float64, nel),
		Zs:       make([][][]float64, nel),
	}
}

// Resize allocates the ragged (azimuth, range) grids for elevation e,
// padding Meas/Ths/Quals/Zs with NaN. Azimuths are filled with a uniform
// spacing over [0, 2pi); Ranges are left for the caller to fill via
// SetRangeGeometry since rstart/rscale are often set separately.
func (m *Moment) Resize(e, naz, nr int) {
	m.Naz[e] = naz
	m.Nr[e] = nr
	m.NazMax = lo.Max([]int{m.NazMax, naz})
	m.NrMax = lo.Max([]int{m.NrMax, nr})

	m.Azimuths[e] = make([]float64, naz)
	for a := 0; a < naz; a++ {
		m.Azimuths[e][a] = 2 * math.Pi * float64(a) / float64(naz)
	}
	m.Ranges[e] = make([]float64, nr)

	m.Meas[e] = newNaNGrid(naz, nr)
	m.Ths[e] = newNaNGrid(naz, nr)
	m.Quals[e] = newNaNGrid(naz, nr)
	m.Zs[e] = newNaNGrid(naz, nr)
}

// SetRangeGeometry fills Ranges[e] from rstart/rscale following the center
// convention ranges[e][r] = rstart[e] + r*rscale[e].
func (m *Moment) SetRangeGeometry(e int, rstart, rscale float64) {
	m.Rstart[e] = rstart
	m.Rscale[e] = rscale
	for r := range m.Ranges[e] {
		m.Ranges[e][r] = rstart + float64(r)*rscale
	}
}

// PolarVolume is the in-memory bundle handed to the core by the
// (out-of-scope) homogenizer: DBZ and VRAD moments, plus the products the
// dealiaser and superober attach as they run.
type PolarVolume struct {
	SiteHeight float64

	Dbz  Moment
	Vrad Moment

	// Dealiaser output.
	Dvrads  [][][]float64 // [e][a][r], same shape as Vrad.Meas
	ZStarts []float64
	ZEnds   []float64
	ZIdxs   [][]BinIndex
	WModels [][][]float64 // [e][a][r], same shape as Vrad.Meas

	// Superober output.
	Sdbz  Moment
	Svrad Moment
}

// DealiasedMoment builds a Moment around vol.Dvrads for the writer: same
// per-elevation geometry as vol.Vrad, Meas replaced with the unfolded cube,
// and a quality field of 1.0 wherever a bin was successfully unfolded, NaN
// elsewhere. It is the dealiaser's half of the spec section 2 data flow
// ("the dealiaser ... produces a new dealiased VRAD cube ... and writes it
// out"), separate from the superober's coarser write.
func (vol *PolarVolume) DealiasedMoment() Moment {
	src := &vol.Vrad
	out := Moment{
		Nel:      src.Nel,
		Naz:      append([]int(nil), src.Naz...),
		Nr:       append([]int(nil), src.Nr...),
		Rstart:   append([]float64(nil), src.Rstart...),
		Rscale:   append([]float64(nil), src.Rscale...),
		Elangle:  append([]float64(nil), src.Elangle...),
		Vny:      append([]float64(nil), src.Vny...),
		Datasets: append([]string(nil), src.Datasets...),
		Azimuths: src.Azimuths,
		Ranges:   src.Ranges,
		Meas:     vol.Dvrads,
		Quals:    make([][][]float64, src.Nel),
		NazMax:   src.NazMax,
		NrMax:    src.NrMax,
	}
	for e := 0; e < src.Nel; e++ {
		out.Quals[e] = newNaNGrid(src.Naz[e], src.Nr[e])
		for a := 0; a < src.Naz[e]; a++ {
			for r := 0; r < src.Nr[e]; r++ {
				if !math.IsNaN(vol.Dvrads[e][a][r]) {
					out.Quals[e][a][r] = 1.0
				}
			}
		}
	}
	return out
}

// BinIndex addresses a single (elevation, azimuth, range) bin.
type BinIndex struct {
	E, A, R int
}

func fillNaN(xs []float64) []float64 {
	for i := range xs {
		xs[i] = math.NaN()
	}
	return xs
}

func newNaNGrid(naz, nr int) [][]float64 {
	grid := make([][]float64, naz)
	for a := range grid {
		grid[a] = fillNaN(make([]float64, nr))
	}
	return grid
}

// NaNCube allocates an [e][naz[e]][nr[e]] cube shaped like m, filled with
// NaN. Used by the dealiaser for its A/B/D/WModels/Dvrads cubes.
func NaNCube(m *Moment) [][][]float64 {
	cube := make([][][]float64, m.Nel)
	for e := 0; e < m.Nel; e++ {
		cube[e] = newNaNGrid(m.Naz[e], m.Nr[e])
	}
	return cube
}
