package superob

import (
	"math"
	"reflect"
	"testing"

	"github.com/wxradar/radarcore/internal/polar"
	"github.com/wxradar/radarcore/internal/settings"
)

func cfgWith(binFactor, rayFactor int, maxArcSize float64, extra ...settings.Option) *settings.Settings {
	opts := append([]settings.Option{
		settings.WithRangeBinFactor(binFactor),
		settings.WithRayAngleFactor(rayFactor),
		settings.WithMaxArcSize(maxArcSize),
	}, extra...)
	cfg := settings.Default(opts...)
	return &cfg
}

// S4 - superob shape.
func TestScenarioS4Shape(t *testing.T) {
	src := polar.NewMoment(1)
	src.Resize(0, 16, 20)
	src.Elangle[0] = 0
	src.SetRangeGeometry(0, 0, 250)

	cfg := cfgWith(4, 3, 2000)
	out := prepareGrid(src, cfg)

	if out.Naz[0] != 5 {
		t.Errorf("sdbz.naz[0] = %d, want 5", out.Naz[0])
	}
	if out.Nr[0] != 5 {
		t.Errorf("sdbz.nr[0] = %d, want 5", out.Nr[0])
	}

	bins := adaptiveRayBins(16, 20, src.Rscale[0], cfg)
	want := []int{0, 4, 8, 12, 16, 20}
	if !reflect.DeepEqual(bins.rangeBorders, want) {
		t.Errorf("rangeBorders = %v, want %v", bins.rangeBorders, want)
	}
}

// buildCoarseSourceMoment creates a one-elevation, one-range-gate, naz-ray
// source moment sized so that a single coarse cell (j=0, k=0) covers every
// source ray: rayFactor=naz, binFactor=1, and a large maxArcSize so the
// adaptive shrink never kicks in (startRay=0, endRay=naz). extra overrides
// layer on top of that base, since Settings is immutable after construction.
func buildCoarseSourceMoment(naz int, extra ...settings.Option) (*polar.Moment, *settings.Settings) {
	src := polar.NewMoment(1)
	src.Resize(0, naz, 1)
	src.Elangle[0] = 0
	src.SetRangeGeometry(0, 10000, 250)
	cfg := cfgWith(1, naz, 1e9, extra...)
	return src, cfg
}

// S5 - superob wet/dry.
func TestScenarioS5WetDry(t *testing.T) {
	src, cfg := buildCoarseSourceMoment(12,
		settings.WithMinQuality(0.5),
		settings.WithDbzClearsky(0),
		settings.WithDbzPercentage(0.5),
	)

	for a := 0; a < 12; a++ {
		src.Quals[0][a][0] = 1.0
		if a < 8 {
			src.Meas[0][a][0] = 30
		} else {
			src.Meas[0][a][0] = -30
		}
	}

	out := aggregateDBZ(src, cfg)
	if math.IsNaN(out.Meas[0][0][0]) {
		t.Fatalf("sdbz.meas is NaN, want 30")
	}
	if math.Abs(out.Meas[0][0][0]-30) > 1e-9 {
		t.Errorf("sdbz.meas = %v, want 30", out.Meas[0][0][0])
	}
	if out.Quals[0][0][0] != 1.0 {
		t.Errorf("sdbz.quals = %v, want 1.0", out.Quals[0][0][0])
	}
}

// S6 - superob VRAD std gate.
func TestScenarioS6StdGate(t *testing.T) {
	src, cfg := buildCoarseSourceMoment(9,
		settings.WithVradMaxStd(1),
		settings.WithVradPercentage(0.5),
	)

	meas := []float64{1, 1, 1, 1, 1, 1, 1, 1, 10}
	cube := polar.NaNCube(src)
	for a, v := range meas {
		cube[0][a][0] = v
	}

	out := aggregateVRAD(src, cube, cfg)
	if !math.IsNaN(out.Meas[0][0][0]) {
		t.Errorf("svrad.meas = %v, want NaN (std gate should reject)", out.Meas[0][0][0])
	}
	if !math.IsNaN(out.Quals[0][0][0]) {
		t.Errorf("svrad.quals = %v, want NaN (left unset)", out.Quals[0][0][0])
	}
}

func TestAggregateVRADAcceptsLowStd(t *testing.T) {
	src, cfg := buildCoarseSourceMoment(9,
		settings.WithVradMaxStd(1),
		settings.WithVradPercentage(0.5),
	)

	cube := polar.NaNCube(src)
	for a := 0; a < 9; a++ {
		cube[0][a][0] = 5
	}

	out := aggregateVRAD(src, cube, cfg)
	if math.IsNaN(out.Meas[0][0][0]) {
		t.Fatalf("svrad.meas is NaN, want 5")
	}
	if math.Abs(out.Meas[0][0][0]-5) > 1e-9 {
		t.Errorf("svrad.meas = %v, want 5", out.Meas[0][0][0])
	}
}
