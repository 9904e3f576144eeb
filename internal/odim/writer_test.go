package odim

import (
	"math"
	"testing"

	"github.com/wxradar/radarcore/internal/polar"
)

func TestWriteMomentPersistsAttributesAndDatasets(t *testing.T) {
	m := polar.NewMoment(1)
	m.Resize(0, 2, 3)
	m.Rscale[0] = 500
	m.Meas[0][0] = []float64{1, 2, math.NaN()}
	m.Meas[0][1] = []float64{3, 4, 5}
	m.Quals[0][0] = []float64{1, 1, 0}
	m.Quals[0][1] = []float64{1, 1, 1}

	w := NewMemoryWriter()
	if err := WriteMoment(w, m, WriteOptions{NodataMeas: 255, Task: "superobing"}); err != nil {
		t.Fatalf("WriteMoment returned error: %v", err)
	}

	nbins, ok := w.ReadAttribute("/dataset1/where", "nbins")
	if !ok || nbins != 3 {
		t.Errorf("nbins = %v (ok=%v), want 3", nbins, ok)
	}
	nrays, ok := w.ReadAttribute("/dataset1/where", "nrays")
	if !ok || nrays != 2 {
		t.Errorf("nrays = %v (ok=%v), want 2", nrays, ok)
	}
	task, ok := w.Attributes[attrKey("/dataset1/quality1/how", "task")]
	if !ok || task != "superobing" {
		t.Errorf("task = %v (ok=%v), want superobing", task, ok)
	}

	data, ok := w.Datasets[attrKey("/dataset1/data1", "data")]
	if !ok {
		t.Fatalf("data1/data dataset missing")
	}
	if len(data) != 2 || len(data[0]) != 3 {
		t.Errorf("data1/data shape = %dx%d, want 2x3", len(data), len(data[0]))
	}
	if data[0][2] != 255 {
		t.Errorf("nodata cell = %d, want 255", data[0][2])
	}
}
