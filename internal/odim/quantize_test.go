package odim

import (
	"math"
	"testing"
)

// Round-trip quantization: for any 2-D double field, after encoding with
// (gain, offset) and decoding v' = gain*b + offset, |v - v'| <= gain for
// non-NaN cells (spec section 8).
func TestQuantizeVariableRoundTrip(t *testing.T) {
	field := [][]float64{
		{-20, -10, 0, math.NaN()},
		{10, 20, 30, 40},
	}
	data, gain, offset := QuantizeVariable(field, 255)

	for i, row := range field {
		for j, v := range row {
			b := data[i][j]
			if math.IsNaN(v) {
				if b != 255 {
					t.Errorf("field[%d][%d] NaN encoded as %d, want nodata 255", i, j, b)
				}
				continue
			}
			decoded := gain*float64(b) + offset
			if math.Abs(v-decoded) > gain+1e-9 {
				t.Errorf("field[%d][%d]=%v decoded=%v diff=%v exceeds gain=%v", i, j, v, decoded, math.Abs(v-decoded), gain)
			}
		}
	}
}

func TestQuantizeVariableConstantField(t *testing.T) {
	field := [][]float64{{5, 5}, {5, 5}}
	_, gain, _ := QuantizeVariable(field, 255)
	if gain != 1 {
		t.Errorf("gain for a constant field = %v, want 1 (guarded against ~0)", gain)
	}
}

func TestQuantizeQualityFixedGain(t *testing.T) {
	field := [][]float64{{0, 0.5, 1.0}}
	data, gain, offset := QuantizeQuality(field, 0)
	if gain != 1.0/255.0 || offset != 0 {
		t.Fatalf("gain/offset = %v/%v, want 1/255, 0", gain, offset)
	}
	for j, v := range field[0] {
		decoded := gain*float64(data[0][j]) + offset
		if math.Abs(v-decoded) > gain+1e-9 {
			t.Errorf("quality[%d]=%v decoded=%v exceeds gain", j, v, decoded)
		}
	}
}
