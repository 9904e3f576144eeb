package odim

import (
	"fmt"
	"math"

	"github.com/wxradar/radarcore/internal/polar"
)

// QuantizeVariable reduces a 2-D double field to 8-bit using the field's own
// min/max (spec section 4.10):
//
//	gain   = (max - min) / 254         (or 1 if that is ~0)
//	offset = (254*min - max) / 253
//
// NaN cells emit nodata. Non-NaN cells quantize to floor((v-offset+0.5*gain)/gain),
// clamped to [0, 254].
func QuantizeVariable(field [][]float64, nodata byte) (data [][]byte, gain, offset float64) {
	lo, hi, any := minMax(field)
	if !any {
		gain, offset = 1, 0
	} else {
		gain = (hi - lo) / 254
		if math.Abs(gain) < 1e-12 {
			gain = 1
		}
		offset = (254*lo - hi) / 253
	}
	return quantize(field, gain, offset, nodata), gain, offset
}

// QuantizeQuality reduces a quality field (values in [0, 1]) to 8-bit using
// the fixed gain/offset convention for quality groups (spec section 4.10).
func QuantizeQuality(field [][]float64, nodata byte) (data [][]byte, gain, offset float64) {
	gain, offset = 1.0/255.0, 0.0
	return quantize(field, gain, offset, nodata), gain, offset
}

func quantize(field [][]float64, gain, offset float64, nodata byte) [][]byte {
	out := make([][]byte, len(field))
	for i, row := range field {
		out[i] = make([]byte, len(row))
		for j, v := range row {
			if math.IsNaN(v) {
				out[i][j] = nodata
				continue
			}
			b := math.Floor((v - offset + 0.5*gain) / gain)
			if b < 0 {
				b = 0
			}
			if b > 254 {
				b = 254
			}
			out[i][j] = byte(b)
		}
	}
	return out
}

func minMax(field [][]float64) (lo, hi float64, any bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range field {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			any = true
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return
}

// WriteOptions configures WriteMoment for one of the quantized outputs the
// core produces (dealiased VRAD, superobed DBZ/TH, superobed VRAD).
type WriteOptions struct {
	// NodataMeas is the sentinel byte for missing data1 cells (255 for
	// VRAD per spec section 4.10).
	NodataMeas byte
	// Task labels the quality group's /quality1/how:task attribute
	// ("dealiasing" or "superobing").
	Task string
	// IncludeTh writes a /data2/data dataset from m.Ths (DBZ moments only).
	IncludeTh bool
}

// WriteMoment writes every elevation of m through w, following the
// persisted-state layout of spec section 6: /where attributes, /data1 (and
// optionally /data2) quantized datasets with their /what attributes, and a
// /quality1 quantized dataset with its /what and /how attributes.
func WriteMoment(w Writer, m *polar.Moment, opts WriteOptions) error {
	for e := 0; e < m.Nel; e++ {
		path := fmt.Sprintf("/dataset%d", e+1)

		if err := w.WriteAttribute(path+"/where", "nbins", m.Nr[e]); err != nil {
			return err
		}
		if err := w.WriteAttribute(path+"/where", "nrays", m.Naz[e]); err != nil {
			return err
		}
		if err := w.WriteAttribute(path+"/where", "rscale", m.Rscale[e]); err != nil {
			return err
		}

		measData, measGain, measOffset := QuantizeVariable(m.Meas[e], opts.NodataMeas)
		if err := w.WriteDataset(path+"/data1", "data", measData); err != nil {
			return err
		}
		if err := writeWhat(w, path+"/data1/what", measGain, measOffset, 0, float64(opts.NodataMeas)); err != nil {
			return err
		}

		if opts.IncludeTh && m.Ths[e] != nil {
			thData, thGain, thOffset := QuantizeVariable(m.Ths[e], opts.NodataMeas)
			if err := w.WriteDataset(path+"/data2", "data", thData); err != nil {
				return err
			}
			if err := writeWhat(w, path+"/data2/what", thGain, thOffset, 0, float64(opts.NodataMeas)); err != nil {
				return err
			}
		}

		if m.Quals[e] != nil {
			qData, qGain, qOffset := QuantizeQuality(m.Quals[e], 0)
			if err := w.WriteDataset(path+"/quality1", "data", qData); err != nil {
				return err
			}
			if err := w.WriteAttribute(path+"/quality1/what", "gain", qGain); err != nil {
				return err
			}
			if err := w.WriteAttribute(path+"/quality1/what", "offset", qOffset); err != nil {
				return err
			}
			if err := w.WriteAttribute(path+"/quality1/how", "task", opts.Task); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeWhat(w Writer, path string, gain, offset, undetect, nodata float64) error {
	if err := w.WriteAttribute(path, "gain", gain); err != nil {
		return err
	}
	if err := w.WriteAttribute(path, "offset", offset); err != nil {
		return err
	}
	if err := w.WriteAttribute(path, "undetect", undetect); err != nil {
		return err
	}
	if err := w.WriteAttribute(path, "nodata", nodata); err != nil {
		return err
	}
	return nil
}
