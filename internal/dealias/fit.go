package dealias

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/wxradar/radarcore/internal/polar"
	"github.com/wxradar/radarcore/internal/report"
	"github.com/wxradar/radarcore/internal/settings"
)

// fitWindModel solves, for every height sector with enough eligible bins,
// the 2-parameter linear least-squares problem of spec section 4.4:
//
//	minimize over (u, v):  sum_i ( -A_i*u + B_i*v - D_i )^2
//
// via gonum's normal-equations solve (grounded on spatialmodel-inmap's use
// of gonum.org/v1/gonum/mat for dense linear algebra), then evaluates the
// modelled radial velocity at every eligible bin in the sector and rejects
// over-speed solutions.
func fitWindModel(vrad *polar.Moment, mq *ModelQuantities, zIdxs [][]polar.BinIndex, cfg *settings.Settings, rep *report.Reporter) [][][]float64 {
	wModels := polar.NaNCube(vrad)

	for n, idxs := range zIdxs {
		if len(idxs) < cfg.MinGoodPoints() {
			continue // underdetermined sector, silently skipped
		}

		x := mat.NewDense(len(idxs), 2, nil)
		y := mat.NewVecDense(len(idxs), nil)
		for i, idx := range idxs {
			x.Set(i, 0, -mq.A[idx.E][idx.A][idx.R])
			x.Set(i, 1, mq.B[idx.E][idx.A][idx.R])
			y.SetVec(i, mq.D[idx.E][idx.A][idx.R])
		}

		var xtx mat.Dense
		xtx.Mul(x.T(), x)
		var xty mat.VecDense
		xty.MulVec(x.T(), y)

		var beta mat.VecDense
		if err := beta.SolveVec(&xtx, &xty); err != nil {
			rep.Warnf("sector %d: wind fit is singular, skipping (%v)", n, err)
			continue
		}
		u, v := beta.AtVec(0), beta.AtVec(1)

		var resid mat.VecDense
		resid.MulVec(x, &beta)
		resid.SubVec(&resid, y)
		rss := mat.Dot(&resid, &resid)
		rep.Debugf("sector %d: n=%d u=%.3f v=%.3f rss=%.3f", n, len(idxs), u, v, rss)

		for _, idx := range idxs {
			vm := mq.cosEl[idx.E] * (u*mq.sinAz[idx.E][idx.A] + v*mq.cosAz[idx.E][idx.A])
			if math.Abs(vm) < cfg.MaxWind() {
				wModels[idx.E][idx.A][idx.R] = vm
			}
		}
	}
	return wModels
}
