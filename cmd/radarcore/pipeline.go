package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wxradar/radarcore/internal/dealias"
	"github.com/wxradar/radarcore/internal/odim"
	"github.com/wxradar/radarcore/internal/polar"
	"github.com/wxradar/radarcore/internal/report"
	"github.com/wxradar/radarcore/internal/settings"
	"github.com/wxradar/radarcore/internal/superob"
)

// fileResult summarizes one file's pipeline run for the CLI's summary line.
type fileResult struct {
	path            string
	dealiasWarnings int
	dealiasErrors   int
	superobWarnings int
	superobErrors   int
	fatal           error
}

// runFile runs the dealiasing and superobing stages (as enabled by cfg)
// against a single input file, then writes results through an
// odim.MemoryWriter. A fatal error in either stage aborts the file but
// never panics (spec section 7); the caller moves on to the next file.
//
// Per spec section 2's data flow, the two stages write independently: a
// successful dealiasing run writes the full-resolution dealiased VRAD cube
// tagged "dealiasing" whether or not superobing also runs afterward; a
// successful superobing run writes its coarser DBZ/VRAD moments tagged
// "superobing".
func runFile(path string, cfg *settings.Settings, dryRun bool) fileResult {
	res := fileResult{path: path}

	vol, err := polar.LoadFixture(path)
	if err != nil {
		res.fatal = err
		return res
	}

	w := odim.NewMemoryWriter()
	dealiased := false

	if cfg.Dealiasing() {
		rep := report.New("dealiasing")
		if err := dealias.Run(vol, cfg, rep); err != nil {
			res.fatal = err
		}
		res.dealiasWarnings = len(rep.Warnings)
		res.dealiasErrors = len(rep.Errors)
		dealiased = res.fatal == nil
	}

	if dealiased {
		dvrad := vol.DealiasedMoment()
		if err := odim.WriteMoment(w, &dvrad, odim.WriteOptions{
			NodataMeas: 255,
			Task:       "dealiasing",
		}); err != nil {
			res.fatal = fmt.Errorf("writing dealiased VRAD: %w", err)
			return res
		}
	}

	if cfg.Superobing() && res.fatal == nil {
		rep := report.New("superobing")
		if err := superob.Run(vol, cfg, rep); err != nil {
			res.fatal = err
		}
		res.superobWarnings = len(rep.Warnings)
		res.superobErrors = len(rep.Errors)
	}

	if res.fatal != nil {
		return res
	}

	if vol.Sdbz.Nel > 0 {
		if err := odim.WriteMoment(w, &vol.Sdbz, odim.WriteOptions{
			NodataMeas: 0,
			Task:       "superobing",
			IncludeTh:  true,
		}); err != nil {
			res.fatal = fmt.Errorf("writing superobed DBZ: %w", err)
			return res
		}
	}
	if vol.Svrad.Nel > 0 {
		if err := odim.WriteMoment(w, &vol.Svrad, odim.WriteOptions{
			NodataMeas: 255,
			Task:       "superobing",
		}); err != nil {
			res.fatal = fmt.Errorf("writing superobed VRAD: %w", err)
			return res
		}
	}

	if dryRun {
		logrus.WithField("file", path).Info(w.String())
	}

	return res
}
