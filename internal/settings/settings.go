// Package settings loads the read-only configuration value consumed by the
// dealiasing and superobing stages (spec section 6, "Settings consumed").
//
// Grounded on inmap/cmd/config.go's TOML-backed ConfigData for the
// decode-from-file shape, but Settings itself keeps its fields unexported:
// callers read it through the accessor methods below and override individual
// fields with an Option, the same functional-options shape alitto/pond uses
// for MinWorkers/Context elsewhere in this repo. A Settings value, once
// returned by Default or Load, can never be mutated through any exported
// surface — matching spec section 5's "settings are read-only after parse."
package settings

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Settings holds every knob enumerated in spec section 6. The zero value is
// not meaningful on its own — always obtain one via Default or Load.
type Settings struct {
	dealiasing bool
	superobing bool

	zSectorSize   float64
	zMax          float64
	minGoodPoints int
	maxWind       float64

	rangeBinFactor int
	rayAngleFactor int
	maxArcSize     float64

	minQuality     float64
	dbzClearsky    float64
	dbzPercentage  float64
	vradPercentage float64
	vradMaxStd     float64
}

// wireSettings mirrors Settings with exported, TOML-tagged fields so
// BurntSushi/toml has something to decode into. It never escapes this file.
type wireSettings struct {
	Dealiasing bool `toml:"dealiasing"`
	Superobing bool `toml:"superobing"`

	ZSectorSize   float64 `toml:"z_sector_size"`
	ZMax          float64 `toml:"z_max"`
	MinGoodPoints int     `toml:"min_good_points"`
	MaxWind       float64 `toml:"max_wind"`

	RangeBinFactor int     `toml:"range_bin_factor"`
	RayAngleFactor int     `toml:"ray_angle_factor"`
	MaxArcSize     float64 `toml:"max_arc_size"`

	MinQuality     float64 `toml:"min_quality"`
	DbzClearsky    float64 `toml:"dbz_clearsky"`
	DbzPercentage  float64 `toml:"dbz_percentage"`
	VradPercentage float64 `toml:"vrad_percentage"`
	VradMaxStd     float64 `toml:"vrad_max_std"`
}

func defaultWire() wireSettings {
	return wireSettings{
		Dealiasing:     true,
		Superobing:     true,
		ZSectorSize:    1000,
		ZMax:           10000,
		MinGoodPoints:  50,
		MaxWind:        50,
		RangeBinFactor: 4,
		RayAngleFactor: 5,
		MaxArcSize:     2000,
		MinQuality:     0.5,
		DbzClearsky:    -32,
		DbzPercentage:  0.2,
		VradPercentage: 0.2,
		VradMaxStd:     2,
	}
}

func fromWire(w wireSettings) Settings {
	return Settings{
		dealiasing:     w.Dealiasing,
		superobing:     w.Superobing,
		zSectorSize:    w.ZSectorSize,
		zMax:           w.ZMax,
		minGoodPoints:  w.MinGoodPoints,
		maxWind:        w.MaxWind,
		rangeBinFactor: w.RangeBinFactor,
		rayAngleFactor: w.RayAngleFactor,
		maxArcSize:     w.MaxArcSize,
		minQuality:     w.MinQuality,
		dbzClearsky:    w.DbzClearsky,
		dbzPercentage:  w.DbzPercentage,
		vradPercentage: w.VradPercentage,
		vradMaxStd:     w.VradMaxStd,
	}
}

// Option overrides a single field while Default or Load builds a Settings
// value. It never touches an already-built Settings.
type Option func(*wireSettings)

func WithDealiasing(v bool) Option     { return func(w *wireSettings) { w.Dealiasing = v } }
func WithSuperobing(v bool) Option     { return func(w *wireSettings) { w.Superobing = v } }
func WithZSectorSize(v float64) Option { return func(w *wireSettings) { w.ZSectorSize = v } }
func WithZMax(v float64) Option        { return func(w *wireSettings) { w.ZMax = v } }
func WithMinGoodPoints(v int) Option   { return func(w *wireSettings) { w.MinGoodPoints = v } }
func WithMaxWind(v float64) Option     { return func(w *wireSettings) { w.MaxWind = v } }
func WithRangeBinFactor(v int) Option  { return func(w *wireSettings) { w.RangeBinFactor = v } }
func WithRayAngleFactor(v int) Option  { return func(w *wireSettings) { w.RayAngleFactor = v } }
func WithMaxArcSize(v float64) Option  { return func(w *wireSettings) { w.MaxArcSize = v } }
func WithMinQuality(v float64) Option  { return func(w *wireSettings) { w.MinQuality = v } }
func WithDbzClearsky(v float64) Option { return func(w *wireSettings) { w.DbzClearsky = v } }
func WithDbzPercentage(v float64) Option {
	return func(w *wireSettings) { w.DbzPercentage = v }
}
func WithVradPercentage(v float64) Option {
	return func(w *wireSettings) { w.VradPercentage = v }
}
func WithVradMaxStd(v float64) Option { return func(w *wireSettings) { w.VradMaxStd = v } }

// Default returns the built-in default settings, with any opts applied on
// top. The end-to-end scenario tests override the fields they depend on.
func Default(opts ...Option) Settings {
	w := defaultWire()
	for _, opt := range opts {
		opt(&w)
	}
	return fromWire(w)
}

// Load decodes a TOML settings file over top of Default, so a file may
// specify only the fields it wants to override, then applies opts on top of
// that (used by the CLI for its --no-dealiasing/--no-superobing overrides).
func Load(path string, opts ...Option) (Settings, error) {
	w := defaultWire()
	if path != "" {
		if _, err := toml.DecodeFile(path, &w); err != nil {
			return Settings{}, fmt.Errorf("loading settings %q: %w", path, err)
		}
	}
	for _, opt := range opts {
		opt(&w)
	}
	return fromWire(w), nil
}

func (s Settings) Dealiasing() bool        { return s.dealiasing }
func (s Settings) Superobing() bool        { return s.superobing }
func (s Settings) ZSectorSize() float64    { return s.zSectorSize }
func (s Settings) ZMax() float64           { return s.zMax }
func (s Settings) MinGoodPoints() int      { return s.minGoodPoints }
func (s Settings) MaxWind() float64        { return s.maxWind }
func (s Settings) RangeBinFactor() int     { return s.rangeBinFactor }
func (s Settings) RayAngleFactor() int     { return s.rayAngleFactor }
func (s Settings) MaxArcSize() float64     { return s.maxArcSize }
func (s Settings) MinQuality() float64     { return s.minQuality }
func (s Settings) DbzClearsky() float64    { return s.dbzClearsky }
func (s Settings) DbzPercentage() float64  { return s.dbzPercentage }
func (s Settings) VradPercentage() float64 { return s.vradPercentage }
func (s Settings) VradMaxStd() float64     { return s.vradMaxStd }
