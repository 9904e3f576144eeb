package settings

import (
	"os"
	"testing"
)

func TestDefaultFactorsAndStages(t *testing.T) {
	s := Default()
	if s.RangeBinFactor() != 4 || s.RayAngleFactor() != 5 {
		t.Errorf("unexpected default bin/ray factors: %d/%d", s.RangeBinFactor(), s.RayAngleFactor())
	}
	if !s.Dealiasing() || !s.Superobing() {
		t.Errorf("both stages should default to enabled")
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if s != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults %+v", s, Default())
	}
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/settings.toml"
	body := []byte("min_quality = 0.75\nmax_wind = 30\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.MinQuality() != 0.75 {
		t.Errorf("MinQuality = %v, want 0.75", s.MinQuality())
	}
	if s.MaxWind() != 30 {
		t.Errorf("MaxWind = %v, want 30", s.MaxWind())
	}
	if s.RangeBinFactor() != Default().RangeBinFactor() {
		t.Errorf("RangeBinFactor = %v, want default %v", s.RangeBinFactor(), Default().RangeBinFactor())
	}
}

func TestLoadOptionOverridesFileAndDefault(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/settings.toml"
	body := []byte("max_wind = 30\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path, WithMaxWind(99), WithDealiasing(false))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.MaxWind() != 99 {
		t.Errorf("MaxWind = %v, want option override 99", s.MaxWind())
	}
	if s.Dealiasing() {
		t.Errorf("Dealiasing = true, want option override false")
	}
}
