package config

import "testing"

func TestDefault(t *testing.T) {
	cfg := Default("photos")

	if cfg.InputBucket != "photos" {
		t.Errorf("InputBucket = %q, want %q", cfg.InputBucket, "photos")
	}
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency = %d, want %d", cfg.Concurrency, DefaultConcurrency)
	}
	if cfg.MaxPages != DefaultMaxPages {
		t.Errorf("MaxPages = %d, want %d", cfg.MaxPages, DefaultMaxPages)
	}
	if cfg.MaxItemsPerPage != DefaultMaxItemsPerPage {
		t.Errorf("MaxItemsPerPage = %d, want %d", cfg.MaxItemsPerPage, DefaultMaxItemsPerPage)
	}
	if !cfg.ExportCSV {
		t.Error("Expected ExportCSV to be true by default")
	}
}

func TestNormalizeMinConfidence(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"negative resets to default", -5, DefaultMinConfidence},
		{"above 100 resets to default", 130, DefaultMinConfidence},
		{"zero is kept", 0, 0},
		{"boundary 100 is kept", 100, 100},
		{"in range is kept", 75, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("b")
			cfg.MinConfidence = tt.in
			cfg.Normalize()
			if cfg.MinConfidence != tt.want {
				t.Errorf("MinConfidence = %d, want %d", cfg.MinConfidence, tt.want)
			}
		})
	}
}

func TestNormalizePresignTTL(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"above max resets to default", 700000, DefaultPresignTTL},
		{"negative resets to default", -1, DefaultPresignTTL},
		{"in range is kept", 3600, 3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("b")
			cfg.PresignTTL = tt.in
			cfg.Normalize()
			if cfg.PresignTTL != tt.want {
				t.Errorf("PresignTTL = %d, want %d", cfg.PresignTTL, tt.want)
			}
		})
	}
}

func TestNormalizePrefixes(t *testing.T) {
	cfg := Default("b")
	cfg.InputPrefix = "incoming"
	cfg.OutputPrefix = "results/"
	cfg.Normalize()

	if cfg.InputPrefix != "incoming/" {
		t.Errorf("InputPrefix = %q, want %q", cfg.InputPrefix, "incoming/")
	}
	if cfg.OutputPrefix != "results/" {
		t.Errorf("OutputPrefix = %q, want %q", cfg.OutputPrefix, "results/")
	}

	// Empty prefixes stay empty.
	cfg = Default("b")
	cfg.Normalize()
	if cfg.InputPrefix != "" {
		t.Errorf("InputPrefix = %q, want empty", cfg.InputPrefix)
	}
}

func TestNormalizeOutputBucketDefaultsToInput(t *testing.T) {
	cfg := Default("photos")
	cfg.Normalize()
	if cfg.OutputBucket != "photos" {
		t.Errorf("OutputBucket = %q, want %q", cfg.OutputBucket, "photos")
	}

	cfg = Default("photos")
	cfg.OutputBucket = "results"
	cfg.Normalize()
	if cfg.OutputBucket != "results" {
		t.Errorf("OutputBucket = %q, want %q", cfg.OutputBucket, "results")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default("")
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for missing input bucket")
	}

	cfg = Default("photos")
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
