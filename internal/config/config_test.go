package config

import (
	"testing"

	"modshift/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Pipeline.PhaseOffset != 0.25 || cfg.Pipeline.OverRes != 10 {
		t.Errorf("pipeline = %+v, want canonical constants", cfg.Pipeline)
	}
	if cfg.Batch.Workers != 4 {
		t.Errorf("workers = %d, want 4", cfg.Batch.Workers)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MODSHIFT_PHASE_OFFSET", "0.5")
	t.Setenv("MODSHIFT_OVERRES", "20")
	t.Setenv("BATCH_WORKERS", "8")

	cfg, err := Load(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %s, want 9090", cfg.Server.Port)
	}
	settings := cfg.PipelineSettings()
	if settings.PhaseOffset != 0.5 || settings.OverRes != 20 {
		t.Errorf("settings = %+v, want overridden values", settings)
	}
	if cfg.Batch.Workers != 8 {
		t.Errorf("workers = %d, want 8", cfg.Batch.Workers)
	}
}

func TestLoad_RequireDB(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(true); !errors.HasCode(err, errors.CodeConfigInvalid) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.CodeConfigInvalid)
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/modshift")
	cfg, err := Load(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.URL == "" {
		t.Error("database URL not carried through")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"zero overres", "MODSHIFT_OVERRES", "0"},
		{"offset at 1", "MODSHIFT_PHASE_OFFSET", "1"},
		{"negative offset", "MODSHIFT_PHASE_OFFSET", "-0.1"},
		{"zero workers", "BATCH_WORKERS", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(false); !errors.HasCode(err, errors.CodeConfigInvalid) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), errors.CodeConfigInvalid)
			}
		})
	}
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("MODSHIFT_OVERRES", "lots")
	t.Setenv("MODSHIFT_PHASE_OFFSET", "a quarter")

	cfg, err := Load(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Pipeline.OverRes != 10 || cfg.Pipeline.PhaseOffset != 0.25 {
		t.Errorf("pipeline = %+v, want defaults for unparseable overrides", cfg.Pipeline)
	}
}
