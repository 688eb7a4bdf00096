package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("log defaults = %q/%q, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("metrics_addr = %q, want :9090", cfg.MetricsAddr)
	}
	if cfg.ScanThresholdKm != 50 || cfg.HighRiskThresholdKm != 5 || cfg.CellSizeKm != 50 {
		t.Errorf("scan defaults = %v/%v/%v, want 50/5/50",
			cfg.ScanThresholdKm, cfg.HighRiskThresholdKm, cfg.CellSizeKm)
	}
	if cfg.ScanWorkers != 4 {
		t.Errorf("scan_workers = %d, want 4", cfg.ScanWorkers)
	}
	if !cfg.PlanManeuvers {
		t.Errorf("plan_maneuvers default = false, want true")
	}
	if cfg.BroadcastInterval != 5*time.Second || cfg.TopN != 10 {
		t.Errorf("broadcast defaults = %v/%d, want 5s/10", cfg.BroadcastInterval, cfg.TopN)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "risk.yaml")
	body := `
log_level: debug
scan_threshold_km: 80
high_risk_threshold_km: 10
broadcast_interval: 2s
top_n: 5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", cfg.LogLevel)
	}
	if cfg.ScanThresholdKm != 80 || cfg.HighRiskThresholdKm != 10 {
		t.Errorf("thresholds = %v/%v, want 80/10", cfg.ScanThresholdKm, cfg.HighRiskThresholdKm)
	}
	if cfg.BroadcastInterval != 2*time.Second {
		t.Errorf("broadcast_interval = %v, want 2s", cfg.BroadcastInterval)
	}
	if cfg.TopN != 5 {
		t.Errorf("top_n = %d, want 5", cfg.TopN)
	}
	// Keys the file omits keep their defaults.
	if cfg.CellSizeKm != 50 {
		t.Errorf("cell_size_km = %v, want default 50", cfg.CellSizeKm)
	}
}

func TestLoad_MissingNamedFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("named missing config file accepted")
	}
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("RISK_SCAN_THRESHOLD_KM", "75")
	t.Setenv("RISK_LOG_FORMAT", "json")
	t.Setenv("RISK_PLAN_MANEUVERS", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ScanThresholdKm != 75 {
		t.Errorf("scan_threshold_km = %v, want env override 75", cfg.ScanThresholdKm)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("log_format = %q, want env override json", cfg.LogFormat)
	}
	if cfg.PlanManeuvers {
		t.Errorf("plan_maneuvers not overridden by environment")
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"zero scan threshold", map[string]string{"RISK_SCAN_THRESHOLD_KM": "0"}},
		{"high risk above scan threshold", map[string]string{"RISK_HIGH_RISK_THRESHOLD_KM": "60"}},
		{"negative cell size", map[string]string{"RISK_CELL_SIZE_KM": "-1"}},
		{"zero broadcast interval", map[string]string{"RISK_BROADCAST_INTERVAL": "0s"}},
		{"zero top n", map[string]string{"RISK_TOP_N": "0"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(""); err == nil {
				t.Errorf("invalid configuration accepted")
			}
		})
	}
}
