// internal/appconfig/appconfig_test.go
package appconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadReadsConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	payload := `{
		"reportPath": "out/run1",
		"reporters": ["attention", "charcut"],
		"matchSize": 1,
		"altNorm": true,
		"logFile": "out/run1.log"
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ReportPrefix() != "out/run1" {
		t.Fatalf("ReportPrefix=%q want out/run1", cfg.ReportPrefix())
	}
	if !reflect.DeepEqual(cfg.ReporterNames(), []string{"attention", "charcut"}) {
		t.Fatalf("ReporterNames=%v", cfg.ReporterNames())
	}
	if cfg.CharCutMatchSize() != 1 {
		t.Fatalf("CharCutMatchSize=%d want 1", cfg.CharCutMatchSize())
	}
	if !cfg.AltNorm {
		t.Fatalf("AltNorm not set")
	}
	if cfg.LogFilePath() != "out/run1.log" {
		t.Fatalf("LogFilePath=%q", cfg.LogFilePath())
	}
	if cfg.ConfigPath != path {
		t.Fatalf("ConfigPath=%q want %q", cfg.ConfigPath, path)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if cfg.ReportPrefix() != DefaultReportPrefix {
		t.Fatalf("ReportPrefix=%q want default", cfg.ReportPrefix())
	}
	if cfg.CharCutMatchSize() != 3 {
		t.Fatalf("CharCutMatchSize=%d want 3", cfg.CharCutMatchSize())
	}
	if !reflect.DeepEqual(cfg.ReporterNames(), []string{"attention"}) {
		t.Fatalf("ReporterNames=%v want [attention]", cfg.ReporterNames())
	}
	if cfg.LogFilePath() != "xnmt-report.log" {
		t.Fatalf("LogFilePath=%q", cfg.LogFilePath())
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load accepted malformed JSON")
	}
}

func TestCharCutMatchSizeClamping(t *testing.T) {
	t.Parallel()

	if got := (Config{MatchSize: -2}).CharCutMatchSize(); got != 1 {
		t.Fatalf("CharCutMatchSize(-2)=%d want 1", got)
	}
	if got := (Config{MatchSize: 7}).CharCutMatchSize(); got != 7 {
		t.Fatalf("CharCutMatchSize(7)=%d want 7", got)
	}
}
