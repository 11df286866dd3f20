package cmd

import (
	"context"
	"flag"
	"testing"
)

type entrypointTestConfig struct {
	SpoolDir string `env:"CALLSPOOL_ENTRYPOINT_TEST_DIR" envDefault:"/tmp/spool"`
}

func TestParseConfigLoadsEnvDefaults(t *testing.T) {
	var cfg entrypointTestConfig

	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.SpoolDir != "/tmp/spool" {
		t.Fatalf("expected env default, got %q", cfg.SpoolDir)
	}
}

func TestParseConfigRejectsNil(t *testing.T) {
	if err := ParseConfig[entrypointTestConfig](nil); err == nil {
		t.Fatal("expected error for nil config target")
	}
}

func TestParseArgsOverridesConfig(t *testing.T) {
	var cfg entrypointTestConfig
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.StringVar(&cfg.SpoolDir, "spool-dir", cfg.SpoolDir, "")
	if err := ParseArgs(fs, []string{"-spool-dir", "/srv/spool"}); err != nil {
		t.Fatalf("parse args: %v", err)
	}
	if cfg.SpoolDir != "/srv/spool" {
		t.Fatalf("expected flag override, got %q", cfg.SpoolDir)
	}
}

func TestRunWithTelemetryRequiresService(t *testing.T) {
	err := RunWithTelemetry(context.Background(), "  ", func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected error for empty service name")
	}
}

func TestRunWithTelemetryExecutesRun(t *testing.T) {
	ran := false
	err := RunWithTelemetry(context.Background(), ServiceSubmit, func(context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("run with telemetry: %v", err)
	}
	if !ran {
		t.Fatal("expected run function to execute")
	}
}
