package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseClientDefaults(t *testing.T) {
	fs := flag.NewFlagSet("campmisty", flag.ContinueOnError)
	cfg, err := ParseClient(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:7878" {
		t.Fatalf("expected default addr, got %q", cfg.ListenAddr)
	}
	if cfg.WebSocket {
		t.Fatalf("expected TCP by default")
	}
	if cfg.HistoryDBPath != "campmisty.db" {
		t.Fatalf("expected default history path, got %q", cfg.HistoryDBPath)
	}
	if level, _ := cfg.Level(); level != log.InfoLevel {
		t.Fatalf("expected info level, got %v", level)
	}
}

func TestParseClientOverrides(t *testing.T) {
	t.Setenv("CAMPMISTY_ADDR", "0.0.0.0:1111")
	t.Setenv("CAMPMISTY_VICTIM_SCRIPT", "victim.lua")

	fs := flag.NewFlagSet("campmisty", flag.ContinueOnError)
	cfg, err := ParseClient(fs, []string{"-addr", "127.0.0.1:9999", "-ws", "-log-level", "debug", "-killer-script", "killer.lua"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:9999" {
		t.Fatalf("flag should win over env, got %q", cfg.ListenAddr)
	}
	if !cfg.WebSocket {
		t.Fatalf("expected -ws to enable WebSocket")
	}
	if cfg.VictimScript != "victim.lua" || cfg.KillerScript != "killer.lua" {
		t.Fatalf("scripts = %q, %q", cfg.VictimScript, cfg.KillerScript)
	}
	if level, _ := cfg.Level(); level != log.DebugLevel {
		t.Fatalf("expected debug level, got %v", level)
	}
}

func TestParseClientRejectsBadLevel(t *testing.T) {
	fs := flag.NewFlagSet("campmisty", flag.ContinueOnError)
	if _, err := ParseClient(fs, []string{"-log-level", "loud"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseServerDefaultsAndOverrides(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseServer(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:6996" {
		t.Fatalf("expected default addr, got %q", cfg.Addr())
	}
	if cfg.MaxConnectionsPerIP != 2 {
		t.Fatalf("expected 2 connections per IP, got %d", cfg.MaxConnectionsPerIP)
	}

	fs = flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err = ParseServer(fs, []string{"-host", "127.0.0.1", "-port", "2222", "-key", "/tmp/key"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:2222" || cfg.HostKeyPath != "/tmp/key" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}

	fs = flag.NewFlagSet("server", flag.ContinueOnError)
	if _, err := ParseServer(fs, []string{"-max-conns", "0"}); err == nil {
		t.Fatal("expected error for zero connections")
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("CAMPMISTY_MAX_CONNECTIONS_PER_IP", "lots")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	_, err := ParseServer(fs, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("CAMPMISTY_SSH_PORT=4242\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("CAMPMISTY_SSH_PORT") })
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseServer(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != "4242" {
		t.Fatalf("expected port from .env, got %q", cfg.Port)
	}
}
