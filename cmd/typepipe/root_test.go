package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/jonwraymond/typepipe/flush"
)

func init() {
	color.NoColor = true
}

func writeManifest(t *testing.T, dir, name, configID string) string {
	t.Helper()
	path := filepath.Join(dir, name+flush.Extension)
	err := flush.Write(path, &flush.Manifest{
		ConfigurationID: configID,
		ProxyTypes:      []flush.ProxyEntry{{Name: "Customer_Proxy_1", RequestedType: "Customer"}},
		AdditionalTypes: []string{"CustomerAudit"},
	})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()
	if cmd.Use != "typepipe" {
		t.Errorf("Use = %q, want typepipe", cmd.Use)
	}
	for _, name := range []string{"inspect", "verify", "health"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("expected command %s to be registered", name)
		}
	}
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "a", "orders-v1")

	out, err := run(t, "inspect", dir)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	for _, want := range []string{"orders-v1", "Customer_Proxy_1 -> Customer", "CustomerAudit", "proxy types (1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInspect_RequiresArgs(t *testing.T) {
	if _, err := run(t, "inspect"); err == nil {
		t.Error("expected an error without arguments")
	}
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "typepipe.toml")
	flushDir := filepath.Join(dir, "out")
	doc := "participant_configuration_id = \"orders-v1\"\nflush_directory = \"" + filepath.ToSlash(flushDir) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	good := writeManifest(t, flushDir, "a", "orders-v1")
	out, err := run(t, "verify", "--config", cfgPath)
	if err != nil {
		t.Fatalf("verify failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok       "+good) {
		t.Errorf("output = %q", out)
	}

	bad := writeManifest(t, flushDir, "b", "orders-v0")
	out, err = run(t, "verify", "-c", cfgPath, good, bad)
	if !errors.Is(err, errVerifyFailed) {
		t.Fatalf("err = %v, want errVerifyFailed", err)
	}
	if !strings.Contains(out, "mismatch "+bad) {
		t.Errorf("output = %q", out)
	}
}

func TestHealth(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "typepipe.toml")
	doc := "participant_configuration_id = \"orders-v1\"\nflush_directory = \"" + filepath.ToSlash(dir) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	out, err := run(t, "health", "-c", cfgPath)
	if err != nil {
		t.Fatalf("health failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "healthy   flush_directory") {
		t.Errorf("output = %q", out)
	}
}

func TestHealth_FlushPathIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	cfgPath := filepath.Join(dir, "typepipe.toml")
	doc := "participant_configuration_id = \"orders-v1\"\nflush_directory = \"" + filepath.ToSlash(file) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	out, err := run(t, "health", "-c", cfgPath)
	if !errors.Is(err, errUnhealthy) {
		t.Fatalf("err = %v, want errUnhealthy\n%s", err, out)
	}
	if !strings.Contains(out, "unhealthy flush_directory") {
		t.Errorf("output = %q", out)
	}
}
