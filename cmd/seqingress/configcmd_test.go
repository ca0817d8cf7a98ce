// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"seqingress/internal/config"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "seqingress")
	config.SetConfigDirOverride(dir)
	t.Cleanup(config.ResetConfigDirOverride)
	return dir
}

func TestRunConfigInit(t *testing.T) {
	useTempConfigDir(t)

	var out bytes.Buffer
	configCmd.SetOut(&out)
	defer configCmd.SetOut(nil)

	if err := runConfigInit(configCmd); err != nil {
		t.Fatalf("runConfigInit: %v", err)
	}
	if !strings.Contains(out.String(), "Created starter configuration") {
		t.Errorf("output %q missing creation notice", out.String())
	}

	// The file it created must load cleanly.
	if _, err := config.Load(); err != nil {
		t.Fatalf("Load after init: %v", err)
	}

	// A second init reports the existing file instead of overwriting.
	out.Reset()
	if err := runConfigInit(configCmd); err != nil {
		t.Fatalf("second runConfigInit: %v", err)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Errorf("output %q missing already-exists notice", out.String())
	}
}

func TestRunConfigPath(t *testing.T) {
	dir := useTempConfigDir(t)

	var out bytes.Buffer
	configCmd.SetOut(&out)
	defer configCmd.SetOut(nil)

	if err := runConfigPath(configCmd); err != nil {
		t.Fatalf("runConfigPath: %v", err)
	}
	if !strings.Contains(out.String(), dir) {
		t.Errorf("output %q missing config dir %q", out.String(), dir)
	}
	if !strings.Contains(out.String(), config.ConfigFileName) {
		t.Errorf("output %q missing config file name", out.String())
	}
}
