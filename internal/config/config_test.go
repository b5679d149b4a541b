/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigIncorrectPort(t *testing.T) {
	cfg := Default()
	cfg.ServerPort = 80

	err := cfg.Validate()
	if err == nil {
		t.Errorf("Expected error...")
	}

	expected := "The port 80 is outside valid range: [1024, 65535]"
	if err.Error() != expected {
		t.Errorf("Another error was supposed to happen. GOT[%s], EXPECTED[%s]", err.Error(), expected)
	}
}

func TestConfigIncorrectHistoryLimit(t *testing.T) {
	cfg := Default()
	cfg.HistoryLimit = 0

	err := cfg.Validate()
	if err == nil {
		t.Errorf("Expected error...")
	}

	expected := "The history limit must be positive"
	if err.Error() != expected {
		t.Errorf("Another error was supposed to happen. GOT[%s], EXPECTED[%s]", err.Error(), expected)
	}
}

func TestConfigIncorrectQueueSize(t *testing.T) {
	cfg := Default()
	cfg.SendQueueSize = -1

	err := cfg.Validate()
	if err == nil {
		t.Errorf("Expected error...")
	}

	expected := "The send queue size must be positive"
	if err.Error() != expected {
		t.Errorf("Another error was supposed to happen. GOT[%s], EXPECTED[%s]", err.Error(), expected)
	}
}

func TestConfigCorrectDefaults(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults should validate, got {%v}", err)
	}
}

func TestConfigLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portal.cfg")

	payload := `{"server-port": 9090, "history-limit": 10}`
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatalf("Could not write the test config {%v}", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed {%v}", err)
	}

	if cfg.ServerPort != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.ServerPort)
	}
	if cfg.HistoryLimit != 10 {
		t.Errorf("Expected history limit 10, got %d", cfg.HistoryLimit)
	}
	if cfg.SendQueueSize != 64 {
		t.Errorf("Unset fields should keep defaults, got %d", cfg.SendQueueSize)
	}
}

func TestConfigLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portal.cfg")

	payload := `{"server-port": 100}`
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatalf("Could not write the test config {%v}", err)
	}

	if _, err := Load(path); err == nil {
		t.Errorf("Expected error for invalid port")
	}
}
