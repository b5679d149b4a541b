/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// AppConfig holds everything the portal needs to start: the HTTP server, the database,
// the template and upload directories and the collaboration hub tunables.
type AppConfig struct {
	ServerPort   uint16 `json:"server-port"`
	ReadTimeout  int64  `json:"read-timeout"`
	WriteTimeout int64  `json:"write-timeout"`

	DBName            string `json:"db-name"`
	TemplateDirectory string `json:"template-directory"`
	UploadDirectory   string `json:"upload-directory"`
	SecretKey         string `json:"secret-key"`

	LogDirectory  string `json:"log-directory"`
	EnableLogging bool   `json:"enable-logging"`

	HistoryLimit  int `json:"history-limit"`   // Messages replayed to a freshly joined connection
	SendQueueSize int `json:"send-queue-size"` // Bounded outbound queue per connection
	MaxViolations int `json:"max-violations"`  // Bad frames tolerated before the connection is closed
}

// Default returns a configuration that can run the portal locally without a config file
func Default() *AppConfig {
	return &AppConfig{
		ServerPort:        8080,
		ReadTimeout:       15,
		WriteTimeout:      15,
		DBName:            "portal.db",
		TemplateDirectory: "web/templates",
		UploadDirectory:   "uploads",
		SecretKey:         "change-me",
		LogDirectory:      "logs",
		EnableLogging:     true,
		HistoryLimit:      50,
		SendQueueSize:     64,
		MaxViolations:     8,
	}
}

// Load reads the JSON configuration at path and validates it
// When successful, error is nil
func Load(path string) (*AppConfig, error) {
	file, err := os.OpenFile(path, os.O_RDONLY, 0755)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err = json.Unmarshal(payload, cfg); err != nil {
		return nil, err
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the ports and hub tunables make sense
func (c *AppConfig) Validate() error {
	if c.ServerPort < 1024 {
		return fmt.Errorf("The port %d is outside valid range: [1024, 65535]", c.ServerPort)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return fmt.Errorf("Timeouts must be positive")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("The history limit must be positive")
	}
	if c.SendQueueSize <= 0 {
		return fmt.Errorf("The send queue size must be positive")
	}
	if c.MaxViolations <= 0 {
		return fmt.Errorf("The violation threshold must be positive")
	}
	if c.DBName == "" {
		return fmt.Errorf("A database name is required")
	}
	return nil
}
