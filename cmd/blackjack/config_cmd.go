package main

import (
	"fmt"
	"os"

	"github.com/lox/blackjack/internal/fileutil"
)

// ConfigCmd validates a table file and prints it with defaults filled in
type ConfigCmd struct {
	Config string `kong:"arg,optional,default='table.hcl',help='Table configuration file'"`
	Output string `kong:"short='o',help='Write the effective configuration to this file instead of stdout'"`
}

func (c *ConfigCmd) Run() error {
	cfg, err := loadConfig(c.Config, nil, 0)
	if err != nil {
		return err
	}

	src := cfg.Encode()
	if c.Output != "" {
		return fileutil.WriteFileAtomic(c.Output, src, 0o644)
	}
	if _, err := os.Stdout.Write(src); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
