// spellcast is a terminal client for SpellCast chat servers.
package main

import (
	"fmt"
	"os"

	"spellcast/cmd"
	"spellcast/config"
	"spellcast/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	configDir, _ := config.ConfigDir()
	if err := logger.Init(cfg.BuildLoggerConfig(), configDir); err != nil {
		fmt.Fprintln(os.Stderr, "logger init error:", err)
	}
	cmd.Execute()
}
