package main

import (
	"fmt"

	"github.com/Cloud-Foundations/Dominator/lib/log"

	"github.com/coregx/relog/internal/config"
)

func checkConfigSubcommand(args []string, logger log.DebugLogger) error {
	if err := checkConfig(args[0], logger); err != nil {
		return fmt.Errorf("error checking configuration: %s", err)
	}
	return nil
}

func checkConfig(filename string, logger log.DebugLogger) error {
	cfg, err := config.Load(filename)
	if err != nil {
		return err
	}
	if _, err := cfg.Compile(); err != nil {
		return err
	}
	for _, category := range cfg.Categories {
		logger.Debugf(1, "%s: %s: %s\n", category.Pos, category.Name,
			category.Pattern)
	}
	fmt.Printf("%s: %d categories OK\n", filename, len(cfg.Categories))
	return nil
}
