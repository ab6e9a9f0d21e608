package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Cloud-Foundations/Dominator/lib/log"

	"github.com/coregx/relog"
)

func matchSubcommand(args []string, logger log.DebugLogger) error {
	if err := matchTexts(os.Stdout, args[0], args[1:], logger); err != nil {
		return fmt.Errorf("error matching: %s", err)
	}
	return nil
}

func matchTexts(writer io.Writer, pattern string, texts []string,
	logger log.DebugLogger) error {
	regexConfig := relog.DefaultConfig()
	regexConfig.CaseInsensitive = *caseInsensitive
	regexConfig.Optimize = *optimize
	re, err := relog.CompileWithConfig(pattern, regexConfig)
	if err != nil {
		return err
	}
	logger.Debugf(1, "strategy: %s\n", re.Strategy())
	for _, text := range texts {
		m, ok := re.FindMatch([]byte(text))
		if !ok {
			fmt.Fprintln(writer, "no match")
			continue
		}
		logger.Debugf(1, "%q matched %q\n", text, m.String())
		fmt.Fprintf(writer, "%d %d\n", m.Start(), m.End())
	}
	return nil
}
