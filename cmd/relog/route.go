package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/tricorder/go/tricorder"

	"github.com/coregx/relog/internal/config"
	"github.com/coregx/relog/internal/router"
)

func routeSubcommand(args []string, logger log.DebugLogger) error {
	cfg, err := loadRouteConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %s", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := route(ctx, cfg, os.Stdin, os.Stdout, logger); err != nil {
		return fmt.Errorf("error routing: %s", err)
	}
	return nil
}

// loadRouteConfig reads the -config file if given, otherwise it builds the
// configuration from the command line flags.
func loadRouteConfig() (*config.Config, error) {
	if *configFile != "" {
		return config.Load(*configFile)
	}
	cfg := config.Default()
	cfg.OutputDir = *outputDir
	cfg.DefaultCategory = *defaultCategory
	cfg.CaseInsensitive = *caseInsensitive
	cfg.Optimize = *optimize
	if *workers > 0 {
		cfg.Workers = int(*workers)
	}
	for _, definition := range joinCategoryList(categoryList) {
		category, err := config.ParseCategory(definition)
		if err != nil {
			return nil, err
		}
		cfg.Categories = append(cfg.Categories, category)
	}
	if len(cfg.Categories) < 1 {
		return nil, errors.New("no categories: specify -config or -categories")
	}
	return cfg, nil
}

// joinCategoryList undoes the comma splitting of -categories inside patterns
// such as \d{2,4}: a segment which does not begin with name= belongs to the
// previous definition.
func joinCategoryList(segments []string) []string {
	definitions := make([]string, 0, len(segments))
	for _, segment := range segments {
		last := len(definitions) - 1
		if _, err := config.ParseCategory(segment); err != nil && last >= 0 {
			definitions[last] += "," + segment
			continue
		}
		definitions = append(definitions, segment)
	}
	return definitions
}

func route(ctx context.Context, cfg *config.Config, input io.Reader,
	output io.Writer, logger log.DebugLogger) error {
	regexes, err := cfg.Compile()
	if err != nil {
		return err
	}
	names := make([]string, 0, len(cfg.Categories)+1)
	haveDefault := cfg.DefaultCategory == ""
	for _, category := range cfg.Categories {
		names = append(names, category.Name)
		if category.Name == cfg.DefaultCategory {
			haveDefault = true
		}
	}
	if !haveDefault {
		names = append(names, cfg.DefaultCategory)
	}
	writers, closeOutputs, err := router.OpenOutputs(cfg.OutputDir, names)
	if err != nil {
		return err
	}
	categories := make([]router.Category, 0, len(names))
	for index, name := range names {
		category := router.Category{Name: name, Output: writers[name]}
		if index < len(regexes) {
			category.Regex = regexes[index]
		}
		categories = append(categories, category)
	}
	r, err := router.New(categories,
		router.Options{
			DefaultCategory: cfg.DefaultCategory,
			Workers:         cfg.Workers,
		},
		logger)
	if err != nil {
		closeOutputs()
		return err
	}
	if *metricsPort > 0 {
		if err := serveMetrics(r, *metricsPort, logger); err != nil {
			closeOutputs()
			return err
		}
	}
	logger.Debugf(0, "routing %d categories to %s\n", len(categories),
		cfg.OutputDir)
	stats, err := r.Run(ctx, input)
	if e := closeOutputs(); err == nil {
		err = e
	}
	for _, name := range names {
		fmt.Fprintf(output, "%s\t%d\n", name, stats.Counts[name])
	}
	fmt.Fprintf(output, "unmatched\t%d\n", stats.Unmatched)
	if stats.Dropped > 0 {
		fmt.Fprintf(output, "dropped\t%d\n", stats.Dropped)
	}
	return err
}

func serveMetrics(r *router.Router, port uint, logger log.DebugLogger) error {
	dir, err := tricorder.RegisterDirectory("relog/router")
	if err != nil {
		return err
	}
	if err := r.RegisterMetrics(dir); err != nil {
		return err
	}
	go func() {
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
		logger.Printf("metrics server stopped: %s\n", err)
	}()
	return nil
}
