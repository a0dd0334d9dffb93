package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dex/internal/api"
	"github.com/vovakirdan/tui-dex/internal/config"
	"github.com/vovakirdan/tui-dex/internal/pokemon"
	"github.com/vovakirdan/tui-dex/internal/registry"
	"github.com/vovakirdan/tui-dex/internal/roster"
	"github.com/vovakirdan/tui-dex/internal/storage"
)

// app bundles what most commands need.
type app struct {
	cfg    config.Config
	store  *storage.Store
	client *api.Client
	svc    *roster.Service
	logger *log.Logger
	region string
}

func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// loadConfig applies the global flag overrides on top of the config file.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagRegion != "" {
		cfg.Browse.DefaultRegion = flagRegion
	}
	if !registry.Exists(cfg.Browse.DefaultRegion) {
		return cfg, fmt.Errorf("unknown region %q (run 'dex regions' to list them)", cfg.Browse.DefaultRegion)
	}
	return cfg, nil
}

// openApp loads config, opens the cache and builds the roster service.
// Callers must close the store.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger("dex")

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(&http.Client{Timeout: cfg.API.Timeout}, cfg.API.BaseURL, cfg.API.MaxPages, logger)

	return &app{
		cfg:    cfg,
		store:  store,
		client: client,
		svc:    roster.NewService(store, client, logger),
		logger: logger,
		region: cfg.Browse.DefaultRegion,
	}, nil
}

func (a *app) Close() {
	a.store.Close()
}

// queryFlags are the filter flags shared by search and export.
type queryFlags struct {
	type1 string
	type2 string
	stats []string
}

func (f *queryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.type1, "type1", "", "First type slot: a type (炎 or fire), any or none")
	cmd.Flags().StringVar(&f.type2, "type2", "", "Second type slot: a type, any or none")
	cmd.Flags().StringArrayVar(&f.stats, "stat", nil, "Base stat condition key:op:line, e.g. s:gte:100 (repeatable)")
}

// query builds the filter query. Without --type1 and --type2 no type
// filter is applied.
func (f *queryFlags) query(name string) (pokemon.Query, error) {
	q := pokemon.NewQuery()
	q.Name = name

	if f.type1 != "" || f.type2 != "" {
		var err error
		q.NoTypeFilter = false
		if q.Type1, err = pokemon.ParseSelector(f.type1); err != nil {
			return q, err
		}
		if q.Type2, err = pokemon.ParseSelector(f.type2); err != nil {
			return q, err
		}
	}

	for _, s := range f.stats {
		for _, field := range strings.Fields(s) {
			c, err := pokemon.ParseStatCondition(field)
			if err != nil {
				return q, err
			}
			q.Stats = append(q.Stats, c)
		}
	}
	return q, nil
}
