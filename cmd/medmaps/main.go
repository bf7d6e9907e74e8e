// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the medmaps CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/criaah/medmaps/internal/catalog"
	"github.com/criaah/medmaps/internal/container"
	"github.com/criaah/medmaps/internal/ingest"
	"github.com/criaah/medmaps/internal/logger"
	"github.com/criaah/medmaps/internal/metrics"
	"github.com/criaah/medmaps/internal/textract"
	"github.com/criaah/medmaps/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the medmaps CLI.
var rootCmd = &cobra.Command{
	Use:   "medmaps",
	Short: "Build and maintain the MedMaps mind-map catalog",
	Long: `medmaps turns SimpleMind outlines, tabbed text notes and PDF documents
into hierarchical maps stored in a JSON catalog (data/maps_index.json plus
one data/maps/<id>.json per map).

Use ingest to add files, scan to preview a folder, reconcile to repair the
index, review to reclassify or relink maps, search to query the catalog,
export to produce mirror records, and watch to ingest an inbox as files
arrive.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./medmaps.yaml or ~/.config/medmaps/medmaps.yaml)")
	pf.String("data-dir", types.DefaultDataDir, "catalog directory (contains maps_index.json and maps/)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("metrics-file", "", "write batch metrics to this file in Prometheus text format")

	viper.BindPFlag("catalog.data-dir", pf.Lookup("data-dir"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("log.format", pf.Lookup("log-format"))

	viper.SetDefault("ingest.access", string(types.AccessFree))
	viper.SetDefault("extract.timeout", types.DefaultExtractTimeout)
	viper.SetDefault("extract.max-pages", types.DefaultMaxPages)
	viper.SetDefault("extract.binary", types.DefaultExtractBinary)
	viper.SetDefault("extract.image", "")
	viper.SetDefault("ingest.specialty", "")
	viper.SetDefault("ingest.tag", "")
	viper.SetDefault("ingest.move-to", "")
	viper.SetDefault("search.max-results", types.DefaultMaxResults)
	viper.SetDefault("mirror.portal-url", types.DefaultPortalURL)
	viper.SetDefault("watch.inbox", "")
	viper.SetDefault("watch.debounce", types.DefaultDebounce)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("medmaps")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "medmaps"))
		}
	}

	viper.SetEnvPrefix("MEDMAPS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, env and file settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if cfg.Catalog.DataDir == "" {
		cfg.Catalog.DataDir = types.DefaultDataDir
	}
	if cfg.Ingest.Access != "" {
		if _, err := types.ParseAccess(string(cfg.Ingest.Access)); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// app holds what every subcommand needs.
type app struct {
	cfg         types.Config
	log         zerolog.Logger
	repo        *catalog.Repository
	metrics     *metrics.Recorder
	metricsFile string
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	metricsFile, _ := cmd.Flags().GetString("metrics-file")
	a := &app{
		cfg:         cfg,
		log:         logger.New(cfg.Log, os.Stderr),
		repo:        catalog.NewRepository(cfg.Catalog),
		metricsFile: metricsFile,
	}
	if metricsFile != "" {
		a.metrics = metrics.New()
	}
	return a, nil
}

// pipeline wires the ingestion pipeline with the available extractors.
func (a *app) pipeline(ctx context.Context) *ingest.Pipeline {
	ext := textract.New(ctx, a.cfg.Extract, container.OSExecutor{}, logger.Component(a.log, "textract"))
	return ingest.New(a.repo, a.cfg.Ingest,
		ingest.WithExtractor(ext),
		ingest.WithLogger(a.log),
		ingest.WithMetrics(a.metrics),
	)
}

// flushMetrics writes the textfile when --metrics-file is set.
func (a *app) flushMetrics() {
	if a.metrics == nil {
		return
	}
	if err := a.metrics.WriteTextfile(a.metricsFile); err != nil {
		a.log.Warn().Err(err).Str("path", a.metricsFile).Msg("writing metrics")
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
