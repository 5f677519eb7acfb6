package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/srodi/hog/pkg/collector"
	"github.com/srodi/hog/pkg/report"
	"github.com/srodi/hog/pkg/types"
	"github.com/srodi/hog/pkg/ui"
)

const (
	keySamples       = "samples"
	keyPIDs          = "pids"
	keySource        = "source"
	keyInterval      = "interval"
	keyTimeout       = "timeout"
	keyMinMemoryKiB  = "min_memory_kib"
	keyMinCPUPercent = "min_cpu_percent"
	keyColor         = "color"
	keyRulesFile     = "rules_file"
	keyLogFile       = "log_file"
	keyVerbose       = "verbose"
)

type runConfig struct {
	mode          types.Mode
	samples       int
	showPIDs      bool
	source        collector.Source
	interval      time.Duration
	timeout       time.Duration
	minMemoryKiB  uint64
	minCPUPercent float64
	color         ui.ColorMode
	rulesFile     string
	logFile       string
	verbose       int
}

func (c runConfig) filter() report.FilterConfig {
	return report.FilterConfig{
		Mode:          c.mode,
		MinMemoryKiB:  c.minMemoryKiB,
		MinCPUPercent: c.minCPUPercent,
		ShowPIDs:      c.showPIDs,
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(keySamples, 0)
	v.SetDefault(keyPIDs, false)
	v.SetDefault(keySource, string(collector.SourceAuto))
	v.SetDefault(keyInterval, collector.DefaultInterval)
	v.SetDefault(keyTimeout, time.Duration(0))
	v.SetDefault(keyMinMemoryKiB, uint64(report.DefaultMinMemoryKiB))
	v.SetDefault(keyMinCPUPercent, report.DefaultMinCPUPercent)
	v.SetDefault(keyColor, string(ui.ColorAuto))
	v.SetEnvPrefix("hog")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// registerFlags declares the persistent flags and binds them to config keys.
func registerFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.IntP("samples", "s", 0, "samples to take in cpu mode (default 4)")
	flags.BoolP("pids", "p", false, "append the member process ids to each line")
	flags.String("source", string(collector.SourceAuto), "process table source: auto, command, procfs or gopsutil")
	flags.Duration("interval", collector.DefaultInterval, "delay between samples for the procfs and gopsutil sources")
	flags.Duration("timeout", 0, "abort sampling after this long (0 waits forever)")
	flags.Uint64("min-memory", report.DefaultMinMemoryKiB, "hide applications using this many KiB or less")
	flags.Float64("min-cpu", report.DefaultMinCPUPercent, "hide applications using this CPU percentage or less")
	flags.String("color", string(ui.ColorAuto), "colorize output: auto, always or never")
	flags.String("rules", "", "YAML file with extra name rules")
	flags.String("log-file", "", "write logs to this rotated file instead of stderr")
	flags.CountP("verbose", "v", "log more (-v info, -vv debug)")

	bindings := map[string]string{
		keySamples:       "samples",
		keyPIDs:          "pids",
		keySource:        "source",
		keyInterval:      "interval",
		keyTimeout:       "timeout",
		keyMinMemoryKiB:  "min-memory",
		keyMinCPUPercent: "min-cpu",
		keyColor:         "color",
		keyRulesFile:     "rules",
		keyLogFile:       "log-file",
		keyVerbose:       "verbose",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// readConfigFile loads path, or config.yaml from the user config directory
// when path is empty. A missing default file is not an error.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
		return nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(dir, "hog"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func loadConfig(v *viper.Viper, args []string) (runConfig, error) {
	cfg := runConfig{
		samples:       v.GetInt(keySamples),
		showPIDs:      v.GetBool(keyPIDs),
		interval:      v.GetDuration(keyInterval),
		timeout:       v.GetDuration(keyTimeout),
		minMemoryKiB:  v.GetUint64(keyMinMemoryKiB),
		minCPUPercent: v.GetFloat64(keyMinCPUPercent),
		rulesFile:     v.GetString(keyRulesFile),
		logFile:       v.GetString(keyLogFile),
		verbose:       v.GetInt(keyVerbose),
	}
	if len(args) > 0 {
		cfg.mode = types.ParseMode(args[0])
	} else {
		cfg.mode = types.ModeMemory
	}
	if cfg.samples < 0 {
		return runConfig{}, fmt.Errorf("samples must not be negative, got %d", cfg.samples)
	}

	source, err := collector.ParseSource(v.GetString(keySource))
	if err != nil {
		return runConfig{}, err
	}
	cfg.source = source

	color, ok := ui.ParseColorMode(v.GetString(keyColor))
	if !ok {
		return runConfig{}, fmt.Errorf("unknown color mode %q (want auto, always or never)", v.GetString(keyColor))
	}
	cfg.color = color
	return cfg, nil
}
