package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/srodi/hog/pkg/collector"
	"github.com/srodi/hog/pkg/names"
	"github.com/srodi/hog/pkg/pipeline"
	"github.com/srodi/hog/pkg/report"
	"github.com/srodi/hog/pkg/ui"
)

// newSampler allows tests to replace the process table source.
var newSampler = collector.New

func newRootCmd() *cobra.Command {
	v := newViper()
	var configPath string

	cmd := &cobra.Command{
		Use:   "hog [memory|cpu]",
		Short: "Show which applications use the most memory or CPU",
		Long: `hog samples the process table, folds every process into the application
that launched it and lists applications by memory (default) or CPU usage.`,
		Args:         cobra.MaximumNArgs(1),
		ValidArgs:    []string{"memory", "cpu"},
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return readConfigFile(v, configPath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, args)
			if err != nil {
				return err
			}
			log := newLogger(cfg.verbose, cfg.logFile)
			defer func() { _ = log.Sync() }()
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), log)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/hog/config.yaml)")
	cobra.CheckErr(registerFlags(v, cmd.PersistentFlags()))
	cmd.AddCommand(newRulesCmd(v))
	return cmd
}

func newRulesCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the name rules in evaluation order as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := loadResolver(v.GetString(keyRulesFile))
			if err != nil {
				return err
			}
			data, err := names.MarshalRules(resolver.Rules())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func loadResolver(rulesFile string) (*names.Resolver, error) {
	if rulesFile == "" {
		return names.NewResolver(nil), nil
	}
	user, err := names.LoadRulesFile(rulesFile)
	if err != nil {
		return nil, err
	}
	return names.NewResolver(names.Merge(user, names.DefaultRules())), nil
}

func run(ctx context.Context, cfg runConfig, out io.Writer, log *zap.Logger) error {
	resolver, err := loadResolver(cfg.rulesFile)
	if err != nil {
		return err
	}
	sampler, err := newSampler(collector.Config{Source: cfg.source, Interval: cfg.interval}, log)
	if err != nil {
		return fmt.Errorf("initializing sampler: %w", err)
	}
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	log.Info("sampling",
		zap.String("mode", string(cfg.mode)),
		zap.String("source", string(cfg.source)),
		zap.Int("samples", pipeline.SamplesFor(cfg.mode, cfg.samples)))
	apps, err := pipeline.Gather(ctx, sampler, pipeline.Options{
		Mode:     cfg.mode,
		Samples:  cfg.samples,
		Resolver: resolver,
	}, log)
	if err != nil {
		return err
	}

	filter := cfg.filter()
	rows := report.Rows(apps, filter)
	log.Info("report ready", zap.Int("applications", len(apps)), zap.Int("shown", len(rows)))
	return report.Write(out, rows, filter, ui.NewPalette(cfg.color, out))
}
