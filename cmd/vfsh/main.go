package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brettbedarf/vfsh/adapters"
	"github.com/brettbedarf/vfsh/config"
	"github.com/brettbedarf/vfsh/internal/util"
	"github.com/brettbedarf/vfsh/seed"
	"github.com/brettbedarf/vfsh/server"
	"github.com/brettbedarf/vfsh/shell"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type cliFlags struct {
	configPath  string
	seed        string
	script      string
	verbose     int
	prompt      string
	metricsAddr string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:   "vfsh [seed]",
		Short: "Browse an in-memory filesystem seeded from JSON or YAML",
		Long: titleStyle.Render("vfsh") + subtitleStyle.Render(" - a shell over an in-memory filesystem") + `

The tree is loaded once from a local file or an http(s) URL and lives
only in memory. An optional script is replayed before the prompt opens.

` + subtitleStyle.Render("Examples:") + `
  vfsh tree.json
  vfsh --vfs https://example.com/tree.yaml --script setup.txt
  vfsh -v 4 --metrics-addr :9090 tree.json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, &flags, args)
			if err != nil {
				fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	bindFlags(cmd.Flags(), &flags)
	return cmd
}

func bindFlags(f *pflag.FlagSet, flags *cliFlags) {
	f.StringVar(&flags.configPath, "config", "", "Path to a yaml, json or toml config file")
	f.StringVar(&flags.seed, "vfs", "", "Seed document path or http(s) URL")
	f.StringVar(&flags.script, "script", "", "Startup script replayed before the prompt")
	f.IntVarP(&flags.verbose, "verbose", "v", config.DefaultVerbose,
		"Log verbosity level between 1 (error) and 5 (trace)")
	f.StringVar(&flags.prompt, "prompt", config.DefaultPrompt, "Prompt prefix")
	f.StringVar(&flags.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
}

// resolveConfig layers defaults < config file < environment < flags.
// Only flags set on the command line override. A positional seed counts as
// --vfs unless the flag was also given.
func resolveConfig(cmd *cobra.Command, flags *cliFlags, args []string) (*config.Config, error) {
	cfg := config.NewDefaultConfig()

	if flags.configPath != "" {
		override, err := config.LoadConfigOverrideFile(flags.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", flags.configPath, err)
		}
		cfg.Merge(override)
	}

	envOverride, err := config.LoadEnvOverride()
	if err != nil {
		return nil, err
	}
	cfg.Merge(envOverride)

	var override config.ConfigOverride
	changed := cmd.Flags().Changed
	if changed("vfs") {
		override.SeedPath = util.Pointer(flags.seed)
	} else if len(args) == 1 {
		override.SeedPath = util.Pointer(args[0])
	}
	if changed("script") {
		override.ScriptPath = util.Pointer(flags.script)
	}
	if changed("verbose") {
		override.LogLvl = util.Pointer(flags.verbose)
	}
	if changed("prompt") {
		override.Prompt = util.Pointer(flags.prompt)
	}
	if changed("metrics-addr") {
		override.MetricsAddr = util.Pointer(flags.metricsAddr)
	}
	cfg.Merge(&override)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	util.InitializeLogger(cfg.LogLvl)
	logger := util.GetLogger("main")

	logger.Debug().
		Str("seed", cfg.SeedPath).
		Str("script", cfg.ScriptPath).
		Msg("vfsh initializing")

	registry := adapters.NewDefaultRegistry(adapters.HTTPOptions{
		Timeout: cfg.HTTPTimeoutDuration(),
		Retries: cfg.HTTPRetries,
	})
	fs, err := seed.LoadSource(ctx, registry, cfg.SeedPath)
	if err != nil {
		logger.Fatal().Err(err).Str("seed", cfg.SeedPath).Msg("Failed to load seed")
	}

	reg := prometheus.NewRegistry()
	sh := shell.New(fs,
		shell.WithHeadLines(cfg.HeadLines),
		shell.WithMetrics(shell.NewMetrics(reg)),
	)

	var metricsSrv *server.MetricsServer
	var metricsDone <-chan error
	if cfg.MetricsAddr != "" {
		metricsSrv = server.New(cfg.MetricsAddr, reg)
		if err := metricsSrv.Listen(); err != nil {
			logger.Fatal().Err(err).Str("addr", cfg.MetricsAddr).Msg("Failed to listen for metrics")
		}
		metricsDone = metricsSrv.ServeAsync()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("Failed to stop metrics server")
			}
		}()
	}

	// Setup signal handling for graceful shutdown
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(signalChan)

	done := make(chan error, 1)
	go func() {
		done <- frontEnd(sh, cfg, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Error().Err(err).Msg("Session failed")
		}
		return err
	case sig := <-signalChan:
		logger.Info().Str("signal", sig.String()).Msg("Received signal, exiting")
		return nil
	case err := <-metricsDone:
		if err == nil {
			err = errors.New("metrics server stopped")
		}
		logger.Error().Err(err).Msg("Metrics server failed")
		return err
	}
}

// frontEnd replays the startup script then hands over to the prompt unless
// the script exited
func frontEnd(sh *shell.Shell, cfg *config.Config, in io.Reader, out io.Writer) error {
	if cfg.ScriptPath != "" && replayScript(sh, cfg.ScriptPath, out) {
		return nil
	}
	return repl(sh, in, out, cfg.Prompt)
}
